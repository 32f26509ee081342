package main

import (
	"time"

	handlersAd "adboard/internal/handlers/ad"
	handlersCategory "adboard/internal/handlers/category"
	handlersUser "adboard/internal/handlers/user"
	"adboard/internal/middleware"
	"adboard/internal/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type routeDeps struct {
	Ads          *handlersAd.AdHandler
	Categories   *handlersCategory.CategoryHandler
	Users        *handlersUser.UserHandler
	Sessions     session.SessionRepo
	ExtendWithin time.Duration
	Logger       *zap.SugaredLogger
}

// newRouter собирает все ручки API. id в путях только цифры,
// иначе /api/ads/search попал бы в ручку объявления по id
func newRouter(d routeDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", middleware.MetricsHandler()).Methods("GET")

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(d.Sessions, d.ExtendWithin, d.Logger))

	authRouter.HandleFunc("/ads/{id:[0-9]+}", d.Ads.GetByID).Methods("GET")
	authRouter.HandleFunc("/ads/{id:[0-9]+}", d.Ads.Update).Methods("PUT", "PATCH")
	authRouter.HandleFunc("/ads/{id:[0-9]+}", d.Ads.Delete).Methods("DELETE")

	authRouter.HandleFunc("/user/logout", d.Users.Logout).Methods("POST")

	// Ручки НЕ требующие авторизации, сессию подхватываем если она есть
	noAuthRouter := r.PathPrefix("/api").Subrouter()
	noAuthRouter.Use(middleware.OptionalAuth(d.Sessions, d.Logger))

	noAuthRouter.HandleFunc("/ads", d.Ads.List).Methods("GET")
	noAuthRouter.HandleFunc("/ads", d.Ads.Create).Methods("POST")
	noAuthRouter.HandleFunc("/ads/search", d.Ads.Search).Methods("GET")
	noAuthRouter.HandleFunc("/ads/{id:[0-9]+}/upload_image", d.Ads.UploadImage).Methods("POST")

	noAuthRouter.HandleFunc("/categories", d.Categories.List).Methods("GET")
	noAuthRouter.HandleFunc("/categories/{id:[0-9]+}", d.Categories.GetByID).Methods("GET")

	noAuthRouter.HandleFunc("/user/{id:[0-9]+}", d.Users.Info).Methods("GET")
	noAuthRouter.HandleFunc("/user/register", d.Users.Register).Methods("POST")
	noAuthRouter.HandleFunc("/user/login", d.Users.Login).Methods("POST")

	return r
}
