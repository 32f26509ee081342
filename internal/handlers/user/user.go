package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"adboard/internal/middleware"
	"adboard/internal/session"
	myErr "adboard/internal/types/errors"
	types "adboard/internal/types/user"
	"adboard/internal/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxPasswordBytes = 72

type UserHandler struct {
	Logger         *zap.SugaredLogger
	UserRepository user.UserRepo
	SessionManger  session.SessionRepo
}

func NewUserHandler(l *zap.SugaredLogger, ur user.UserRepo, sr session.SessionRepo) *UserHandler {
	return &UserHandler{
		Logger:         l,
		UserRepository: ur,
		SessionManger:  sr,
	}
}

// TokenResponse - ответ на регистрацию и вход
type TokenResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) sendToken(w http.ResponseWriter, r *http.Request, u *user.User, status int) {
	// Создаем для него сессию
	sess, token, err := h.SessionManger.CreateSession(r.Context(), u.ID, u.Role)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err = json.NewEncoder(w).Encode(TokenResponse{Token: token}); err != nil {
		h.Logger.Errorf("failed to encode token: %v", err)
		return
	}

	h.Logger.Infof("created session %v for user %d", sess.ID, u.ID)
}

// Register handles POST /api/user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if form.Username == "" || form.Password == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingField, http.StatusBadRequest, h.Logger)
		return
	}
	// bcrypt не принимает пароли длиннее 72 байт
	if len(form.Password) > maxPasswordBytes {
		myErr.SendError(w, myErr.ErrPasswordTooLong, h.Logger)
		return
	}

	// Создаем пользователя
	u, err := h.UserRepository.CreateUser(r.Context(), form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.sendToken(w, r, u, http.StatusCreated)
}

// Login handles POST /api/user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form types.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.CheckUser(r.Context(), form.Username, form.Password)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.sendToken(w, r, u, http.StatusOK)
}

// Logout handles POST /api/user/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendError(w, myErr.ErrNoAuth, h.Logger)
		return
	}

	if err := h.SessionManger.DestroySession(r.Context(), sess.ID); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.Logger.Infof("session %s destroyed", sess.ID)
}

// Info handles GET /api/user/{id}
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	userInfo, err := h.UserRepository.Info(r.Context(), id)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userInfo); err != nil {
		h.Logger.Errorf("failed to encode user: %v", err)
		return
	}

	h.Logger.Infof("get info by user: %d", id)
}
