package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"adboard/internal/ad"
	"adboard/internal/contextutil"
	"adboard/internal/etl"
	"adboard/internal/kafka"
	"adboard/internal/middleware"
	"adboard/internal/permissions"
	"adboard/internal/storage"
	types "adboard/internal/types/ad"
	esDoc "adboard/internal/types/elastic"
	myErr "adboard/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	imageField = "image"
	sniffLen   = 512
	// запас под заголовки multipart поверх самого файла
	multipartOverhead = 64 << 10
)

// SearchIndex - то, что нужно обработчикам от поискового индекса
type SearchIndex interface {
	IndexAd(ctx context.Context, doc esDoc.ElasticDoc) error
	SearchByName(ctx context.Context, query string) ([]esDoc.ElasticDoc, error)
	DeleteAd(ctx context.Context, id int64) error
}

type AdHandler struct {
	Logger       *zap.SugaredLogger
	AdRepo       ad.AdRepo
	Storage      storage.ImageStorage
	Events       kafka.EventProducer
	Index        SearchIndex
	PageSize     int
	MaxImageSize int64
}

func NewAdHandler(
	l *zap.SugaredLogger,
	ar ad.AdRepo,
	st storage.ImageStorage,
	ev kafka.EventProducer,
	si SearchIndex,
	pageSize int,
	maxImageSize int64,
) *AdHandler {
	return &AdHandler{
		Logger:       l,
		AdRepo:       ar,
		Storage:      st,
		Events:       ev,
		Index:        si,
		PageSize:     pageSize,
		MaxImageSize: maxImageSize,
	}
}

// ListResponse - страница списка объявлений
type ListResponse struct {
	Count    int     `json:"count"`
	NumPages int     `json:"num_pages"`
	Page     int     `json:"page"`
	Results  []ad.Ad `json:"results"`
}

func (h *AdHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// reindex сразу кладет объявление в поиск, не дожидаясь прохода ETL.
// При ошибке объявление остается с indexed = FALSE и ETL доберет его сам
func (h *AdHandler) reindex(ctx context.Context, a *ad.Ad) {
	if h.Index == nil {
		return
	}
	if err := h.Index.IndexAd(ctx, etl.ToDoc(*a)); err != nil {
		h.Logger.Warnf("failed to index ad %d: %v", a.ID, err)
	}
}

// publish отправляет событие, ошибка брокера на ответ не влияет
func (h *AdHandler) publish(ctx context.Context, t kafka.EventType, a *ad.Ad, userID int64) {
	if h.Events == nil {
		return
	}
	if err := h.Events.SendEvent(ctx, kafka.NewEvent(t, a.ID, userID, a.CategoryID)); err != nil {
		h.Logger.Warnf("failed to publish %s for ad %d: %v", t, a.ID, err)
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, myErr.ErrBadID
	}
	return id, nil
}

// parseOptionalInt - пустая строка означает "параметр не задан"
func parseOptionalInt(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *AdHandler) parseFilter(r *http.Request) (types.Filter, int, error) {
	q := r.URL.Query()
	f := types.Filter{
		Text:     q.Get("text"),
		Location: q.Get("location"),
	}

	for _, raw := range q["cat"] {
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, 0, myErr.ErrInvalidCategory
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}

	var err error
	if f.PriceFrom, err = parseOptionalInt(q.Get("price_from")); err != nil {
		return f, 0, myErr.ErrInvalidPrice
	}
	if f.PriceTo, err = parseOptionalInt(q.Get("price_to")); err != nil {
		return f, 0, myErr.ErrInvalidPrice
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return f, 0, myErr.ErrInvalidPage
		}
	}

	// огромный номер страницы прижимаем, чтобы offset не переполнился;
	// такая страница все равно за пределами выборки и вернется пустой
	if h.PageSize > 0 && page > math.MaxInt/h.PageSize {
		page = math.MaxInt / h.PageSize
	}

	f.Limit = h.PageSize
	f.Offset = (page - 1) * h.PageSize

	return f, page, nil
}

// List handles GET /api/ads
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	f, page, err := h.parseFilter(r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	ads, total, err := h.AdRepo.List(r.Context(), f)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	numPages := 0
	if h.PageSize > 0 {
		numPages = (total + h.PageSize - 1) / h.PageSize
	}

	h.writeJSON(w, http.StatusOK, ListResponse{
		Count:    total,
		NumPages: numPages,
		Page:     page,
		Results:  ads,
	})

	h.Logger.Infof("listed ads: page %d, %d of %d", page, len(ads), total)
}

// GetByID handles GET /api/ads/{id}
func (h *AdHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendError(w, myErr.ErrNoAuth, h.Logger)
		return
	}

	id, err := parseID(r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	a, err := h.AdRepo.GetByID(r.Context(), id)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.publish(r.Context(), kafka.AdViewed, a, sess.UserID)
	h.writeJSON(w, http.StatusOK, a)

	h.Logger.Infof("fetched ad by id: %d", id)
}

func validateAd(name *string, price *int64) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return myErr.ErrEmptyName
	}
	if price != nil && *price < 0 {
		return myErr.ErrInvalidPrice
	}
	return nil
}

// Create handles POST /api/ads
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input types.CreateAd
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendError(w, myErr.ErrInvalidJSONPayload, h.Logger)
		return
	}

	if err := validateAd(&input.Name, &input.Price); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	created, err := h.AdRepo.Create(r.Context(), input)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.reindex(r.Context(), created)
	h.publish(r.Context(), kafka.AdCreated, created, created.AuthorID)
	h.writeJSON(w, http.StatusCreated, created)

	h.Logger.Infof("ad created: %d", created.ID)
}

// loadOwned достает объявление и проверяет, что текущий пользователь может его менять.
// Отсутствие объявления проверяется раньше прав.
func (h *AdHandler) loadOwned(r *http.Request) (*ad.Ad, int64, error) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return nil, 0, myErr.ErrNoAuth
	}

	id, err := parseID(r)
	if err != nil {
		return nil, 0, err
	}

	existing, err := h.AdRepo.GetByID(r.Context(), id)
	if err != nil {
		return nil, 0, err
	}

	if err = permissions.CheckAdOwner(sess, existing.AuthorID); err != nil {
		h.Logger.Infof("user %d is not allowed to change ad %d", sess.UserID, id)
		return nil, 0, err
	}

	return existing, sess.UserID, nil
}

// Update handles PUT and PATCH /api/ads/{id}
func (h *AdHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, userID, err := h.loadOwned(r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	var input types.UpdateAd
	if err = json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendError(w, myErr.ErrInvalidJSONPayload, h.Logger)
		return
	}

	// PUT заменяет объявление целиком
	if r.Method == http.MethodPut && (input.Name == nil || input.Price == nil || input.CategoryID == nil) {
		myErr.SendError(w, myErr.ErrMissingField, h.Logger)
		return
	}

	if err = validateAd(input.Name, input.Price); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if input.IsEmpty() {
		h.writeJSON(w, http.StatusOK, existing)
		return
	}

	updated, err := h.AdRepo.Update(r.Context(), existing.ID, input)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.reindex(r.Context(), updated)
	h.publish(r.Context(), kafka.AdUpdated, updated, userID)
	h.writeJSON(w, http.StatusOK, updated)

	h.Logger.Infof("ad updated: %d", updated.ID)
}

// readImage достает файл из формы и определяет его тип по первым байтам
func (h *AdHandler) readImage(w http.ResponseWriter, r *http.Request) (io.Reader, string, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxImageSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.MaxImageSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", nil, myErr.ErrImageTooLarge
		}
		return nil, "", nil, myErr.ErrMissingImage
	}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		return nil, "", nil, myErr.ErrMissingImage
	}
	closeFn := func() {
		_ = file.Close()
		_ = r.MultipartForm.RemoveAll()
	}

	if header.Size > h.MaxImageSize {
		closeFn()
		return nil, "", nil, myErr.ErrImageTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		closeFn()
		return nil, "", nil, myErr.ErrMissingImage
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if n == 0 || !storage.IsAllowedImage(contentType) {
		closeFn()
		return nil, "", nil, myErr.ErrUnsupportedImage
	}

	return io.MultiReader(bytes.NewReader(head), file), contentType, closeFn, nil
}

// UploadImage handles POST /api/ads/{id}/upload_image
func (h *AdHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if _, err = h.AdRepo.GetByID(r.Context(), id); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	body, contentType, closeFn, err := h.readImage(w, r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	defer closeFn()

	url, err := h.Storage.Upload(r.Context(), storage.ImageKey(id, contentType), contentType, body)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	updated, err := h.AdRepo.SetImage(r.Context(), id, url)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	userID, _ := contextutil.GetUserIDFromContext(r.Context())
	h.publish(r.Context(), kafka.AdImageUploaded, updated, userID)
	h.writeJSON(w, http.StatusOK, updated)

	h.Logger.Infof("image uploaded for ad %d: %s", id, url)
}

// Delete handles DELETE /api/ads/{id}
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, userID, err := h.loadOwned(r)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if err = h.AdRepo.Delete(r.Context(), existing.ID); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if h.Index != nil {
		if err = h.Index.DeleteAd(r.Context(), existing.ID); err != nil {
			h.Logger.Warnf("failed to remove ad %d from search index: %v", existing.ID, err)
		}
	}
	h.publish(r.Context(), kafka.AdDeleted, existing, userID)

	w.WriteHeader(http.StatusNoContent)

	h.Logger.Infof("ad deleted: %d", existing.ID)
}

// Search handles GET /api/ads/search?q={query}
func (h *AdHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		myErr.SendError(w, myErr.ErrMissingQuery, h.Logger)
		return
	}

	docs, err := h.Index.SearchByName(r.Context(), q)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.writeJSON(w, http.StatusOK, docs)

	h.Logger.Infof("searched ads with query: %s", q)
}
