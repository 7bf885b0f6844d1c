package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Vovarama1992/content-calendar/internal/models"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ContentHandler struct {
	repo ports.ContentRepository
	log  *logger.ZapLogger
	now  func() time.Time
}

func NewContentHandler(repo ports.ContentRepository, log *logger.ZapLogger) *ContentHandler {
	return &ContentHandler{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// contentRequest is the write body. "description" is accepted as an alias of "desc".
type contentRequest struct {
	ID          *int              `json:"id"`
	Title       string            `json:"title"`
	Desc        *string           `json:"desc"`
	Description *string           `json:"description"`
	Status      models.Status     `json:"status"`
	ContentType models.Type       `json:"contentType"`
	DateCreated models.Timestamp  `json:"dateCreated"`
	DateUpdated *models.Timestamp `json:"dateUpdated"`
	URL         string            `json:"url"`
}

func (req contentRequest) toModel() models.Content {
	c := models.Content{
		ID:          req.ID,
		Title:       req.Title,
		Status:      req.Status,
		ContentType: req.ContentType,
		DateCreated: req.DateCreated.Time,
		DateUpdated: req.DateUpdated.Ptr(),
		URL:         req.URL,
	}
	switch {
	case req.Desc != nil:
		c.Desc = *req.Desc
	case req.Description != nil:
		c.Desc = *req.Description
	}
	return c
}

func (h *ContentHandler) decode(w http.ResponseWriter, r *http.Request) (models.Content, bool) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, decodeMessage(err), http.StatusBadRequest)
		return models.Content{}, false
	}

	c := req.toModel()
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return models.Content{}, false
	}
	return c, true
}

// decodeMessage keeps field-level errors and hides decoder internals.
func decodeMessage(err error) string {
	for _, target := range []error{models.ErrInvalidStatus, models.ErrInvalidType, models.ErrInvalidTimestamp} {
		if errors.Is(err, target) {
			return err.Error()
		}
	}
	return "invalid json"
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *ContentHandler) storeFailed(w http.ResponseWriter, op string, err error) {
	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: op + " failed",
		Error:   err,
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *ContentHandler) writeList(w http.ResponseWriter, r *http.Request, items []models.Content) {
	if items == nil {
		items = []models.Content{}
	}
	render.JSON(w, r, items)
}

// GET /api/content
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.storeFailed(w, "list content", err)
		return
	}
	h.writeList(w, r, items)
}

// GET /api/content/{id}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	c, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.storeFailed(w, "get content", err)
		return
	}
	if c == nil {
		http.Error(w, "content not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, c)
}

// POST /api/content
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}

	c.ID = nil
	if c.DateCreated.IsZero() {
		c.DateCreated = h.now()
	}

	if err := h.repo.Save(r.Context(), &c); err != nil {
		h.storeFailed(w, "create content", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "content created",
		Fields:  map[string]any{"contentID": *c.ID},
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// PUT /api/content/{id}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, ok := h.decode(w, r)
	if !ok {
		return
	}

	exists, err := h.repo.ExistsByID(r.Context(), id)
	if err != nil {
		h.storeFailed(w, "update content", err)
		return
	}
	if !exists {
		http.Error(w, "content not found", http.StatusNotFound)
		return
	}

	c.ID = models.IntPtr(id)
	now := h.now()
	c.DateUpdated = &now

	// the row may be deleted between the check and the write
	if err := h.repo.Save(r.Context(), &c); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "content not found", http.StatusNotFound)
			return
		}
		h.storeFailed(w, "update content", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "content updated",
		Fields:  map[string]any{"contentID": id},
	})

	render.NoContent(w, r)
}

// DELETE /api/content/{id}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	exists, err := h.repo.ExistsByID(r.Context(), id)
	if err != nil {
		h.storeFailed(w, "delete content", err)
		return
	}
	if !exists {
		http.Error(w, "content not found", http.StatusNotFound)
		return
	}

	deleted, err := h.repo.DeleteByID(r.Context(), id)
	if err != nil {
		h.storeFailed(w, "delete content", err)
		return
	}
	if !deleted {
		http.Error(w, "content not found", http.StatusNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "content deleted",
		Fields:  map[string]any{"contentID": id},
	})

	render.NoContent(w, r)
}

// GET /api/content/filter/{keyword}
func (h *ContentHandler) FilterByTitle(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, so the param is still escaped then
	keyword := chi.URLParam(r, "keyword")
	if r.URL.RawPath != "" {
		if k, err := url.PathUnescape(keyword); err == nil {
			keyword = k
		}
	}

	items, err := h.repo.FindAllByTitleContains(r.Context(), keyword)
	if err != nil {
		h.storeFailed(w, "filter content by title", err)
		return
	}
	h.writeList(w, r, items)
}

// GET /api/content/filter/status/{status}
func (h *ContentHandler) FilterByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := models.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.repo.ListByStatus(r.Context(), status)
	if err != nil {
		h.storeFailed(w, "filter content by status", err)
		return
	}
	h.writeList(w, r, items)
}
