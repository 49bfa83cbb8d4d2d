package rolloff_api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/BearBump/RollOff/internal/services/inventory"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	ListContainers(ctx context.Context) ([]*models.Container, error)
	GetContainer(ctx context.Context, id string) (*models.Container, error)
	CreateContainer(ctx context.Context, in models.Container, updatedBy string) (*models.Container, error)
	UpdateContainer(ctx context.Context, id string, in models.Container, updatedBy string) (*models.Container, error)
	DeleteContainer(ctx context.Context, id string) (*models.Container, error)

	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	SearchCustomers(ctx context.Context, name string) ([]*models.Customer, error)
	CreateCustomer(ctx context.Context, d models.CustomerDraft) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (*models.Customer, error)

	ListLogEntries(ctx context.Context) ([]*models.LogEntry, error)
	ListContainerLogEntries(ctx context.Context, containerID string) ([]*models.LogEntry, error)
	ListCustomerLogEntries(ctx context.Context, customerID int64) ([]*models.LogEntry, error)
	CreateLogEntry(ctx context.Context, d models.LogEntryDraft) (*models.LogEntry, error)
}

var _ Service = (*inventory.Service)(nil)

// RolloffAPI — JSON REST поверх inventory.Service. Монтируется под /api/v1.
type RolloffAPI struct {
	svc Service
}

func New(svc Service) *RolloffAPI {
	return &RolloffAPI{svc: svc}
}

func (a *RolloffAPI) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/containers", func(r chi.Router) {
		r.Get("/", a.listContainers)
		r.Post("/", a.createContainer)
		r.Get("/{id}", a.getContainer)
		r.Put("/{id}", a.updateContainer)
		r.Delete("/{id}", a.deleteContainer)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", a.listCustomers)
		r.Post("/", a.createCustomer)
		r.Get("/search/{name}", a.searchCustomers)
		r.Get("/{id}", a.getCustomer)
		r.Put("/{id}", a.updateCustomer)
		r.Delete("/{id}", a.deleteCustomer)
	})

	r.Route("/log-entries", func(r chi.Router) {
		r.Get("/", a.listLogEntries)
		r.Post("/", a.createLogEntry)
		r.Get("/container/{id}", a.containerLogEntries)
		r.Get("/customer/{id}", a.customerLogEntries)
	})

	return r
}

// pathParam возвращает сегмент пути в раскодированном виде. chi матчит по RawPath,
// если он есть, и тогда параметр приходит экранированным.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func int64Param(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(pathParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Fields: map[string]string{key: "must be a positive integer"}}
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку сервиса в статус и тело {"error": "..."}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"

	var verr *models.ValidationError
	switch {
	case errors.Is(err, errBadBody):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Error()
	case errors.Is(err, inventory.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, inventory.ErrConflict), errors.Is(err, inventory.ErrArchived):
		status, msg = http.StatusConflict, err.Error()
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, rolloffapi.ErrorBody{Error: msg})
}

func respond[T any](w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}
