// Package handlers содержит HTTP обработчики реестра.
// Контракт повторяет документное API: PUT кладет документ целиком,
// PATCH мержит поля, GET /products отдает map по SKU.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/bookpos/internal/ledger/middleware"
	"github.com/iudanet/bookpos/internal/ledger/storage"
	"github.com/iudanet/bookpos/pkg/api"
)

// Тело документа ограничено: реестр принимает только небольшие JSON
const maxBodySize = 1 << 20 // 1 MiB

// Handler обрабатывает запросы документного API реестра
type Handler struct {
	store  storage.Store
	logger *slog.Logger
}

// New создает новый Handler
func New(store storage.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Router собирает chi.Mux со всеми маршрутами и middleware
func (h *Handler) Router() *chi.Mux {
	mux := chi.NewMux()

	mux.Use(middleware.RecoveryMiddleware(h.logger))
	mux.Use(middleware.LoggingWithSkip(h.logger, []string{"/health"}))

	mux.Get("/health", h.Health)

	mux.Put("/sales/{id}", h.PutSale)
	mux.Get("/sales/{id}", h.GetSale)

	mux.Get("/products", h.ListProducts)
	mux.Put("/products/{sku}", h.PutProduct)
	mux.Patch("/products/{sku}", h.PatchProduct)
	mux.Delete("/products/{sku}", h.DeleteProduct)

	mux.Put("/daily_sales/{date}", h.PutDailySummary)
	mux.Get("/daily_sales/{date}", h.GetDailySummary)

	return mux
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status string `json:"status"`
}

// Health обрабатывает GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// PutSale обрабатывает PUT /sales/{id}
// Документ продажи кладется целиком, повторный PUT перезаписывает
func (h *Handler) PutSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	if err := h.store.PutSale(r.Context(), id, doc); err != nil {
		h.serverError(w, r, "put sale", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetSale обрабатывает GET /sales/{id}
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.store.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSaleNotFound) {
			h.writeError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.serverError(w, r, "get sale", err)
		return
	}
	h.writeRaw(w, http.StatusOK, doc)
}

// ListProducts обрабатывает GET /products
// Отдает map документов по SKU, пустой каталог - пустой объект
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.serverError(w, r, "list products", err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

// PutProduct обрабатывает PUT /products/{sku}
func (h *Handler) PutProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	doc, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	if err := h.store.PutProduct(r.Context(), sku, doc); err != nil {
		h.serverError(w, r, "put product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"sku": sku})
}

// PatchProduct обрабатывает PATCH /products/{sku}
// Мержит поля в существующий документ, не затирая остальные
func (h *Handler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		h.writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	if err := h.store.PatchProduct(r.Context(), sku, fields); err != nil {
		h.serverError(w, r, "patch product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"sku": sku})
}

// DeleteProduct обрабатывает DELETE /products/{sku}
// Идемпотентен: удаление отсутствующего товара возвращает 200
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	if err := h.store.DeleteProduct(r.Context(), sku); err != nil {
		h.serverError(w, r, "delete product", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"sku": sku})
}

// PutDailySummary обрабатывает PUT /daily_sales/{date}
func (h *Handler) PutDailySummary(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	doc, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	if err := h.store.PutDailySummary(r.Context(), date, doc); err != nil {
		h.serverError(w, r, "put daily summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"date": date})
}

// GetDailySummary обрабатывает GET /daily_sales/{date}
func (h *Handler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	doc, err := h.store.GetDailySummary(r.Context(), date)
	if err != nil {
		if errors.Is(err, storage.ErrSummaryNotFound) {
			h.writeError(w, http.StatusNotFound, "daily summary not found")
			return
		}
		h.serverError(w, r, "get daily summary", err)
		return
	}
	h.writeRaw(w, http.StatusOK, doc)
}

// readDocument читает тело запроса и проверяет, что это валидный JSON
func (h *Handler) readDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read body")
		return nil, false
	}
	if !json.Valid(body) {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	return body, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handler) writeRaw(w http.ResponseWriter, status int, doc json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(doc); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, api.ErrorResponse{Error: msg})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("storage operation failed",
		slog.String("op", op),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}
