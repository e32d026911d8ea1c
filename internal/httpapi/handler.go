// Package httpapi is the HTTP surface of the order service: a single /order
// resource supporting create, lookup and CORS preflight.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"demo/foodorders/internal/config"
	"demo/foodorders/internal/model"
	"demo/foodorders/internal/service"
	"demo/foodorders/internal/validate"
)

const maxBodyBytes = 1 << 20

type OrderService interface {
	GetOrder(ctx context.Context, id string) (model.Order, error)
	CreateOrUpdateOrder(ctx context.Context, o model.Order) (model.Order, error)
}

type Handler struct {
	orders OrderService
	cors   config.CORS
}

func NewHandler(orders OrderService, cors config.CORS) *Handler {
	return &Handler{orders: orders, cors: cors}
}

// CreateOrder handles POST /order. An existing order with the same id is
// overwritten.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, codeInvalidJSON, "request body exceeds 1 MiB")
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "could not read request body")
		return
	}

	// Unmarshal rejects anything after the first value.
	var req model.Order
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "request body must be a JSON object with string fields orderId and item")
		return
	}

	o, err := h.orders.CreateOrUpdateOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// GetOrder handles GET /order?orderId=...
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), r.URL.Query().Get("orderId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Preflight answers OPTIONS /order with an empty body.
func (h *Handler) Preflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Max-Age", maxAge(h.cors))
	w.WriteHeader(http.StatusOK)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalid):
		writeError(w, http.StatusBadRequest, codeInvalidOrder, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Order not found")
	default:
		writeError(w, http.StatusInternalServerError, codeStoreUnavailable, "internal error")
	}
}
