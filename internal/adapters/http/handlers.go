package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/viralforge/marketplace/internal/application"
	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
	"github.com/viralforge/marketplace/internal/reports"
)

// Handler exposes the marketplace engine and the reporting service over HTTP.
// The reports service is optional; when nil the report routes are not mounted.
type Handler struct {
	logger   *slog.Logger
	service  *application.Service
	reports  *reports.Service
	verifier ports.TokenVerifier
}

func NewHandler(logger *slog.Logger, service *application.Service, reportsSvc *reports.Service, verifier ports.TokenVerifier) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		reports:  reportsSvc,
		verifier: verifier,
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}

type registerRequest struct {
	Role string `json:"role"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.service.Register(r.Context(), caller, domain.Role(req.Role)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]string{"identity": caller, "role": req.Role})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.service.ChangeRole(r.Context(), caller, domain.Role(req.Role)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"identity": caller, "role": req.Role})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	user, err := h.service.GetUser(r.Context(), identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserView(user))
}

func (h *Handler) isRegistered(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	registered, err := h.service.IsRegistered(r.Context(), identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]bool{"registered": registered})
}

type publishRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	Quantity    uint32 `json:"quantity"`
	Category    string `json:"category"`
}

func (h *Handler) publishProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	id, err := h.service.Publish(r.Context(), caller, application.PublishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]uint32{"product_id": id})
}

func (h *Handler) listOwnProducts(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	products, err := h.service.ListOwnProducts(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toProductViews(products))
}

func (h *Handler) listProductsBySeller(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "identity")
	products, err := h.service.ListProductsBy(r.Context(), seller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toProductViews(products))
}

type createOrderRequest struct {
	ProductID uint32 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	id, err := h.service.CreateOrder(r.Context(), caller, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]uint32{"order_id": id})
}

func (h *Handler) markShipped(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.MarkShipped)
}

func (h *Handler) markReceived(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.MarkReceived)
}

func (h *Handler) requestCancellation(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.RequestCancellation)
}

func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, caller string, orderID uint32) error) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	orderID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id")
		return
	}
	if err := action(r.Context(), caller, orderID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]uint32{"order_id": orderID})
}

type rateRequest struct {
	Rating uint32 `json:"rating"`
}

func (h *Handler) rateSeller(w http.ResponseWriter, r *http.Request) {
	h.rateAction(w, r, h.service.RateSeller)
}

func (h *Handler) rateBuyer(w http.ResponseWriter, r *http.Request) {
	h.rateAction(w, r, h.service.RateBuyer)
}

func (h *Handler) rateAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, caller string, orderID, rating uint32) error) {
	caller, ok := callerFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}
	orderID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id")
		return
	}
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := action(r.Context(), caller, orderID, req.Rating); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]uint32{"order_id": orderID, "rating": req.Rating})
}

func (h *Handler) listAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.AllUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserViews(users))
}

func (h *Handler) listAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.AllProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toProductViews(products))
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.AllOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toOrderViews(orders))
}

func (h *Handler) marketCounts(w http.ResponseWriter, r *http.Request) {
	productCount, err := h.service.ProductCount(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	orderCount, err := h.service.OrderCount(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]uint32{
		"product_count": productCount,
		"order_count":   orderCount,
	})
}

func (h *Handler) topSellers(w http.ResponseWriter, r *http.Request) {
	users, err := h.reports.TopSellers(r.Context(), reports.DefaultTopN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserViews(users))
}

func (h *Handler) topBuyers(w http.ResponseWriter, r *http.Request) {
	users, err := h.reports.TopBuyers(r.Context(), reports.DefaultTopN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserViews(users))
}

func (h *Handler) topProductsSold(w http.ResponseWriter, r *http.Request) {
	sales, err := h.reports.TopProductsSold(r.Context(), reports.DefaultTopN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sales)
}

func (h *Handler) totalOrdersFor(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	total, err := h.reports.TotalOrdersFor(r.Context(), identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"identity": identity, "total_orders": total})
}

func parseID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
