package http

import (
	"encoding/json"
	"net/http"

	"github.com/viralforge/marketplace/internal/domain"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Error: errorBody{Code: code, Message: message}})
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code, message := mapDomainError(err)
	writeError(w, status, code, message)
}

type userView struct {
	Identity         string `json:"identity"`
	Role             string `json:"role"`
	BuyerReputation  uint32 `json:"buyer_reputation"`
	SellerReputation uint32 `json:"seller_reputation"`
}

func toUserView(u domain.User) userView {
	return userView{
		Identity:         u.Identity,
		Role:             string(u.Role),
		BuyerReputation:  u.BuyerReputation,
		SellerReputation: u.SellerReputation,
	}
}

func toUserViews(users []domain.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views
}

type productView struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	Quantity    uint32 `json:"quantity"`
	Category    string `json:"category"`
	Seller      string `json:"seller"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		Seller:      p.Seller,
	}
}

func toProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

type orderView struct {
	ID                  uint32 `json:"id"`
	Buyer               string `json:"buyer"`
	Seller              string `json:"seller"`
	ProductID           uint32 `json:"product_id"`
	Quantity            uint32 `json:"quantity"`
	Status              string `json:"status"`
	BuyerRated          bool   `json:"buyer_rated"`
	SellerRated         bool   `json:"seller_rated"`
	BuyerRequestsCancel bool   `json:"buyer_requests_cancel"`
	SellerAcceptsCancel bool   `json:"seller_accepts_cancel"`
}

func toOrderView(o domain.Order) orderView {
	return orderView{
		ID:                  o.ID,
		Buyer:               o.Buyer,
		Seller:              o.Seller,
		ProductID:           o.ProductID,
		Quantity:            o.Quantity,
		Status:              string(o.Status),
		BuyerRated:          o.BuyerRated,
		SellerRated:         o.SellerRated,
		BuyerRequestsCancel: o.BuyerRequestsCancel,
		SellerAcceptsCancel: o.SellerAcceptsCancel,
	}
}

func toOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views
}
