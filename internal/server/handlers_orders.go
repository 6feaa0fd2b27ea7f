package server

import (
	"net/http"
)

type placeOrderRequest struct {
	ProductIDs []int64 `json:"productIds"`
}

type placeOrderResponse struct {
	OrderID  string  `json:"orderId"`
	PlacedAt string  `json:"placedAt"`
	Created  []int64 `json:"created"`
	NotFound []int64 `json:"notFound"`
}

type orderLineResponse struct {
	OrderID     string  `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	OrderedAt   string  `json:"orderedAt"`
}

type orderHistoryResponse struct {
	Orders []orderLineResponse `json:"orders"`
}

func (h *APIHandlers) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var payload placeOrderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.orders.PlaceOrder(r.Context(), user.Email, payload.ProductIDs)
	if err != nil {
		h.respondServiceError(w, err, "failed to place order", "userId", user.ID)
		return
	}

	resp := placeOrderResponse{
		OrderID:  report.OrderID,
		PlacedAt: formatTime(report.PlacedAt),
		Created:  report.Created,
		NotFound: report.NotFound,
	}
	if resp.Created == nil {
		resp.Created = []int64{}
	}
	if resp.NotFound == nil {
		resp.NotFound = []int64{}
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *APIHandlers) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	lines, err := h.orders.OrderHistory(r.Context(), user.Email)
	if err != nil {
		h.respondServiceError(w, err, "failed to fetch order history", "userId", user.ID)
		return
	}

	resp := orderHistoryResponse{Orders: make([]orderLineResponse, 0, len(lines))}
	for _, line := range lines {
		resp.Orders = append(resp.Orders, orderLineResponse{
			OrderID:     line.OrderID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Brand:       line.Brand,
			Category:    line.Category,
			Price:       line.Price,
			OrderedAt:   formatTime(line.OrderedAt),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
