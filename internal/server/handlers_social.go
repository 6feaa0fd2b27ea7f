package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

type friendResponse struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

type friendsResponse struct {
	Friends []friendResponse `json:"friends"`
}

type importContactsRequest struct {
	Contacts []string `json:"contacts"`
}

type importContactsResponse struct {
	Created  []string `json:"created"`
	NotFound []string `json:"notFound"`
}

type homeFeedResponse struct {
	Personalized  bool                         `json:"personalized"`
	Categories    map[string][]productResponse `json:"categories"`
	CoverProducts []productResponse            `json:"coverProducts"`
}

type productViewResponse struct {
	Product     productResponse         `json:"product"`
	SameProduct []socialMentionResponse `json:"sameProduct"`
	SameBrand   []socialMentionResponse `json:"sameBrand"`
}

type socialMentionResponse struct {
	FriendName  string `json:"friendName"`
	Relation    string `json:"relation"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Brand       string `json:"brand"`
	OrderedAt   string `json:"orderedAt"`
}

type cartSuggestRequest struct {
	ProductIDs []int64 `json:"productIds"`
}

type cartSuggestResponse struct {
	Items    []cartItemProofResponse `json:"items"`
	Messages []cartMessageResponse   `json:"messages,omitempty"`
}

type cartItemProofResponse struct {
	ProductName   string                    `json:"productName"`
	DirectProduct []directPurchaseResponse  `json:"directProduct"`
	SameBrand     []relatedPurchaseResponse `json:"sameBrand"`
	SameCategory  []relatedPurchaseResponse `json:"sameCategory"`
}

type directPurchaseResponse struct {
	FriendName string `json:"friendName"`
	OrderedAt  string `json:"orderedAt"`
}

type relatedPurchaseResponse struct {
	FriendName  string `json:"friendName"`
	ProductName string `json:"productName"`
	OrderedAt   string `json:"orderedAt"`
}

type cartMessageResponse struct {
	ProductName string `json:"productName"`
	Message     string `json:"message"`
}

func (h *APIHandlers) handleHomeFeed(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	feed, err := h.social.HomeFeed(r.Context(), user.Phone)
	if err != nil {
		h.respondServiceError(w, err, "failed to build home feed", "userId", user.ID)
		return
	}

	resp := homeFeedResponse{
		Personalized:  feed.Personalized,
		Categories:    make(map[string][]productResponse, len(feed.Categories)),
		CoverProducts: toProductResponses(feed.CoverProducts),
	}
	for category, products := range feed.Categories {
		resp.Categories[category] = toProductResponses(products)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleFriends(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	friends, err := h.social.ResolveReach(r.Context(), user.Phone)
	if err != nil {
		h.respondServiceError(w, err, "failed to resolve reach", "userId", user.ID)
		return
	}

	resp := friendsResponse{Friends: make([]friendResponse, 0, len(friends))}
	for _, friend := range friends {
		resp.Friends = append(resp.Friends, friendResponse{
			Phone:    friend.Phone,
			Name:     friend.Name,
			Relation: friend.Relation,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var payload importContactsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.social.ImportContacts(r.Context(), user.Phone, payload.Contacts)
	if err != nil {
		h.respondServiceError(w, err, "failed to import contacts", "userId", user.ID)
		return
	}

	if err := h.accounts.UpdateContacts(r.Context(), user.Phone, payload.Contacts); err != nil {
		h.logger.Warn("failed to store raw contacts", "error", err, "userId", user.ID)
	}

	respondJSON(w, http.StatusOK, importContactsResponse{
		Created:  orEmptyStrings(report.Created),
		NotFound: orEmptyStrings(report.NotFound),
	})
}

func (h *APIHandlers) handleProductView(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	view, err := h.social.ProductView(r.Context(), user.Phone, productID)
	if err != nil {
		h.respondServiceError(w, err, "failed to build product view", "productId", productID)
		return
	}

	respondJSON(w, http.StatusOK, productViewResponse{
		Product:     toProductResponse(view.Product),
		SameProduct: toMentionResponses(view.SameProduct),
		SameBrand:   toMentionResponses(view.SameBrand),
	})
}

func (h *APIHandlers) handleCartSuggest(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var payload cartSuggestRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	proofs, err := h.social.SuggestForCart(r.Context(), user.Phone, payload.ProductIDs)
	if err != nil {
		h.respondServiceError(w, err, "failed to build cart suggestions", "userId", user.ID)
		return
	}

	resp := cartSuggestResponse{Items: make([]cartItemProofResponse, 0, len(proofs))}
	for _, proof := range proofs {
		resp.Items = append(resp.Items, toProofResponse(proof))
	}

	// Message generation is best-effort: a generator failure never fails
	// the request, the composed proof data still goes out.
	if h.suggester.Enabled() {
		messages, err := h.suggester.Generate(r.Context(), proofs)
		if err != nil {
			h.logger.Warn("suggestion generator unavailable", "error", err, "userId", user.ID)
		} else {
			for _, msg := range messages {
				resp.Messages = append(resp.Messages, cartMessageResponse{
					ProductName: msg.ProductName,
					Message:     msg.RecommenderMessage,
				})
			}
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func toProofResponse(proof domain.CartItemProof) cartItemProofResponse {
	out := cartItemProofResponse{
		ProductName:   proof.ProductName,
		DirectProduct: make([]directPurchaseResponse, 0, len(proof.DirectProduct)),
		SameBrand:     make([]relatedPurchaseResponse, 0, len(proof.SameBrand)),
		SameCategory:  make([]relatedPurchaseResponse, 0, len(proof.SameCategory)),
	}
	for _, d := range proof.DirectProduct {
		out.DirectProduct = append(out.DirectProduct, directPurchaseResponse{
			FriendName: d.FriendName,
			OrderedAt:  formatTime(d.OrderedAt),
		})
	}
	for _, rel := range proof.SameBrand {
		out.SameBrand = append(out.SameBrand, relatedPurchaseResponse{
			FriendName:  rel.FriendName,
			ProductName: rel.ProductName,
			OrderedAt:   formatTime(rel.OrderedAt),
		})
	}
	for _, rel := range proof.SameCategory {
		out.SameCategory = append(out.SameCategory, relatedPurchaseResponse{
			FriendName:  rel.FriendName,
			ProductName: rel.ProductName,
			OrderedAt:   formatTime(rel.OrderedAt),
		})
	}
	return out
}

func toMentionResponses(mentions []domain.SocialMention) []socialMentionResponse {
	out := make([]socialMentionResponse, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, socialMentionResponse{
			FriendName:  m.FriendName,
			Relation:    m.Relation,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Brand:       m.Brand,
			OrderedAt:   formatTime(m.OrderedAt),
		})
	}
	return out
}

func orEmptyStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
