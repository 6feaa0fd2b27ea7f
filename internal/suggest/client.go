// Package suggest calls the external message generator that turns cart
// social-proof data into short recommender blurbs. The integration is
// optional: an unconfigured client is a no-op and callers fall back to the
// raw proof data.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

// Message is one generated blurb keyed by the cart product's name.
type Message struct {
	ProductName        string `json:"product_name"`
	RecommenderMessage string `json:"recommender_message"`
}

// Client talks to the message generator over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a Client. An empty baseURL yields a disabled client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the generator is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type cartItemPayload struct {
	ProductName     string           `json:"product_name"`
	DirectProductID []directPayload  `json:"direct_product_id"`
	SameBrand       []relatedPayload `json:"same_brand"`
	SameCategory    []relatedPayload `json:"same_category"`
}

type directPayload struct {
	FriendName string `json:"friend_name"`
	Timestamp  string `json:"timestamp"`
}

type relatedPayload struct {
	ProductName string `json:"product_name"`
	FriendName  string `json:"friend_name"`
	Timestamp   string `json:"timestamp"`
}

type generateResponse struct {
	Messages []Message `json:"messages"`
}

// Generate posts the composed cart proofs and returns one message per
// product. Callers should treat any error as soft and keep the raw proofs.
func (c *Client) Generate(ctx context.Context, items []domain.CartItemProof) ([]Message, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("suggest client is not configured")
	}

	payload := make([]cartItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, toPayload(item))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode suggest request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build suggest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call suggest service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("suggest service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode suggest response: %w", err)
	}
	return out.Messages, nil
}

func toPayload(item domain.CartItemProof) cartItemPayload {
	p := cartItemPayload{
		ProductName:     item.ProductName,
		DirectProductID: make([]directPayload, 0, len(item.DirectProduct)),
		SameBrand:       make([]relatedPayload, 0, len(item.SameBrand)),
		SameCategory:    make([]relatedPayload, 0, len(item.SameCategory)),
	}
	for _, d := range item.DirectProduct {
		p.DirectProductID = append(p.DirectProductID, directPayload{
			FriendName: d.FriendName,
			Timestamp:  d.OrderedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, r := range item.SameBrand {
		p.SameBrand = append(p.SameBrand, relatedPayload{
			ProductName: r.ProductName,
			FriendName:  r.FriendName,
			Timestamp:   r.OrderedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, r := range item.SameCategory {
		p.SameCategory = append(p.SameCategory, relatedPayload{
			ProductName: r.ProductName,
			FriendName:  r.FriendName,
			Timestamp:   r.OrderedAt.UTC().Format(time.RFC3339),
		})
	}
	return p
}
