package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

type contextKey string

const (
	userContextKey  contextKey = "currentUser"
	tokenContextKey contextKey = "bearerToken"
)

// Authenticator resolves a bearer token to the current user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health         HealthService
	API            *APIHandlers
	Auth           Authenticator
	AllowedOrigins []string
}

// NewRouter wires the HTTP routes exposed by the backend API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(loggingMiddleware(logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err)
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	})

	if deps.API != nil {
		r.Post("/auth/register", deps.API.handleRegister)
		r.Post("/auth/login", deps.API.handleLogin)
		r.Get("/products", deps.API.handleListProducts)
		r.Get("/categories", deps.API.handleListCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(authMiddleware(logger, deps.Auth))

			pr.Post("/auth/logout", deps.API.handleLogout)
			pr.Get("/auth/me", deps.API.handleCurrentUser)

			pr.Get("/home", deps.API.handleHomeFeed)
			pr.Get("/friends", deps.API.handleFriends)
			pr.Post("/contacts/import", deps.API.handleImportContacts)

			pr.Post("/cart/suggest", deps.API.handleCartSuggest)

			pr.Post("/products", deps.API.handleCreateProduct)
			pr.Get("/products/{productId}", deps.API.handleProductView)

			pr.Post("/categories", deps.API.handleCreateCategory)
			pr.Delete("/categories/{categoryId}", deps.API.handleDeleteCategory)
			pr.Post("/categories/{categoryId}/products", deps.API.handleAddProductsToCategory)

			pr.Post("/orders", deps.API.handlePlaceOrder)
			pr.Get("/orders", deps.API.handleOrderHistory)
		})
	}

	return r
}

// authMiddleware validates the bearer token and injects the resolved user
// into the request context.
func authMiddleware(logger *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				writeError(w, http.StatusUnauthorized, "authentication is not configured")
				return
			}
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				status, msg := statusForError(err)
				if status >= http.StatusInternalServerError {
					logger.Error("authentication failed", "error", err)
					msg = "authentication failed"
				}
				writeError(w, status, msg)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func currentUser(r *http.Request) (domain.User, bool) {
	user, ok := r.Context().Value(userContextKey).(domain.User)
	return user, ok
}

func currentToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenContextKey).(string)
	return token
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
