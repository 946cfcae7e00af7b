// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type HotelService interface {
	CreateHotel(ctx context.Context, owner string, h domain.Hotel, files []domain.ImageFile) (domain.Hotel, error)
	UpdateHotel(ctx context.Context, owner string, h domain.Hotel, files []domain.ImageFile) (domain.Hotel, error)
	ListHotels(ctx context.Context, owner string) ([]domain.Hotel, error)
	GetHotel(ctx context.Context, owner, id string) (*domain.Hotel, error)
}

type UserService interface {
	Register(ctx context.Context, in app.Registration) (string, domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Me(ctx context.Context, id string) (domain.User, error)
}

type Handlers struct {
	Hotels HotelService
	Users  UserService
	Tokens domain.TokenVerifier

	CookieTTL       time.Duration
	SecureCookie    bool
	MaxImageBytes   int64
	MaxCreateImages int

	// MaxUpdateBytes caps the whole update body; update has no file count limit.
	MaxUpdateBytes int64
}

type errorBody struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.MaxImageBytes <= 0 {
		h.MaxImageBytes = 5 << 20
	}
	if h.MaxCreateImages <= 0 {
		h.MaxCreateImages = 6
	}
	if h.MaxUpdateBytes <= 0 {
		h.MaxUpdateBytes = int64(h.MaxCreateImages+1) * h.MaxImageBytes
	}
	authn := Authenticate(h.Tokens)

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/text", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "Hello from endpoint")
	})

	s.mux.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.With(authn).Get("/me", h.me)
	})
	s.mux.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.With(authn).Get("/validate-token", h.validateToken)
		r.Post("/logout", h.logout)
	})

	hotels := func(r chi.Router) {
		r.Use(authn)
		r.Post("/", h.createHotel)
		r.Get("/", h.listHotels)
		r.Get("/{id}", h.getHotel)
		r.Put("/{id}", h.updateHotel)
	}
	s.mux.Route("/api/my-hotels", hotels)
	s.mux.Route("/my-hotels", hotels)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

func writeValidation(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusBadRequest, errorBody{Message: "Validation failed", Errors: errs})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers 304 when the client already holds this representation.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeMessage(w, http.StatusInternalServerError, "Error fetching hotels")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}
