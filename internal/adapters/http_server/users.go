package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// decodeAndCheck fills dst from the JSON body and writes a 400 when it is unusable.
func decodeAndCheck(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := check(dst); errs != nil {
		writeValidation(w, errs)
		return false
	}
	return true
}

func (h *Handlers) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.CookieTTL / time.Second),
	})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}
	tok, _, err := h.Users.Register(r.Context(), app.Registration{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if errors.Is(err, domain.ErrConflict) {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("register failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	h.setAuthCookie(w, tok)
	writeMessage(w, http.StatusOK, "User registered OK")
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndCheck(w, r, &req) {
		return
	}
	tok, uid, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeMessage(w, http.StatusBadRequest, "Invalid Credentials")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	h.setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, map[string]string{"userId": uid})
}

func (h *Handlers) validateToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"userId": UserID(r.Context())})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookie,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Me(r.Context(), UserID(r.Context()))
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load current user failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
