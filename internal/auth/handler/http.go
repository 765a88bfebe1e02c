// Package handler adapts the authentication service to its JSON-over-HTTP
// surface.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"auth-service/internal/auth/service"
	"auth-service/internal/security"
)

// Handler serves the authentication routes.
type Handler struct {
	svc *service.Service
	log zerolog.Logger
}

// New returns a Handler backed by svc.
func New(svc *service.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the authentication routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("POST /signup", h.signup)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("POST /verify-2fa", h.verifyTwoFactor)
	mux.HandleFunc("POST /logout", h.logout)
	mux.HandleFunc("POST /verify-token", h.verifyToken)
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyTwoFactorRequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	Code           string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type twoFactorResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "auth service"})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Signup(r.Context(), req.Email, req.Password, req.Requires2FA); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully!"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.TwoFactorRequired {
		writeJSON(w, http.StatusPartialContent, twoFactorResponse{
			Message:        "2FA required",
			LoginAttemptID: res.ChallengeID,
		})
		return
	}
	http.SetCookie(w, res.Cookie)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req verifyTwoFactorRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.CompleteChallenge(r.Context(), req.Email, req.LoginAttemptID, req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	http.SetCookie(w, res.Cookie)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(security.CookieName); err == nil {
		token = c.Value
	}
	cleared, err := h.svc.Logout(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	http.SetCookie(w, cleared)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.VerifyToken(r.Context(), req.Token); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// decode reads the JSON request body into dst. On failure it writes a 422 and
// returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Malformed request"})
		return false
	}
	return true
}

// writeError maps a protocol error to its HTTP status and JSON body.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, service.ErrUserAlreadyExists):
		status, msg = http.StatusConflict, "User already exists"
	case errors.Is(err, service.ErrUserNotFound):
		status, msg = http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrIncorrectCredentials):
		status, msg = http.StatusUnauthorized, "Incorrect credentials"
	case errors.Is(err, service.ErrChallengeNotFound):
		status, msg = http.StatusUnauthorized, "Challenge not found"
	case errors.Is(err, service.ErrMissingToken):
		status, msg = http.StatusBadRequest, "Missing auth token"
	case errors.Is(err, service.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, "Invalid auth token"
	default:
		status, msg = http.StatusInternalServerError, "Unexpected error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
