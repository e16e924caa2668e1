package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sammk21/ecommerce-admin/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"    example:"admin@example.com"`
	Password string `json:"password" example:"secret"`
}

type loginData struct {
	Email string `json:"email" example:"admin@example.com"`
	Role  string `json:"role"  example:"admin"`
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Validate admin credentials and set the HTTP-only session cookie. The cookie is valid for 30 days.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Admin credentials"
//	@Success		200		{object}	response.Envelope{data=loginData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if errors.Is(err, ErrInvalidLogin) {
		response.Unauthorized(w, "invalid email or password")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	http.SetCookie(w, h.svc.SessionCookie(token))
	response.OK(w, loginData{Email: req.Email, Role: "admin"})
}

// Logout godoc
//
//	@Summary		Admin logout
//	@Description	Clear the session cookie.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	response.Envelope
//	@Router			/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.svc.ExpiredCookie())
	response.OK(w, map[string]bool{"loggedOut": true})
}
