package handler

import (
	"encoding/json"
	"net/http"

	"github.com/akielkucki/digitalmarketplace/internal/middleware"
	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/internal/service"
	"github.com/akielkucki/digitalmarketplace/internal/session"
	"github.com/akielkucki/digitalmarketplace/internal/validate"
	"github.com/akielkucki/digitalmarketplace/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
	cookies *session.Store
	audit   *service.AuditService
}

func NewAuthHandler(authService *service.AuthService, cookies *session.Store, audit *service.AuditService) *AuthHandler {
	return &AuthHandler{service: authService, cookies: cookies, audit: audit}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if result := validate.SignupForm(payload.Email, payload.Password, payload.Name); !result.OK {
		writeError(w, apierror.BadRequest(result.Reason))
		return
	}

	user, token, err := h.service.Signup(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		h.audit.Record(r.Context(), model.AuditActionSignup, actorFromRequest(r, payload.Email), err)
		writeError(w, err)
		return
	}

	h.audit.Record(r.Context(), model.AuditActionSignup, actorFromUser(r, user), nil)
	h.cookies.Set(w, token)
	writeUser(w, http.StatusOK, user.Public())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if result := validate.LoginForm(payload.Email, payload.Password); !result.OK {
		writeError(w, apierror.BadRequest(result.Reason))
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.audit.Record(r.Context(), model.AuditActionLogin, actorFromRequest(r, payload.Email), err)
		writeError(w, err)
		return
	}

	h.audit.Record(r.Context(), model.AuditActionLogin, actorFromUser(r, user), nil)
	h.cookies.Set(w, token)
	writeUser(w, http.StatusOK, user.Public())
}

// Logout clears the cookie. The token itself stays valid until expiry,
// stateless sessions have no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := model.AuditActor{IP: clientIP(r)}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor.UserID = claims.UserID
		actor.Email = claims.Email
	}
	h.audit.Record(r.Context(), model.AuditActionLogout, actor, nil)

	h.cookies.Clear(w)
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("not authenticated"))
		return
	}

	user, err := h.service.UserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeUser(w, http.StatusOK, user.PublicWithUpdated())
}
