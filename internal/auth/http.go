// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/facetrace/internal/platform/constants"
	requestutil "github.com/taibuivan/facetrace/internal/platform/request"
	"github.com/taibuivan/facetrace/internal/platform/respond"
	"github.com/taibuivan/facetrace/internal/platform/validate"
)

// Handler implements the /api/auth endpoints.
//
// Handlers decode and shape-check input, call the [Service], and own the
// session cookie. They contain no business rules.
type Handler struct {
	service  *Service
	tokenTTL time.Duration
}

// NewHandler constructs a new [Handler]. tokenTTL sets the cookie lifetime and
// should match the lifetime of the tokens the service issues.
func NewHandler(service *Service, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, tokenTTL: tokenTTL}
}

// Routes returns a [chi.Router] configured with the authentication routes.
//
// # Endpoints
//   - POST /register : Creates an account and sets the session cookie.
//   - POST /login    : Checks credentials and sets the session cookie.
//   - GET  /logout   : Clears the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/logout", handler.logout)

	return router
}

// registerRequest is the payload expected for account creation.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse is the body returned after a successful registration.
type registerResponse struct {
	Message     string `json:"message"`
	CreatedUser *User  `json:"createdUser"`
}

/*
register handles POST /api/auth/register.

Returns:
  - 201 with the created user and a session cookie
  - 400 for invalid input, a weak password or a taken email
  - 500 with a generic message for anything else
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeBody(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// The password policy is a business rule and lives in the service.
	validator := &validate.Validator{}
	validator.Required(fieldName, input.Name).MaxLen(fieldName, input.Name, maxNameLength)
	validator.Required(fieldEmail, input.Email).MaxLen(fieldEmail, input.Email, maxEmailLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.service.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.ErrorWithFallback(writer, request, err, msgRegisterFailed)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	handler.setSessionCookie(writer, session.Token)
	respond.Created(writer, registerResponse{
		Message:     msgRegistered,
		CreatedUser: session.User,
	})
}

// loginRequest is the payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the body returned after a successful login.
type loginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

/*
login handles POST /api/auth/login.

Returns:
  - 200 with the user and a fresh session cookie
  - 400 for an unknown email, an account without password or a wrong password
  - 500 with a generic message for anything else
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeBody(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// An empty password is not rejected here; it fails the hash comparison
	// and yields the same message as any other wrong password.
	validator := &validate.Validator{}
	validator.Required(fieldEmail, input.Email).MaxLen(fieldEmail, input.Email, maxEmailLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.service.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.ErrorWithFallback(writer, request, err, msgLoginFailed)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	handler.setSessionCookie(writer, session.Token)
	respond.OK(writer, loginResponse{
		Message: msgLoggedIn,
		User:    session.User,
	})
}

/*
logout handles GET /api/auth/logout.

It succeeds whether or not the caller holds a valid session.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Logout(request.Context()); err != nil {
		respond.ErrorWithFallback(writer, request, err, msgLogoutFailed)
		return
	}

	handler.clearSessionCookie(writer)
	respond.Message(writer, http.StatusOK, msgLoggedOut)
}

// # Session Cookie

// setSessionCookie attaches the token as a script-inaccessible cross-site cookie.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(handler.tokenTTL.Seconds()),
		Expires:  time.Now().Add(handler.tokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearSessionCookie expires the cookie with the same attributes it was set with.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
