// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/constants"
	"github.com/tellnab/tellnab/internal/platform/middleware"
	requestutil "github.com/tellnab/tellnab/internal/platform/request"
	"github.com/tellnab/tellnab/internal/platform/respond"
	"github.com/tellnab/tellnab/internal/platform/validate"
)

// Handler serves /api/v1/auth.
type Handler struct {
	authService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes mounts register, login, refresh, logout and me. Only /me needs a
// bearer token; refresh and logout read the HttpOnly refresh cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

// # Payloads

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (input registerRequest) validate() error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 64).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, 120).
		Err()
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// tokenResponse is the OAuth-style body returned by login and refresh.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user,omitempty"`
}

func newTokenResponse(session *LoginSession, withUser bool) tokenResponse {
	response := tokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(AccessTokenTTL / time.Second),
	}
	if withUser {
		response.User = session.User
	}
	return response
}

// # Endpoints

/*
POST /api/v1/auth/register

Response:
  - 201: User
  - 400: VALIDATION_ERROR
  - 409: CONFLICT when the username or email is taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login

Response:
  - 200: tokenResponse with the account; refresh token set as a cookie
  - 401: UNAUTHORIZED for unknown accounts and wrong passwords alike
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     input.Login,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, refreshCookie(session.RefreshToken, session.RefreshTokenExpiresAt))
	respond.OK(writer, newTokenResponse(session, true))
}

// POST /api/v1/auth/refresh rotates the refresh cookie and returns a new access token.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.RefreshSession(request.Context(), cookie.Value,
		request.UserAgent(), middleware.RealIP(request))
	if err != nil {
		http.SetCookie(writer, refreshCookie("", time.Time{}))
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, refreshCookie(session.RefreshToken, session.RefreshTokenExpiresAt))
	respond.OK(writer, newTokenResponse(session, false))
}

// POST /api/v1/auth/logout revokes the cookie's session, if any, and clears it.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, refreshCookie("", time.Time{}))
	respond.NoContent(writer)
}

// GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// refreshCookie builds the refresh cookie. An empty token deletes it.
func refreshCookie(token string, expiresAt time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if token == "" {
		cookie.MaxAge = -1
		cookie.Expires = time.Time{}
	}
	return cookie
}
