// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tellnab/tellnab/internal/platform/request"
	"github.com/tellnab/tellnab/internal/platform/respond"
	"github.com/tellnab/tellnab/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for role administration.
type Handler struct {
	service *Service
}

// NewHandler constructs a new access [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with role endpoints.
// Mount it behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me/acl", handler.myACL)
	router.Get("/roles", handler.listRoles)
	router.Post("/roles/{roleKey}/users", handler.assignRole)
	router.Delete("/roles/{roleKey}/users/{userID}", handler.revokeRole)

	return router
}

type assignRoleRequest struct {
	UserID string `json:"user_id"`
}

/*
GET /api/v1/support/me/acl.

Response:
  - 200: ACLView: Caller's resolved roles and permissions
*/
func (handler *Handler) myACL(writer http.ResponseWriter, request *http.Request) {
	acl, err := handler.service.ACLFor(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, acl.View())
}

/*
GET /api/v1/support/roles.

Response:
  - 200: []Role
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.service.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, roles)
}

/*
POST /api/v1/support/roles/{roleKey}/users.

Request (Body):
  - user_id: string (UUID)

Response:
  - 204: Assigned
  - 403: forbidden: Missing support.roles.manage
  - 404: Unknown role
*/
func (handler *Handler) assignRole(writer http.ResponseWriter, request *http.Request) {
	acl, err := handler.service.ACLFor(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("user_id", input.UserID).UUID("user_id", input.UserID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AssignRole(request.Context(), acl, requestutil.Param(request, "roleKey"), input.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/support/roles/{roleKey}/users/{userID}.

Response:
  - 204: Revoked
  - 403: forbidden: Missing support.roles.manage
  - 404: No such assignment
*/
func (handler *Handler) revokeRole(writer http.ResponseWriter, request *http.Request) {
	acl, err := handler.service.ACLFor(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	roleKey := requestutil.Param(request, "roleKey")
	userID := requestutil.Param(request, "userID")

	if err := handler.service.RevokeRole(request.Context(), acl, roleKey, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
