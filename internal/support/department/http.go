// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package department

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tellnab/tellnab/internal/platform/request"
	"github.com/tellnab/tellnab/internal/platform/respond"
	"github.com/tellnab/tellnab/internal/platform/validate"
	"github.com/tellnab/tellnab/internal/support/access"
)

// Handler implements the HTTP layer for departments.
type Handler struct {
	service *Service
	access  *access.Service
}

// NewHandler constructs a new department [Handler].
func NewHandler(service *Service, accessService *access.Service) *Handler {
	return &Handler{service: service, access: accessService}
}

// Routes returns a [chi.Router] configured with department endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listDepartments)
	router.Post("/", handler.createDepartment)
	return router
}

type createDepartmentRequest struct {
	Name string `json:"name"`
}

/*
GET /api/v1/support/departments.

Response:
  - 200: []Department
*/
func (handler *Handler) listDepartments(writer http.ResponseWriter, request *http.Request) {
	departments, err := handler.service.ListDepartments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, departments)
}

/*
POST /api/v1/support/departments.

Response:
  - 201: Department
  - 403: forbidden: Missing support.departments.manage
  - 409: Slug already taken
*/
func (handler *Handler) createDepartment(writer http.ResponseWriter, request *http.Request) {
	acl, err := handler.access.ACLFor(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createDepartmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 120)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	department, err := handler.service.CreateDepartment(request.Context(), acl, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, department)
}
