package handler

import (
	"net/http"
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/interfaces/http/dto"
	"github.com/garagehub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides response and binding helpers shared by all handlers
type BaseHandler struct{}

// OK writes a 200 success envelope
func (BaseHandler) OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

// Created writes a 201 success envelope
func (BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// OKList writes a 200 success envelope with pagination metadata
func (BaseHandler) OKList(c *gin.Context, message string, data any, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(message, data, meta))
}

// Error writes the envelope matching the error's domain code
func (BaseHandler) Error(c *gin.Context, err error) {
	status, resp := dto.ErrorResponseFromError(err)
	c.JSON(status, resp)
}

// BadRequest writes a 400 envelope for request binding failures
func (BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_INPUT", message))
}

// Tenant returns the tenant domain resolved for the request
func (BaseHandler) Tenant(c *gin.Context) string {
	return middleware.GetTenantDomain(c)
}

// BindID parses the :id path parameter as a UUID
func (h BaseHandler) BindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// BindFilter parses common list query parameters. The fields parameter is a
// comma-separated projection of the columns to return.
func (BaseHandler) BindFilter(c *gin.Context) shared.Filter {
	var req dto.ListRequest
	_ = c.ShouldBindQuery(&req)
	filter := shared.Filter{Search: req.Search, Page: req.Page, Limit: req.Limit}
	if req.Fields != "" {
		filter.Fields = strings.Split(req.Fields, ",")
	}
	filter.Normalize()
	return filter
}
