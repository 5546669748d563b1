package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	"github.com/willy-peters/SmartPOS/internal/domain/inventory"
	"github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/dto"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// HandleError maps an application error to its HTTP response. Typed domain
// errors carry their own message; anything unrecognized becomes a 500 with
// a generic body so internals never leak to clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(stockErr.Error()))
		return
	}

	var validationErr *sales.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(validationErr.Error()))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.StatusForCode(domainErr.Code), dto.NewErrorResponse(domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
}

// HandleBindingError maps a request binding failure to a 400 with a
// readable message per failed field.
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			messages[i] = formatFieldError(fieldErr)
		}
		h.BadRequest(c, strings.Join(messages, "; "))
		return
	}
	h.BadRequest(c, "Invalid request body")
}

// Principal extracts the authenticated principal or aborts with 401
func (h *BaseHandler) Principal(c *gin.Context) (identity.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse("Authentication required"))
		return identity.Principal{}, false
	}
	return principal, true
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
