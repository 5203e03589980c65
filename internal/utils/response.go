// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightcart/storefront/internal/apperrors"
	"github.com/brightcart/storefront/pkg/authz"
	"github.com/brightcart/storefront/pkg/schema"
)

// APIResponse is the wire envelope: success responses carry data (plus
// pagination on list endpoints), failures carry error. Never both.
type APIResponse struct {
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Data: data})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Data: data})
}

func PaginatedResponse(c *gin.Context, data interface{}, params PaginationParams, total int64) {
	c.JSON(http.StatusOK, APIResponse{
		Data: data,
		Pagination: &Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Error: &APIError{
			Message: message,
			Code:    code,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Insufficient permissions"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// FromError maps a domain error to its HTTP representation. This is the only
// place status codes are chosen for service-layer failures.
func FromError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		schemaErr     *schema.ValidationError
		conflictErr   *apperrors.ConflictError
		notFoundErr   *apperrors.NotFoundError
		authErr       *apperrors.AuthorizationError
		transitionErr *apperrors.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error(), validationErr.Fields)
	case errors.As(err, &schemaErr):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", schemaErr.Error(), schemaErr.Fields)
	case errors.As(err, &conflictErr):
		ConflictResponse(c, conflictErr.Error())
	case errors.As(err, &notFoundErr):
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error(), nil)
	case errors.As(err, &authErr):
		ForbiddenResponse(c, authErr.Error())
	case errors.As(err, &transitionErr):
		ErrorResponse(c, http.StatusBadRequest, "INVALID_TRANSITION", transitionErr.Error(), nil)
	default:
		InternalErrorResponse(c, err.Error())
	}
}

// Context keys set by the auth middleware.
const (
	ContextExternalID = "external_id"
	ContextEmail      = "email"
	ContextRoles      = "roles"
)

func GetExternalIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(ContextExternalID); exists {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func GetEmailFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(ContextEmail); exists {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func GetRolesFromContext(c *gin.Context) []authz.Role {
	if v, exists := c.Get(ContextRoles); exists {
		if roles, ok := v.([]authz.Role); ok {
			return roles
		}
	}
	return nil
}
