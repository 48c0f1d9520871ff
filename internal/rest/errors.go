package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/rest/middleware"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// ValidationResponse lists every violated rule.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// getStatusCode maps domain errors onto HTTP status codes
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case domain.IsValidationError(err), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ValidationResponse{Errors: ve.Messages})
		return
	}

	code := getStatusCode(err)
	if code == http.StatusInternalServerError {
		c.JSON(code, ResponseError{Message: domain.ErrInternalServerError.Error()})
		return
	}
	c.JSON(code, ResponseError{Message: err.Error()})
}

// respondBindError reports request body problems in the same shape as domain validation errors.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ValidationResponse{Errors: []string{"request body is not valid JSON"}})
		return
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			msgs = append(msgs, field+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is not valid", field))
	}
	c.JSON(http.StatusBadRequest, ValidationResponse{Errors: msgs})
}

// viewerID is 0 for anonymous requests.
func viewerID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDKey)
}

func currentUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return 0, false
	}
	return userID.(int64), true
}
