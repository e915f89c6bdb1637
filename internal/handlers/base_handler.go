package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse is returned by operations that have nothing to report
// beyond their outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromGin(c, h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "path", c.Request.URL.Path)
	utils.FromGin(c, h.logger).Error(msg, args...)
}

// parseIDParam writes a 400 and returns 0 when the path id is not a
// positive integer within the signed 64-bit range of the id columns.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 63)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid " + param,
		})
		return 0
	}
	return uint(id)
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// bindJSON decodes the request body into obj. A missing body decodes as an
// empty object so required-field checks report the field, not the body.
func (h *BaseHandler) bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid JSON body",
		Details: err.Error(),
	})
	return false
}

// handleServiceError maps service and validation errors onto statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: validationErrors.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrBlogNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrVolunteerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, services.ErrSlugTaken), errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, services.ErrNotApproved):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		return
	}

	h.LogError(c, err, "Request failed")

	var storageErr *services.StorageError
	if errors.As(err, &storageErr) && storageErr.IsConnection() {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "db connection error",
			Details: storageErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
