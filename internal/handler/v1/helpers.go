package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/internal/service"
)

const dateLayout = "2006-01-02"

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, practitioner.ErrPractitionerNotFound),
		errors.Is(err, patient.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, practitioner.ErrPractitionerAlreadyExists),
		errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, practitioner.ErrPractitionerHasAppointments):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	// Business-rule rejections: well-formed requests the clinic refuses.
	case errors.Is(err, appointment.ErrWeekendNotBookable),
		errors.Is(err, appointment.ErrSlotOutsideGrid),
		errors.Is(err, appointment.ErrPractitionerBusy),
		errors.Is(err, appointment.ErrPatientBusy),
		errors.Is(err, appointment.ErrSlotTaken):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate accepts an empty string (the service reports the missing field)
// but rejects anything that is not a calendar date.
func parseDate(c *gin.Context, raw, field string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + field + ": expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}
