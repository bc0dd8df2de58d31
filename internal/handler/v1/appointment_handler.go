package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/appointment"
	"github.com/medicmanager/clinic-api/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
	log *zap.Logger
}

func NewAppointmentHandler(svc *service.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, log: log}
}

// appointmentRequest is the wire descriptor: id is optional on create and
// required on update; all other fields are required.
type appointmentRequest struct {
	ID             *uuid.UUID `json:"id"`
	Date           string     `json:"date"`
	Weekday        string     `json:"weekday"`
	Hour           int        `json:"hour"`
	Minute         int        `json:"minute"`
	Status         string     `json:"status"`
	PractitionerID uuid.UUID  `json:"practitioner_id"`
	PatientID      uuid.UUID  `json:"patient_id"`
}

type appointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	Weekday        string    `json:"weekday"`
	Hour           int       `json:"hour"`
	Minute         int       `json:"minute"`
	Status         string    `json:"status"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	PatientID      uuid.UUID `json:"patient_id"`
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		Date:           a.Date.Format(dateLayout),
		Weekday:        string(a.Weekday),
		Hour:           a.Hour,
		Minute:         a.Minute,
		Status:         string(a.Status),
		PractitionerID: a.PractitionerID,
		PatientID:      a.PatientID,
	}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := parseDate(c, req.Date, "date")
	if !ok {
		return
	}

	a, err := h.svc.CreateAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		ID:             req.ID,
		Date:           date,
		Weekday:        appointment.Weekday(req.Weekday),
		Hour:           req.Hour,
		Minute:         req.Minute,
		Status:         appointment.AppointmentStatus(req.Status),
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.svc.ListAppointments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toAppointmentResponse(a))
	}
	respondOK(c, out)
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := parseDate(c, req.Date, "date")
	if !ok {
		return
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), &appointment.UpdateAppointmentCommand{
		ID:             req.ID,
		Date:           date,
		Weekday:        appointment.Weekday(req.Weekday),
		Hour:           req.Hour,
		Minute:         req.Minute,
		Status:         appointment.AppointmentStatus(req.Status),
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
