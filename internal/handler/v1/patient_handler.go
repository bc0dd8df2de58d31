package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/patient"
	"github.com/medicmanager/clinic-api/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
	log *zap.Logger
}

func NewPatientHandler(svc *service.PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{svc: svc, log: log}
}

type patientRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Email     string     `json:"email"`
	Birthdate string     `json:"birthdate"`
	Gender    string     `json:"gender"`
}

type patientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Birthdate string    `json:"birthdate"`
	Gender    string    `json:"gender"`
}

func toPatientResponse(p *patient.Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Surname:   p.Surname,
		Email:     p.Email,
		Birthdate: p.Birthdate.Format(dateLayout),
		Gender:    string(p.Gender),
	}
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}
	birthdate, ok := parseDate(c, req.Birthdate, "birthdate")
	if !ok {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		ID:        req.ID,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Birthdate: birthdate,
		Gender:    patient.Gender(req.Gender),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toPatientResponse(p))
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	respondOK(c, out)
}

func (h *PatientHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatientByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}
	birthdate, ok := parseDate(c, req.Birthdate, "birthdate")
	if !ok {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), &patient.UpdatePatientCommand{
		ID:        req.ID,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Birthdate: birthdate,
		Gender:    patient.Gender(req.Gender),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPatientResponse(p))
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
