package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medicmanager/clinic-api/internal/domain/practitioner"
	"github.com/medicmanager/clinic-api/internal/service"
)

type PractitionerHandler struct {
	svc *service.PractitionerService
	log *zap.Logger
}

func NewPractitionerHandler(svc *service.PractitionerService, log *zap.Logger) *PractitionerHandler {
	return &PractitionerHandler{svc: svc, log: log}
}

type practitionerRequest struct {
	ID              *uuid.UUID `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Email           string     `json:"email"`
	Specializations []string   `json:"specializations"`
	ImageURL        string     `json:"image_url"`
}

type practitionerResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	Email           string    `json:"email"`
	Specializations []string  `json:"specializations"`
	ImageURL        string    `json:"image_url,omitempty"`
}

func toPractitionerResponse(p *practitioner.Practitioner) practitionerResponse {
	specs := make([]string, 0, len(p.Specializations))
	for _, s := range p.Specializations {
		specs = append(specs, string(s))
	}
	return practitionerResponse{
		ID:              p.ID,
		Name:            p.Name,
		Surname:         p.Surname,
		Email:           p.Email,
		Specializations: specs,
		ImageURL:        p.ImageURL,
	}
}

func toSpecializations(raw []string) []practitioner.Specialization {
	out := make([]practitioner.Specialization, 0, len(raw))
	for _, s := range raw {
		out = append(out, practitioner.Specialization(s))
	}
	return out
}

func (h *PractitionerHandler) Create(c *gin.Context) {
	var req practitionerRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePractitioner(c.Request.Context(), &practitioner.CreatePractitionerCommand{
		ID:              req.ID,
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		Specializations: toSpecializations(req.Specializations),
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toPractitionerResponse(p))
}

func (h *PractitionerHandler) List(c *gin.Context) {
	practitioners, err := h.svc.ListPractitioners(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]practitionerResponse, 0, len(practitioners))
	for _, p := range practitioners {
		out = append(out, toPractitionerResponse(p))
	}
	respondOK(c, out)
}

func (h *PractitionerHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPractitionerByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPractitionerResponse(p))
}

func (h *PractitionerHandler) Update(c *gin.Context) {
	var req practitionerRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePractitioner(c.Request.Context(), &practitioner.UpdatePractitionerCommand{
		ID:              req.ID,
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		Specializations: toSpecializations(req.Specializations),
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toPractitionerResponse(p))
}

func (h *PractitionerHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePractitioner(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
