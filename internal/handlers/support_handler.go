package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/models"
	"gopet/internal/services"
	"gopet/internal/utils"
	"gopet/internal/validators"
	"gopet/pkg/logger"
)

// SupportHandler serves incidents and support tickets.
type SupportHandler struct {
	store  *services.DataStore
	logger *logger.Logger
}

func NewSupportHandler(store *services.DataStore, log *logger.Logger) *SupportHandler {
	return &SupportHandler{store: store, logger: orNop(log)}
}

func (h *SupportHandler) ListIncidents(c *gin.Context) {
	incidents := h.store.ListIncidents(c.Request.Context())
	utils.ListResponse(c, utils.MsgIncidentsRetrieved, incidents, len(incidents))
}

func (h *SupportHandler) CreateIncident(c *gin.Context) {
	var req validators.CreateIncidentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	incident, err := h.store.CreateIncident(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create incident")
		return
	}
	utils.CreatedResponse(c, utils.MsgIncidentCreated, incident)
}

func (h *SupportHandler) UpdateIncidentStatus(c *gin.Context) {
	var req validators.UpdateIncidentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	incident, err := h.store.UpdateIncidentStatus(
		c.Request.Context(), c.Param("id"), models.IncidentStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update incident")
		return
	}
	utils.SuccessResponse(c, utils.MsgIncidentUpdated, incident)
}

func (h *SupportHandler) ListTickets(c *gin.Context) {
	tickets := h.store.ListTickets(c.Request.Context())
	utils.ListResponse(c, utils.MsgTicketsRetrieved, tickets, len(tickets))
}

func (h *SupportHandler) UpdateTicketStatus(c *gin.Context) {
	var req validators.UpdateTicketStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ticket, err := h.store.UpdateTicketStatus(
		c.Request.Context(), c.Param("id"), models.TicketStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update ticket")
		return
	}
	utils.SuccessResponse(c, utils.MsgTicketUpdated, ticket)
}
