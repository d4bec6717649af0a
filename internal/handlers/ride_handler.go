package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/models"
	"gopet/internal/services"
	"gopet/internal/utils"
	"gopet/internal/validators"
	"gopet/pkg/logger"
)

type RideHandler struct {
	store     *services.DataStore
	simulator *services.LifecycleSimulator
	logger    *logger.Logger
}

func NewRideHandler(store *services.DataStore, simulator *services.LifecycleSimulator, log *logger.Logger) *RideHandler {
	return &RideHandler{store: store, simulator: simulator, logger: orNop(log)}
}

func (h *RideHandler) ListRides(c *gin.Context) {
	rides := h.store.ListRides(c.Request.Context())
	utils.ListResponse(c, utils.MsgRidesRetrieved, rides, len(rides))
}

// CreateRide quotes the ride, assigns the first online driver and opens the
// timeline.
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req validators.CreateRideRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ride, err := h.store.CreateRide(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create ride")
		return
	}
	utils.CreatedResponse(c, utils.MsgRideCreated, ride)
}

func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.store.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get ride")
		return
	}
	utils.SuccessResponse(c, utils.MsgRideRetrieved, ride)
}

// UpdateStatus advances a ride. Regressions and moves out of a terminal
// state are answered with 409.
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req validators.UpdateRideStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ride, err := h.store.UpdateRideStatus(
		c.Request.Context(), c.Param("id"), models.RideStatus(req.Status), req.Description)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update ride status")
		return
	}
	utils.SuccessResponse(c, utils.MsgRideUpdated, ride)
}

// Simulate starts the background walk through the lifecycle. Progress is
// pushed over the websocket feed.
func (h *RideHandler) Simulate(c *gin.Context) {
	ride, err := h.simulator.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to start simulation")
		return
	}
	utils.AcceptedResponse(c, utils.MsgSimulationStarted, ride)
}

func (h *RideHandler) ListMessages(c *gin.Context) {
	messages, err := h.store.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list messages")
		return
	}
	utils.ListResponse(c, utils.MsgMessagesRetrieved, messages, len(messages))
}

func (h *RideHandler) PostMessage(c *gin.Context) {
	var req validators.CreateMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	message, err := h.store.AddMessage(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err, "Failed to post message")
		return
	}
	utils.CreatedResponse(c, utils.MsgMessageCreated, message)
}
