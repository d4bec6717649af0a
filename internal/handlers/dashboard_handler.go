package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/services"
	"gopet/internal/utils"
	"gopet/pkg/logger"
)

type DashboardHandler struct {
	store  *services.DataStore
	logger *logger.Logger
}

func NewDashboardHandler(store *services.DataStore, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, logger: orNop(log)}
}

// GetDashboard returns every collection in one payload for the first paint.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	snapshot, err := h.store.GetSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to build dashboard snapshot")
		return
	}
	utils.SuccessResponse(c, utils.MsgDashboardRetrieved, snapshot)
}

func (h *DashboardHandler) ListPets(c *gin.Context) {
	pets := h.store.ListPets(c.Request.Context())
	utils.ListResponse(c, utils.MsgPetsRetrieved, pets, len(pets))
}
