package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/models"
	"gopet/internal/services"
	"gopet/internal/utils"
	"gopet/internal/validators"
	"gopet/pkg/logger"
)

type DriverHandler struct {
	driverService *services.DriverService
	logger        *logger.Logger
}

func NewDriverHandler(driverService *services.DriverService, log *logger.Logger) *DriverHandler {
	return &DriverHandler{driverService: driverService, logger: orNop(log)}
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list drivers")
		return
	}
	utils.ListResponse(c, utils.MsgDriversRetrieved, drivers, len(drivers))
}

// CreateDriver registers a new driver application.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req validators.CreateDriverRequest
	if !bindAndValidate(c, &req) {
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create driver")
		return
	}
	utils.CreatedResponse(c, utils.MsgDriverCreated, driver)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get driver")
		return
	}
	utils.SuccessResponse(c, utils.MsgDriverRetrieved, driver)
}

// UpdateStatus moves the application through review. Omitting notes keeps
// the current ones.
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	var req validators.UpdateDriverStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	driver, err := h.driverService.UpdateApplicationStatus(
		c.Request.Context(), c.Param("id"), models.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update driver status")
		return
	}
	utils.SuccessResponse(c, utils.MsgDriverUpdated, driver)
}

func (h *DriverHandler) UpdateAvailability(c *gin.Context) {
	var req validators.UpdateDriverAvailabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}

	driver, err := h.driverService.UpdateAvailability(
		c.Request.Context(), c.Param("id"), models.OperationalStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update driver availability")
		return
	}
	utils.SuccessResponse(c, utils.MsgDriverUpdated, driver)
}
