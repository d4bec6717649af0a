package handlers

import (
	"github.com/gin-gonic/gin"

	"gopet/internal/utils"
	"gopet/internal/validators"
	"gopet/pkg/logger"
)

// bindAndValidate decodes the JSON body into req and runs the struct rules.
// It writes the error response itself and reports whether to continue.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidJSON)
		return false
	}
	if err := validators.ValidateStruct(req); err != nil {
		utils.DomainErrorResponse(c, err)
		return false
	}
	return true
}

// respondError maps err onto the envelope and logs anything unexpected.
func respondError(c *gin.Context, log *logger.Logger, err error, msg string) {
	if !utils.DomainErrorResponse(c, err) {
		log.WithContext(c.Request.Context()).WithError(err).Error(msg)
	}
}

func orNop(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.NewNop()
	}
	return log
}
