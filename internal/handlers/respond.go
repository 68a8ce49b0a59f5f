package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

// respondServiceError translates service error kinds into the conventional
// HTTP responses: validation and conflict failures become 400, missing
// entities 404, anything else a 500 with minimal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err), service.IsConflict(err):
		utils.BadRequest(c, err.Error())
	case service.IsNotFound(err):
		utils.NotFound(c, err.Error())
	default:
		utils.InternalServerError(c, "Unexpected error: "+err.Error())
	}
}
