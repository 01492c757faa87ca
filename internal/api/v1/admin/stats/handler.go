package stats

import (
	"keyshop-backend/internal/services"
	"keyshop-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats godoc
// @Summary Store statistics
// @Description Get total products, users, orders and revenue. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.StoreStats}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/stats [get]
func GetStats(c *gin.Context) {
	stats, err := services.GetStoreStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch stats"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stats retrieved successfully", stats))
}
