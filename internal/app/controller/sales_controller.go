package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/errors"
	"github.com/rmehra/billmitra-backend/internal/middleware"
)

type SalesController struct {
	salesService service.SalesService
}

func NewSalesController(salesService service.SalesService) *SalesController {
	return &SalesController{
		salesService: salesService,
	}
}

// GetSummary returns the bucketed sales summary
// GET /api/v1/sales/summary?period=daily|weekly|monthly
func (ctrl *SalesController) GetSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	period := c.DefaultQuery("period", "daily")
	summary, err := ctrl.salesService.Summary(period)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidPeriod) {
			errors.BadRequest(c, errors.ValidationInvalidPeriod, "Period must be daily, weekly or monthly")
			return
		}
		log.Error("Failed to build sales summary", err, map[string]interface{}{
			"period": period,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalDatabaseError, "Failed to load sales data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}
