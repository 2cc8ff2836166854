package controller

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/errors"
	"github.com/rmehra/billmitra-backend/internal/middleware"
)

type BillController struct {
	billService   service.BillService
	renderService service.RenderService
}

func NewBillController(billService service.BillService, renderService service.RenderService) *BillController {
	return &BillController{
		billService:   billService,
		renderService: renderService,
	}
}

type AddBillItemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type SetTaxRateRequest struct {
	Rate *float64 `json:"rate" binding:"required,gte=0,lte=100"`
}

type SetDetailsRequest struct {
	TableNumber  string `json:"table_number"`
	CustomerName string `json:"customer_name"`
}

// GetBill returns the bill currently being built
// GET /api/v1/bill
func (ctrl *BillController) GetBill(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bill": ctrl.billService.Current(),
	})
}

// AddItem adds a line item to the current bill
// POST /api/v1/bill/items
func (ctrl *BillController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddBillItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add bill item request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	bill, err := ctrl.billService.AddItem(req.Name, req.Quantity, req.UnitPrice)
	if err != nil {
		if stderrors.Is(err, service.ErrItemNameRequired) {
			errors.BadRequest(c, errors.BillItemNameRequired, "Item name is required")
			return
		}
		if stderrors.Is(err, service.ErrInvalidUnitPrice) {
			errors.BadRequest(c, errors.BillInvalidUnitPrice, "Unit price must be greater than zero")
			return
		}
		log.Error("Failed to add bill item", err, map[string]interface{}{
			"name": req.Name,
		})
		errors.InternalError(c, "")
		return
	}

	log.Info("Bill item added", map[string]interface{}{
		"name":        req.Name,
		"grand_total": bill.GrandTotal,
	})
	c.JSON(http.StatusCreated, gin.H{
		"bill": bill,
	})
}

// RemoveItem removes a line item from the current bill
// DELETE /api/v1/bill/items/:id
func (ctrl *BillController) RemoveItem(c *gin.Context) {
	bill := ctrl.billService.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"bill": bill,
	})
}

// SetTaxRate updates the tax rate of the current bill
// PUT /api/v1/bill/tax-rate
func (ctrl *BillController) SetTaxRate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tax rate request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidRange, "Tax rate must be between 0 and 100")
		return
	}

	bill := ctrl.billService.SetTaxRate(*req.Rate)
	c.JSON(http.StatusOK, gin.H{
		"bill": bill,
	})
}

// SetDetails updates the table number and customer name
// PUT /api/v1/bill/details
func (ctrl *BillController) SetDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bill details request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	bill := ctrl.billService.SetDetails(req.TableNumber, req.CustomerName)
	c.JSON(http.StatusOK, gin.H{
		"bill": bill,
	})
}

// Finalize records the current bill into the day's sales
// POST /api/v1/bill/finalize
func (ctrl *BillController) Finalize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bill, err := ctrl.billService.Finalize()
	if err != nil {
		if stderrors.Is(err, service.ErrEmptyBill) {
			errors.BadRequest(c, errors.BillEmpty, "Cannot finalize an empty bill")
			return
		}
		log.Error("Failed to finalize bill", err, map[string]interface{}{
			"grand_total": bill.GrandTotal,
		})
		errors.InternalError(c, "Failed to record the bill")
		return
	}

	log.Info("Bill finalized", map[string]interface{}{
		"items":       len(bill.Items),
		"grand_total": bill.GrandTotal,
	})
	c.JSON(http.StatusOK, gin.H{
		"bill": bill,
	})
}

// ResetBill starts a fresh bill, keeping the restaurant profile
// POST /api/v1/bill/reset
func (ctrl *BillController) ResetBill(c *gin.Context) {
	bill := ctrl.billService.Reset()
	c.JSON(http.StatusOK, gin.H{
		"bill": bill,
	})
}

// GetBillText returns the plain-text share format of the current bill
// GET /api/v1/bill/text
func (ctrl *BillController) GetBillText(c *gin.Context) {
	bill := ctrl.billService.Current()
	c.JSON(http.StatusOK, gin.H{
		"text": ctrl.renderService.TextBill(bill),
	})
}

// ExportBill downloads the current bill as an xlsx workbook
// GET /api/v1/bill/export
func (ctrl *BillController) ExportBill(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bill := ctrl.billService.Current()
	data, err := ctrl.renderService.WorkbookBill(bill)
	if err != nil {
		log.Error("Failed to render bill workbook", err, nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalRenderError, "Failed to render the bill document")
		return
	}

	name := bill.TableNumber
	if name == "" {
		name = "bill"
	}
	filename := fmt.Sprintf("bill-%s-%d.xlsx", name, time.Now().Unix())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
