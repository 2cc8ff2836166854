package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBillControllerTest(t *testing.T) (*gin.Engine, service.BillService, repository.SalesRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	salesRepo := repository.NewSalesRepository(testDB)
	salesService := service.NewSalesService(salesRepo)
	billService := service.NewBillService(model.RestaurantProfile{Name: "Chai Point"}, salesService)
	billController := NewBillController(billService, service.NewRenderService())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/bill", billController.GetBill)
	router.POST("/bill/items", billController.AddItem)
	router.DELETE("/bill/items/:id", billController.RemoveItem)
	router.PUT("/bill/tax-rate", billController.SetTaxRate)
	router.PUT("/bill/details", billController.SetDetails)
	router.POST("/bill/finalize", billController.Finalize)
	router.POST("/bill/reset", billController.ResetBill)
	router.GET("/bill/text", billController.GetBillText)
	router.GET("/bill/export", billController.ExportBill)

	return router, billService, salesRepo
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestBillController_GetBill_Empty(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	w := performJSON(t, router, http.MethodGet, "/bill", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	bill := response["bill"].(map[string]interface{})
	assert.Len(t, bill["items"], 0)
	assert.Equal(t, float64(5), bill["tax_rate_percent"])
}

func TestBillController_AddItem_Success(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	w := performJSON(t, router, http.MethodPost, "/bill/items", AddBillItemRequest{
		Name:      "Paneer Tikka",
		Quantity:  2,
		UnitPrice: 180,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeResponse(t, w)
	bill := response["bill"].(map[string]interface{})
	assert.Len(t, bill["items"], 1)
	assert.Equal(t, float64(378), bill["grand_total"])
}

func TestBillController_AddItem_Validation(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	tests := []struct {
		name      string
		reqBody   AddBillItemRequest
		wantError string
	}{
		{
			name:      "Empty name",
			reqBody:   AddBillItemRequest{Name: "  ", Quantity: 1, UnitPrice: 50},
			wantError: "BILL_ITEM_NAME_REQUIRED",
		},
		{
			name:      "Zero price",
			reqBody:   AddBillItemRequest{Name: "Tea", Quantity: 1, UnitPrice: 0},
			wantError: "BILL_INVALID_UNIT_PRICE",
		},
		{
			name:      "Negative price",
			reqBody:   AddBillItemRequest{Name: "Tea", Quantity: 1, UnitPrice: -10},
			wantError: "BILL_INVALID_UNIT_PRICE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPost, "/bill/items", tt.reqBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			response := decodeResponse(t, w)
			assert.Equal(t, tt.wantError, response["error"])
		})
	}
}

func TestBillController_RemoveItem(t *testing.T) {
	router, billService, _ := setupBillControllerTest(t)

	bill, err := billService.AddItem("Tea", 1, 10)
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodDelete, "/bill/items/"+bill.Items[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	assert.Len(t, response["bill"].(map[string]interface{})["items"], 0)
}

func TestBillController_SetTaxRate(t *testing.T) {
	router, billService, _ := setupBillControllerTest(t)

	_, err := billService.AddItem("Thali", 1, 200)
	require.NoError(t, err)

	rate := 18.0
	w := performJSON(t, router, http.MethodPut, "/bill/tax-rate", SetTaxRateRequest{Rate: &rate})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	bill := response["bill"].(map[string]interface{})
	assert.Equal(t, float64(236), bill["grand_total"])
}

func TestBillController_SetTaxRate_OutOfRange(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	for _, rate := range []float64{-1, 101} {
		r := rate
		w := performJSON(t, router, http.MethodPut, "/bill/tax-rate", SetTaxRateRequest{Rate: &r})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := decodeResponse(t, w)
		assert.Equal(t, "VALIDATION_INVALID_RANGE", response["error"])
	}
}

func TestBillController_SetDetails(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	w := performJSON(t, router, http.MethodPut, "/bill/details", SetDetailsRequest{
		TableNumber:  "7",
		CustomerName: "Asha",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	bill := response["bill"].(map[string]interface{})
	assert.Equal(t, "7", bill["table_number"])
	assert.Equal(t, "Asha", bill["customer_name"])
}

func TestBillController_Finalize(t *testing.T) {
	router, billService, salesRepo := setupBillControllerTest(t)

	_, err := billService.AddItem("Biryani", 2, 250)
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/bill/finalize", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	records, err := salesRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Orders)
}

func TestBillController_Finalize_Empty(t *testing.T) {
	router, _, _ := setupBillControllerTest(t)

	w := performJSON(t, router, http.MethodPost, "/bill/finalize", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeResponse(t, w)
	assert.Equal(t, "BILL_EMPTY", response["error"])
}

func TestBillController_Reset(t *testing.T) {
	router, billService, _ := setupBillControllerTest(t)

	_, err := billService.AddItem("Tea", 1, 10)
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/bill/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	assert.Len(t, response["bill"].(map[string]interface{})["items"], 0)
	assert.Len(t, billService.Current().Items, 0)
}

func TestBillController_GetBillText(t *testing.T) {
	router, billService, _ := setupBillControllerTest(t)

	_, err := billService.AddItem("Tea", 2, 10)
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodGet, "/bill/text", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	text := response["text"].(string)
	assert.Contains(t, text, "🧾 Bill from Chai Point")
	assert.Contains(t, text, "Tea x2 - ₹20.00")
	assert.Contains(t, text, "Total: ₹21.00")
}

func TestBillController_ExportBill(t *testing.T) {
	router, billService, _ := setupBillControllerTest(t)

	_, err := billService.AddItem("Tea", 2, 10)
	require.NoError(t, err)
	billService.SetDetails("7", "")

	w := performJSON(t, router, http.MethodGet, "/bill/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bill-7-")
	assert.NotEmpty(t, w.Body.Bytes())
}
