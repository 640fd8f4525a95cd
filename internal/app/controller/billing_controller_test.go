package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBillingControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, *model.Customer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	customerRepo := repository.NewCustomerRepository(testDB)
	patternRepo := repository.NewPatternRepository(testDB)
	changeRepo := repository.NewTemporaryChangeRepository(testDB)
	invoiceRepo := repository.NewInvoiceRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)

	calendarService := service.NewCalendarService(customerRepo, patternRepo, changeRepo)
	monthLockService := service.NewMonthLockService(invoiceRepo)
	billingService := service.NewBillingService(customerRepo, invoiceRepo, paymentRepo, calendarService, monthLockService)
	billingController := NewBillingController(billingService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/customers/:id/billing/summary", billingController.Summary)
	router.POST("/customers/:id/billing/confirm", billingController.Confirm)
	router.DELETE("/customers/:id/billing/confirm", billingController.Unconfirm)
	router.GET("/customers/:id/payments", billingController.ListPayments)
	router.POST("/customers/:id/payments", billingController.RecordPayment)
	router.POST("/payments/:id/cancel", billingController.CancelPayment)

	course := &model.Course{Name: "1코스"}
	require.NoError(t, testDB.Create(course).Error)
	customer := &model.Customer{Name: "홍길동", CourseID: course.ID}
	require.NoError(t, testDB.Create(customer).Error)

	product := &model.Product{Name: "우유", UnitPrice: 150}
	require.NoError(t, testDB.Create(product).Error)
	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 2, UnitPrice: 150,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	return router, testDB, customer
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestBillingController_SummaryAndConfirm(t *testing.T) {
	router, _, customer := setupBillingControllerTest(t)

	base := "/customers/" + itoa(customer.ID)

	// 미리보기: 확정 전이므로 confirmed=false
	req := httptest.NewRequest("GET", base+"/billing/summary?year=2025&month=7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var summaryResp struct {
		Success bool                   `json:"success"`
		Data    service.BillingSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaryResp))
	assert.True(t, summaryResp.Success)
	assert.False(t, summaryResp.Data.Confirmed)
	// 7월 수요일 5회 * 300원 = 1500
	assert.Equal(t, 1500.0, summaryResp.Data.RawTotal)

	// 확정
	req = httptest.NewRequest("POST", base+"/billing/confirm?year=2025&month=7", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 확정 후 미리보기에 반영
	req = httptest.NewRequest("GET", base+"/billing/summary?year=2025&month=7", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaryResp))
	assert.True(t, summaryResp.Data.Confirmed)
}

func TestBillingController_Summary_InvalidMonth(t *testing.T) {
	router, _, customer := setupBillingControllerTest(t)

	req := httptest.NewRequest("GET", "/customers/"+itoa(customer.ID)+"/billing/summary?year=2025&month=13", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillingController_Unconfirm_NotFound(t *testing.T) {
	router, _, customer := setupBillingControllerTest(t)

	req := httptest.NewRequest("DELETE", "/customers/"+itoa(customer.ID)+"/billing/confirm?year=2025&month=7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BILLING_INVOICE_NOT_FOUND")
}

func TestBillingController_RecordAndCancelPayment(t *testing.T) {
	router, _, customer := setupBillingControllerTest(t)

	body, _ := json.Marshal(RecordPaymentRequest{Year: 2025, Month: 7, Amount: 500})
	req := httptest.NewRequest("POST", "/customers/"+itoa(customer.ID)+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var paymentResp struct {
		Success bool          `json:"success"`
		Data    model.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paymentResp))
	assert.Equal(t, 500.0, paymentResp.Data.Amount)

	req = httptest.NewRequest("POST", "/payments/"+itoa(paymentResp.Data.ID)+"/cancel", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paymentResp))
	assert.Equal(t, -500.0, paymentResp.Data.Amount)
}

func TestBillingController_RecordPayment_BadBody(t *testing.T) {
	router, _, customer := setupBillingControllerTest(t)

	req := httptest.NewRequest("POST", "/customers/"+itoa(customer.ID)+"/payments", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}
