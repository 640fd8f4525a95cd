package service

import (
	"testing"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBillingServiceTest(t *testing.T) (BillingService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(testDB)
	patternRepo := repository.NewPatternRepository(testDB)
	changeRepo := repository.NewTemporaryChangeRepository(testDB)
	invoiceRepo := repository.NewInvoiceRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)

	calendar := NewCalendarService(customerRepo, patternRepo, changeRepo)
	monthLock := NewMonthLockService(invoiceRepo)
	return NewBillingService(customerRepo, invoiceRepo, paymentRepo, calendar, monthLock), testDB
}

func confirmInvoice(t *testing.T, testDB *gorm.DB, customerID uint, year, month int, amount float64) {
	invoice := &model.Invoice{
		CustomerID:  customerID,
		Year:        year,
		Month:       month,
		Amount:      amount,
		ConfirmedAt: time.Now(),
	}
	require.NoError(t, testDB.Create(invoice).Error)
}

func TestBillingService_Summary_Carryover(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")

	// 전월 확정 1234원, 당월 입금 500원, 당월 배달 없음
	confirmInvoice(t, testDB, customer.ID, 2025, 6, 1234)
	_, err := billingService.RecordPayment(customer.ID, 2025, 7, 500, model.PaymentMethodCash, "")
	require.NoError(t, err)

	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.RoundedBase)
	assert.Equal(t, 1234.0, summary.PriorAmount)
	assert.Equal(t, 500.0, summary.Payments)
	assert.Equal(t, 734.0, summary.Carryover)
	assert.Equal(t, 734.0, summary.FinalAmount)
	assert.False(t, summary.Confirmed)
}

func TestBillingService_Summary_PriorRecomputedWhenUnconfirmed(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "우유", 123)

	// 6월 한 달 수요일 배달 (6월의 수요일은 4,11,18,25)
	end := util.Date(2025, 6, 30)
	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 1, UnitPrice: 123,
		StartDate: util.Date(2025, 6, 1), EndDate: &end, Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	// 전월 확정이 없으면 전월 기준액을 재계산한다: 4 * 123 = 492 → 490
	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, 490.0, summary.PriorAmount)
	assert.Equal(t, 490.0, summary.Carryover)
	assert.Equal(t, 490.0, summary.FinalAmount)
}

func TestBillingService_Summary_RoundingDisabled(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "우유", 123)

	disabled := false
	settings := &model.CustomerSettings{CustomerID: customer.ID, RoundingEnabled: &disabled}
	require.NoError(t, testDB.Create(settings).Error)

	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 1, UnitPrice: 123,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	// 7월의 수요일은 5일: 5 * 123 = 615, 절사 없음
	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, 615.0, summary.RawTotal)
	assert.Equal(t, 615.0, summary.RoundedBase)
	assert.False(t, summary.RoundingApplied)
}

func TestBillingService_Confirm_Idempotent(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "우유", 150)

	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 2, UnitPrice: 150,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	first, err := billingService.Confirm(customer.ID, 2025, 7)
	require.NoError(t, err)
	second, err := billingService.Confirm(customer.ID, 2025, 7)
	require.NoError(t, err)

	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, testDB.Model(&model.Invoice{}).
		Where("customer_id = ? AND year = ? AND month = ?", customer.ID, 2025, 7).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.True(t, summary.Confirmed)
}

func TestBillingService_Unconfirm(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")

	// 확정이 없는 월은 해제할 수 없다
	err := billingService.Unconfirm(customer.ID, 2025, 7)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	confirmInvoice(t, testDB, customer.ID, 2025, 7, 1000)
	require.NoError(t, billingService.Unconfirm(customer.ID, 2025, 7))

	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.False(t, summary.Confirmed)
}

func TestBillingService_RecordPayment_Validation(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)
	customer := seedCustomer(t, testDB, "홍길동")

	tests := []struct {
		name       string
		customerID uint
		month      int
		amount     float64
		wantErr    error
	}{
		{name: "Zero amount", customerID: customer.ID, month: 7, amount: 0, wantErr: ErrInvalidAmount},
		{name: "Invalid month", customerID: customer.ID, month: 0, amount: 100, wantErr: ErrInvalidMonth},
		{name: "Unknown customer", customerID: 9999, month: 7, amount: 100, wantErr: ErrCustomerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billingService.RecordPayment(tt.customerID, 2025, tt.month, tt.amount, "", "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 방식 미지정은 수금으로 기록한다
	payment, err := billingService.RecordPayment(customer.ID, 2025, 7, 500, "", "")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCollection, payment.Method)
}

func TestBillingService_CancelPayment(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)
	customer := seedCustomer(t, testDB, "홍길동")

	payment, err := billingService.RecordPayment(customer.ID, 2025, 7, 500, model.PaymentMethodTransfer, "")
	require.NoError(t, err)

	reversal, err := billingService.CancelPayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, -500.0, reversal.Amount)
	assert.Equal(t, model.PaymentMethodTransfer, reversal.Method)

	// 취소는 삭제가 아니라 음수 행 추가: 합계만 0이 된다
	payments, err := billingService.ListPayments(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	summary, err := billingService.Summary(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Payments)

	_, err = billingService.CancelPayment(9999)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestBillingService_RegisterPaymentsBatch(t *testing.T) {
	billingService, testDB := setupBillingServiceTest(t)

	confirmedCustomer := seedCustomer(t, testDB, "확정 고객")
	pendingCustomer := seedCustomer(t, testDB, "미확정 고객")

	// 일괄 입금은 전월 확정 고객만 받는다
	confirmInvoice(t, testDB, confirmedCustomer.ID, 2025, 6, 1000)

	result, err := billingService.RegisterPaymentsBatch(2025, 7, []BatchPaymentEntry{
		{CustomerID: confirmedCustomer.ID, Amount: 1000},
		{CustomerID: pendingCustomer.ID, Amount: 500},
		{CustomerID: confirmedCustomer.ID, Amount: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, pendingCustomer.ID, result.Failures[0].CustomerID)
	assert.Equal(t, confirmedCustomer.ID, result.Failures[1].CustomerID)

	payments, err := billingService.ListPayments(confirmedCustomer.ID, 2025, 7)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 1000.0, payments[0].Amount)
}
