package repository

import (
	"testing"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvoiceRepositoryTest(t *testing.T) (InvoiceRepository, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	course := &model.Course{Name: "1코스"}
	require.NoError(t, testDB.Create(course).Error)
	customer := &model.Customer{Name: "홍길동", CourseID: course.ID}
	require.NoError(t, testDB.Create(customer).Error)

	return NewInvoiceRepository(testDB), customer.ID
}

func TestInvoiceRepository_Upsert(t *testing.T) {
	invoiceRepo, customerID := setupInvoiceRepositoryTest(t)

	first := &model.Invoice{
		CustomerID: customerID, Year: 2025, Month: 7,
		Amount: 1000, RoundingApplied: true, ConfirmedAt: time.Now(),
	}
	require.NoError(t, invoiceRepo.Upsert(first))

	// 같은 (고객, 연, 월)이면 행을 늘리지 않고 금액을 덮어쓴다
	second := &model.Invoice{
		CustomerID: customerID, Year: 2025, Month: 7,
		Amount: 1500, RoundingApplied: false, ConfirmedAt: time.Now(),
	}
	require.NoError(t, invoiceRepo.Upsert(second))

	stored, err := invoiceRepo.FindByCustomerAndMonth(customerID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, stored.Amount)
	assert.False(t, stored.RoundingApplied)
	assert.Equal(t, first.ID, stored.ID)
}

func TestInvoiceRepository_Exists(t *testing.T) {
	invoiceRepo, customerID := setupInvoiceRepositoryTest(t)

	exists, err := invoiceRepo.Exists(customerID, 2025, 7)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, invoiceRepo.Upsert(&model.Invoice{
		CustomerID: customerID, Year: 2025, Month: 7, Amount: 1000, ConfirmedAt: time.Now(),
	}))

	exists, err = invoiceRepo.Exists(customerID, 2025, 7)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInvoiceRepository_FindLatestByCustomer(t *testing.T) {
	invoiceRepo, customerID := setupInvoiceRepositoryTest(t)

	_, err := invoiceRepo.FindLatestByCustomer(customerID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 연말을 넘는 경우에도 연/월 순으로 최신을 골라야 한다
	for _, ym := range [][2]int{{2024, 12}, {2025, 2}, {2025, 1}} {
		require.NoError(t, invoiceRepo.Upsert(&model.Invoice{
			CustomerID: customerID, Year: ym[0], Month: ym[1], Amount: 1000, ConfirmedAt: time.Now(),
		}))
	}

	latest, err := invoiceRepo.FindLatestByCustomer(customerID)
	require.NoError(t, err)
	assert.Equal(t, 2025, latest.Year)
	assert.Equal(t, 2, latest.Month)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	invoiceRepo, customerID := setupInvoiceRepositoryTest(t)

	require.NoError(t, invoiceRepo.Upsert(&model.Invoice{
		CustomerID: customerID, Year: 2025, Month: 7, Amount: 1000, ConfirmedAt: time.Now(),
	}))

	affected, err := invoiceRepo.Delete(customerID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = invoiceRepo.Delete(customerID, 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
