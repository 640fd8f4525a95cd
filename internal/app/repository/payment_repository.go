package repository

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	// Create 추가 전용. 수정/삭제 API는 의도적으로 없다.
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindByCustomerAndMonth(customerID uint, year, month int) ([]model.Payment, error)
	SumByCustomerAndMonth(customerID uint, year, month int) (float64, error)
	ListByCustomer(customerID uint) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"customer_id": payment.CustomerID,
		"year":        payment.Year,
		"month":       payment.Month,
		"amount":      payment.Amount,
		"method":      payment.Method,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"customer_id": payment.CustomerID,
			"year":        payment.Year,
			"month":       payment.Month,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
				"payment_id": id,
			})
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByCustomerAndMonth(customerID uint, year, month int) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Order("created_at ASC, id ASC").
		Find(&payments).Error; err != nil {
		logger.Error("Failed to find payments by month in database", err, map[string]interface{}{
			"customer_id": customerID,
			"year":        year,
			"month":       month,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) SumByCustomerAndMonth(customerID uint, year, month int) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.Model(&model.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to sum payments in database", err, map[string]interface{}{
			"customer_id": customerID,
			"year":        year,
			"month":       month,
		})
		return 0, err
	}
	return result.Total, nil
}

func (r *paymentRepository) ListByCustomer(customerID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("customer_id = ?", customerID).
		Order("year DESC, month DESC, created_at DESC").
		Find(&payments).Error; err != nil {
		logger.Error("Failed to list payments by customer in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return payments, nil
}
