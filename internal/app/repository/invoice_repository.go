package repository

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository interface {
	// Upsert (customer, year, month) 유일 키 기준 원자적 삽입/덮어쓰기
	Upsert(invoice *model.Invoice) error
	FindByCustomerAndMonth(customerID uint, year, month int) (*model.Invoice, error)
	Exists(customerID uint, year, month int) (bool, error)
	// FindLatestByCustomer 가장 최근 확정 월 (없으면 gorm.ErrRecordNotFound)
	FindLatestByCustomer(customerID uint) (*model.Invoice, error)
	ListByMonth(year, month int) ([]model.Invoice, error)
	Delete(customerID uint, year, month int) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Upsert(invoice *model.Invoice) error {
	logger.Debug("Upserting invoice in database", map[string]interface{}{
		"customer_id": invoice.CustomerID,
		"year":        invoice.Year,
		"month":       invoice.Month,
		"amount":      invoice.Amount,
	})

	// 재확정 시 금액/플래그/확정 시각을 항상 덮어쓴다
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount", "rounding_applied", "confirmed_at",
		}),
	}).Create(invoice).Error
	if err != nil {
		logger.Error("Failed to upsert invoice in database", err, map[string]interface{}{
			"customer_id": invoice.CustomerID,
			"year":        invoice.Year,
			"month":       invoice.Month,
		})
		return err
	}
	return nil
}

func (r *invoiceRepository) FindByCustomerAndMonth(customerID uint, year, month int) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		First(&invoice).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find invoice in database", err, map[string]interface{}{
				"customer_id": customerID,
				"year":        year,
				"month":       month,
			})
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Exists(customerID uint, year, month int) (bool, error) {
	var count int64
	err := r.db.Model(&model.Invoice{}).
		Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check invoice existence in database", err, map[string]interface{}{
			"customer_id": customerID,
			"year":        year,
			"month":       month,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *invoiceRepository) FindLatestByCustomer(customerID uint) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.Where("customer_id = ?", customerID).
		Order("year DESC, month DESC").
		First(&invoice).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find latest invoice in database", err, map[string]interface{}{
				"customer_id": customerID,
			})
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListByMonth(year, month int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.db.Where("year = ? AND month = ?", year, month).
		Order("customer_id ASC").
		Find(&invoices).Error; err != nil {
		logger.Error("Failed to list invoices by month in database", err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Delete(customerID uint, year, month int) (int64, error) {
	result := r.db.Where("customer_id = ? AND year = ? AND month = ?", customerID, year, month).
		Delete(&model.Invoice{})
	if result.Error != nil {
		logger.Error("Failed to delete invoice in database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"year":        year,
			"month":       month,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
