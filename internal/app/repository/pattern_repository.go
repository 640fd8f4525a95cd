package repository

import (
	"errors"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type PatternRepository interface {
	Create(pattern *model.DeliveryPattern) error
	FindByID(id uint) (*model.DeliveryPattern, error)
	FindByCustomer(customerID uint) ([]model.DeliveryPattern, error)
	FindByCustomerAndProduct(customerID, productID uint) ([]model.DeliveryPattern, error)
	// FindActiveByProduct 지정일 이후에도 유효한 활성 패턴 (courseID 지정 시 코스 한정)
	FindActiveByProduct(productID uint, from time.Time, courseID *uint) ([]model.DeliveryPattern, error)
	Update(pattern *model.DeliveryPattern) error
	UpdateEndDate(id uint, end *time.Time) error
	// Delete 일괄 작업 되돌리기 전용. 이미 없는 행은 무시한다.
	Delete(id uint) error
}

type patternRepository struct {
	db *gorm.DB
}

func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) Create(pattern *model.DeliveryPattern) error {
	logger.Debug("Creating delivery pattern in database", map[string]interface{}{
		"customer_id": pattern.CustomerID,
		"product_id":  pattern.ProductID,
		"start_date":  pattern.StartDate,
	})

	if err := r.db.Create(pattern).Error; err != nil {
		logger.Error("Failed to create delivery pattern in database", err, map[string]interface{}{
			"customer_id": pattern.CustomerID,
			"product_id":  pattern.ProductID,
		})
		return err
	}
	return nil
}

func (r *patternRepository) FindByID(id uint) (*model.DeliveryPattern, error) {
	var pattern model.DeliveryPattern
	if err := r.db.Preload("Product").First(&pattern, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find delivery pattern by ID in database", err, map[string]interface{}{
				"pattern_id": id,
			})
		}
		return nil, err
	}
	return &pattern, nil
}

func (r *patternRepository) FindByCustomer(customerID uint) ([]model.DeliveryPattern, error) {
	var patterns []model.DeliveryPattern
	if err := r.db.Preload("Product").
		Where("customer_id = ?", customerID).
		Order("product_id ASC, start_date ASC, id ASC").
		Find(&patterns).Error; err != nil {
		logger.Error("Failed to find delivery patterns by customer in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return patterns, nil
}

func (r *patternRepository) FindByCustomerAndProduct(customerID, productID uint) ([]model.DeliveryPattern, error) {
	var patterns []model.DeliveryPattern
	if err := r.db.Preload("Product").
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Order("start_date ASC, id ASC").
		Find(&patterns).Error; err != nil {
		logger.Error("Failed to find delivery patterns by customer and product in database", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}
	return patterns, nil
}

func (r *patternRepository) FindActiveByProduct(productID uint, from time.Time, courseID *uint) ([]model.DeliveryPattern, error) {
	query := r.db.Preload("Product").
		Where("product_id = ? AND active = ?", productID, true).
		Where("end_date IS NULL OR end_date >= ?", from)

	if courseID != nil {
		query = query.
			Joins("JOIN customers ON customers.id = delivery_patterns.customer_id").
			Where("customers.course_id = ?", *courseID)
	}

	var patterns []model.DeliveryPattern
	if err := query.Order("customer_id ASC, start_date ASC, id ASC").
		Find(&patterns).Error; err != nil {
		logger.Error("Failed to find active delivery patterns by product in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return patterns, nil
}

func (r *patternRepository) Update(pattern *model.DeliveryPattern) error {
	if err := r.db.Save(pattern).Error; err != nil {
		logger.Error("Failed to update delivery pattern in database", err, map[string]interface{}{
			"pattern_id": pattern.ID,
		})
		return err
	}
	return nil
}

func (r *patternRepository) UpdateEndDate(id uint, end *time.Time) error {
	logger.Debug("Updating delivery pattern end date in database", map[string]interface{}{
		"pattern_id": id,
		"end_date":   end,
	})

	if err := r.db.Model(&model.DeliveryPattern{}).Where("id = ?", id).
		Update("end_date", end).Error; err != nil {
		logger.Error("Failed to update delivery pattern end date in database", err, map[string]interface{}{
			"pattern_id": id,
		})
		return err
	}
	return nil
}

func (r *patternRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.DeliveryPattern{}, id).Error; err != nil {
		logger.Error("Failed to delete delivery pattern in database", err, map[string]interface{}{
			"pattern_id": id,
		})
		return err
	}
	return nil
}
