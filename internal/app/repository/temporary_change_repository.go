package repository

import (
	"errors"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type TemporaryChangeRepository interface {
	Create(change *model.TemporaryChange) error
	FindByID(id uint) (*model.TemporaryChange, error)
	// FindByCustomerAndRange from..to (양 끝 포함)
	FindByCustomerAndRange(customerID uint, from, to time.Time) ([]model.TemporaryChange, error)
	FindByCustomerAndDate(customerID uint, date time.Time) ([]model.TemporaryChange, error)
	// FindSkips 특정 일자·상품의 skip 행 (상품 한정 행만)
	FindSkips(customerID uint, date time.Time, productID uint) ([]model.TemporaryChange, error)
	// DeleteByID 이미 없는 행은 에러가 아니다 (되돌리기의 무해 삭제)
	DeleteByID(id uint) error
	// DeleteByReasonTag 사유 문자열에 태그가 포함된 행 일괄 삭제, 삭제 건수 반환
	DeleteByReasonTag(customerIDs []uint, tag string) (int64, error)
}

type temporaryChangeRepository struct {
	db *gorm.DB
}

func NewTemporaryChangeRepository(db *gorm.DB) TemporaryChangeRepository {
	return &temporaryChangeRepository{db: db}
}

func (r *temporaryChangeRepository) Create(change *model.TemporaryChange) error {
	logger.Debug("Creating temporary change in database", map[string]interface{}{
		"customer_id": change.CustomerID,
		"date":        change.Date,
		"type":        change.Type,
	})

	if err := r.db.Create(change).Error; err != nil {
		logger.Error("Failed to create temporary change in database", err, map[string]interface{}{
			"customer_id": change.CustomerID,
			"date":        change.Date,
			"type":        change.Type,
		})
		return err
	}
	return nil
}

func (r *temporaryChangeRepository) FindByID(id uint) (*model.TemporaryChange, error) {
	var change model.TemporaryChange
	if err := r.db.Preload("Product").First(&change, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find temporary change by ID in database", err, map[string]interface{}{
				"change_id": id,
			})
		}
		return nil, err
	}
	return &change, nil
}

func (r *temporaryChangeRepository) FindByCustomerAndRange(customerID uint, from, to time.Time) ([]model.TemporaryChange, error) {
	var changes []model.TemporaryChange
	if err := r.db.Preload("Product").
		Where("customer_id = ? AND date >= ? AND date <= ?", customerID, from, to).
		Order("date ASC, created_at ASC, id ASC").
		Find(&changes).Error; err != nil {
		logger.Error("Failed to find temporary changes by range in database", err, map[string]interface{}{
			"customer_id": customerID,
			"from":        from,
			"to":          to,
		})
		return nil, err
	}
	return changes, nil
}

func (r *temporaryChangeRepository) FindByCustomerAndDate(customerID uint, date time.Time) ([]model.TemporaryChange, error) {
	return r.FindByCustomerAndRange(customerID, date, date)
}

func (r *temporaryChangeRepository) FindSkips(customerID uint, date time.Time, productID uint) ([]model.TemporaryChange, error) {
	var changes []model.TemporaryChange
	if err := r.db.
		Where("customer_id = ? AND date = ? AND type = ? AND product_id = ?",
			customerID, date, model.ChangeTypeSkip, productID).
		Find(&changes).Error; err != nil {
		logger.Error("Failed to find skip changes in database", err, map[string]interface{}{
			"customer_id": customerID,
			"date":        date,
			"product_id":  productID,
		})
		return nil, err
	}
	return changes, nil
}

func (r *temporaryChangeRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&model.TemporaryChange{}, id).Error; err != nil {
		logger.Error("Failed to delete temporary change in database", err, map[string]interface{}{
			"change_id": id,
		})
		return err
	}
	return nil
}

func (r *temporaryChangeRepository) DeleteByReasonTag(customerIDs []uint, tag string) (int64, error) {
	query := r.db.Where("reason LIKE ?", "%"+tag+"%")
	if len(customerIDs) > 0 {
		query = query.Where("customer_id IN ?", customerIDs)
	}

	result := query.Delete(&model.TemporaryChange{})
	if result.Error != nil {
		logger.Error("Failed to delete temporary changes by reason tag in database", result.Error, map[string]interface{}{
			"tag": tag,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
