package repository

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(id uint) (*model.Customer, error)
	List() ([]model.Customer, error)
	ListByCourse(courseID uint) ([]model.Customer, error)
	ListIDsByCourse(courseID uint) ([]uint, error)
	// GetSettings 설정 레코드가 없으면 기본값을 돌려준다 (저장하지 않음)
	GetSettings(customerID uint) (*model.CustomerSettings, error)
	SaveSettings(settings *model.CustomerSettings) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Course").Preload("Settings").First(&customer, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find customer by ID in database", err, map[string]interface{}{
				"customer_id": id,
			})
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List() ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.Preload("Course").
		Order("course_id ASC, position ASC, id ASC").
		Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers in database", err)
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) ListByCourse(courseID uint) ([]model.Customer, error) {
	logger.Debug("Listing customers by course in database", map[string]interface{}{
		"course_id": courseID,
	})

	var customers []model.Customer
	if err := r.db.Where("course_id = ?", courseID).
		Order("position ASC, id ASC").
		Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers by course in database", err, map[string]interface{}{
			"course_id": courseID,
		})
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) ListIDsByCourse(courseID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Customer{}).
		Where("course_id = ?", courseID).
		Order("position ASC, id ASC").
		Pluck("id", &ids).Error; err != nil {
		logger.Error("Failed to list customer IDs by course in database", err, map[string]interface{}{
			"course_id": courseID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *customerRepository) GetSettings(customerID uint) (*model.CustomerSettings, error) {
	var settings model.CustomerSettings
	err := r.db.Where("customer_id = ?", customerID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultCustomerSettings(customerID), nil
		}
		logger.Error("Failed to load customer settings in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return &settings, nil
}

func (r *customerRepository) SaveSettings(settings *model.CustomerSettings) error {
	if err := r.db.Save(settings).Error; err != nil {
		logger.Error("Failed to save customer settings in database", err, map[string]interface{}{
			"customer_id": settings.CustomerID,
		})
		return err
	}
	return nil
}
