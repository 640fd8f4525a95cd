package repository

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type OperatorRepository interface {
	Create(operator *model.Operator) error
	FindByID(id uint) (*model.Operator, error)
	FindByEmail(email string) (*model.Operator, error)
}

type operatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(operator *model.Operator) error {
	if err := r.db.Create(operator).Error; err != nil {
		logger.Error("Failed to create operator in database", err, map[string]interface{}{
			"email": operator.Email,
		})
		return err
	}
	return nil
}

func (r *operatorRepository) FindByID(id uint) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.First(&operator, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find operator by ID in database", err, map[string]interface{}{
				"operator_id": id,
			})
		}
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) FindByEmail(email string) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.Where("email = ?", email).First(&operator).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find operator by email in database", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &operator, nil
}
