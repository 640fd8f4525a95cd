package repository

import (
	"errors"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type OperationLogRepository interface {
	Create(log *model.OperationLog) error
	FindByID(id uint) (*model.OperationLog, error)
	List(limit int) ([]model.OperationLog, error)
	// MarkReversed 기록은 남기고 되돌림 표시만 한다
	MarkReversed(id uint) error
}

type operationLogRepository struct {
	db *gorm.DB
}

func NewOperationLogRepository(db *gorm.DB) OperationLogRepository {
	return &operationLogRepository{db: db}
}

func (r *operationLogRepository) Create(log *model.OperationLog) error {
	logger.Debug("Creating operation log in database", map[string]interface{}{
		"type":        log.Type,
		"description": log.Description,
	})

	if err := r.db.Create(log).Error; err != nil {
		logger.Error("Failed to create operation log in database", err, map[string]interface{}{
			"type": log.Type,
		})
		return err
	}
	return nil
}

func (r *operationLogRepository) FindByID(id uint) (*model.OperationLog, error) {
	var log model.OperationLog
	if err := r.db.First(&log, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find operation log by ID in database", err, map[string]interface{}{
				"operation_log_id": id,
			})
		}
		return nil, err
	}
	return &log, nil
}

func (r *operationLogRepository) List(limit int) ([]model.OperationLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logs []model.OperationLog
	if err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		logger.Error("Failed to list operation logs in database", err)
		return nil, err
	}
	return logs, nil
}

func (r *operationLogRepository) MarkReversed(id uint) error {
	now := time.Now()
	if err := r.db.Model(&model.OperationLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reversed":    true,
			"reversed_at": &now,
		}).Error; err != nil {
		logger.Error("Failed to mark operation log reversed in database", err, map[string]interface{}{
			"operation_log_id": id,
		})
		return err
	}
	return nil
}
