package repository

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"gorm.io/gorm"
)

type CourseRepository interface {
	FindByID(id uint) (*model.Course, error)
	List() ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find course by ID in database", err, map[string]interface{}{
				"course_id": id,
			})
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Order("id ASC").Find(&courses).Error; err != nil {
		logger.Error("Failed to list courses in database", err)
		return nil, err
	}
	return courses, nil
}
