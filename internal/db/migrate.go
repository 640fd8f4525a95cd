package db

import (
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Course{},
		&model.Product{},
		&model.Customer{},
		&model.CustomerSettings{},
		&model.DeliveryPattern{},
		&model.TemporaryChange{},
		&model.Invoice{},
		&model.Payment{},
		&model.OperationLog{},
		&model.Operator{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	// 배달 코스는 고객 등록의 전제라 기본값을 깔아 둔다
	if err := seedCourses(); err != nil {
		logger.Error("Failed to seed courses", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedCourses 기본 배달 코스 생성
func seedCourses() error {
	var count int64
	if err := DB.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Courses already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding course data...")

	courses := []model.Course{
		{Name: "1코스", Description: "시내 북부 오전 배달"},
		{Name: "2코스", Description: "시내 남부 오전 배달"},
		{Name: "3코스", Description: "외곽 오후 배달"},
	}

	for _, course := range courses {
		if err := DB.Create(&course).Error; err != nil {
			logger.Error("Failed to create course", err, map[string]interface{}{
				"course": course.Name,
			})
			return err
		}
	}

	logger.Info("Courses seeded successfully", map[string]interface{}{
		"total_courses": len(courses),
	})
	return nil
}
