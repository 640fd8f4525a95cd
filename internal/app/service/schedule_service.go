package service

import (
	"errors"
	"strings"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"gorm.io/gorm"
)

// CreatePatternInput 정기 배달 규칙 등록 입력
type CreatePatternInput struct {
	CustomerID      uint       `json:"customer_id" binding:"required"`
	ProductID       uint       `json:"product_id" binding:"required"`
	Weekdays        string     `json:"weekdays"`
	DailyQuantities string     `json:"daily_quantities"`
	Quantity        int        `json:"quantity"`
	UnitPrice       float64    `json:"unit_price"`
	StartDate       time.Time  `json:"start_date" binding:"required"`
	EndDate         *time.Time `json:"end_date"`
}

// CreateChangeInput 임시 변경 등록 입력
type CreateChangeInput struct {
	CustomerID uint             `json:"customer_id" binding:"required"`
	Date       time.Time        `json:"date" binding:"required"`
	Type       model.ChangeType `json:"type" binding:"required"`
	ProductID  *uint            `json:"product_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  *float64         `json:"unit_price"`
	Reason     string           `json:"reason"`
}

// ScheduleService 패턴/임시 변경의 직접 편집 경로.
// 모든 변경은 월 잠금 검사를 통과해야 한다.
type ScheduleService interface {
	CreatePattern(input CreatePatternInput) (*model.DeliveryPattern, error)
	UpdatePatternEndDate(patternID uint, newEnd *time.Time) (*model.DeliveryPattern, error)
	ListPatterns(customerID uint) ([]model.DeliveryPattern, error)
	GetPattern(patternID uint) (*model.DeliveryPattern, error)

	CreateTemporaryChange(input CreateChangeInput) (*model.TemporaryChange, error)
	DeleteTemporaryChange(changeID uint) error
	ListTemporaryChanges(customerID uint, from, to time.Time) ([]model.TemporaryChange, error)
}

type scheduleService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	patternRepo  repository.PatternRepository
	changeRepo   repository.TemporaryChangeRepository
	monthLock    MonthLockService
}

func NewScheduleService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	patternRepo repository.PatternRepository,
	changeRepo repository.TemporaryChangeRepository,
	monthLock MonthLockService,
) ScheduleService {
	return &scheduleService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		patternRepo:  patternRepo,
		changeRepo:   changeRepo,
		monthLock:    monthLock,
	}
}

func (s *scheduleService) CreatePattern(input CreatePatternInput) (*model.DeliveryPattern, error) {
	if input.UnitPrice < 0 {
		return nil, ErrInvalidUnitPrice
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if strings.TrimSpace(input.Weekdays) == "" && strings.TrimSpace(input.DailyQuantities) == "" {
		return nil, ErrInvalidSchedule
	}

	start := util.DateOnly(input.StartDate)
	var end *time.Time
	if input.EndDate != nil {
		e := util.DateOnly(*input.EndDate)
		if e.Before(start) {
			return nil, ErrInvalidDateRange
		}
		end = &e
	}

	if _, err := s.customerRepo.FindByID(input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.monthLock.EnsureStartAllowed(input.CustomerID, start); err != nil {
		return nil, err
	}

	pattern := &model.DeliveryPattern{
		CustomerID:      input.CustomerID,
		ProductID:       input.ProductID,
		Weekdays:        input.Weekdays,
		DailyQuantities: input.DailyQuantities,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		StartDate:       start,
		EndDate:         end,
		Active:          true,
	}
	if err := s.patternRepo.Create(pattern); err != nil {
		return nil, err
	}

	logger.Info("Delivery pattern created", map[string]interface{}{
		"pattern_id":  pattern.ID,
		"customer_id": pattern.CustomerID,
		"product_id":  pattern.ProductID,
	})
	return pattern, nil
}

func (s *scheduleService) UpdatePatternEndDate(patternID uint, newEnd *time.Time) (*model.DeliveryPattern, error) {
	pattern, err := s.patternRepo.FindByID(patternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, err
	}

	if newEnd != nil {
		e := util.DateOnly(*newEnd)
		if e.Before(util.DateOnly(pattern.StartDate)) {
			return nil, ErrInvalidDateRange
		}
		newEnd = &e
	}

	if err := s.monthLock.EnsureEndDateChangeAllowed(pattern, newEnd); err != nil {
		return nil, err
	}

	if err := s.patternRepo.UpdateEndDate(patternID, newEnd); err != nil {
		return nil, err
	}
	pattern.EndDate = newEnd

	logger.Info("Delivery pattern end date updated", map[string]interface{}{
		"pattern_id": patternID,
		"end_date":   newEnd,
	})
	return pattern, nil
}

func (s *scheduleService) ListPatterns(customerID uint) ([]model.DeliveryPattern, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.patternRepo.FindByCustomer(customerID)
}

func (s *scheduleService) GetPattern(patternID uint) (*model.DeliveryPattern, error) {
	pattern, err := s.patternRepo.FindByID(patternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, err
	}
	return pattern, nil
}

func (s *scheduleService) CreateTemporaryChange(input CreateChangeInput) (*model.TemporaryChange, error) {
	switch input.Type {
	case model.ChangeTypeSkip:
		// skip은 상품 미지정(전체 중지) 허용
	case model.ChangeTypeModify, model.ChangeTypeAdd:
		if input.ProductID == nil {
			return nil, ErrProductRequired
		}
		if input.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
	default:
		return nil, ErrInvalidChangeType
	}
	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return nil, ErrInvalidUnitPrice
	}

	if _, err := s.customerRepo.FindByID(input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if input.ProductID != nil {
		if _, err := s.productRepo.FindByID(*input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
	}

	date := util.DateOnly(input.Date)
	if err := s.monthLock.EnsureUnlocked(input.CustomerID, date); err != nil {
		return nil, err
	}

	change := &model.TemporaryChange{
		CustomerID: input.CustomerID,
		Date:       date,
		Type:       input.Type,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Reason:     input.Reason,
	}
	if err := s.changeRepo.Create(change); err != nil {
		return nil, err
	}

	logger.Info("Temporary change created", map[string]interface{}{
		"change_id":   change.ID,
		"customer_id": change.CustomerID,
		"date":        change.Date,
		"type":        change.Type,
	})
	return change, nil
}

func (s *scheduleService) DeleteTemporaryChange(changeID uint) error {
	change, err := s.changeRepo.FindByID(changeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChangeNotFound
		}
		return err
	}

	// 삭제도 확정 월의 내역을 바꾸므로 같은 잠금을 따른다
	if err := s.monthLock.EnsureUnlocked(change.CustomerID, change.Date); err != nil {
		return err
	}

	if err := s.changeRepo.DeleteByID(changeID); err != nil {
		return err
	}

	logger.Info("Temporary change deleted", map[string]interface{}{
		"change_id":   changeID,
		"customer_id": change.CustomerID,
		"date":        change.Date,
	})
	return nil
}

func (s *scheduleService) ListTemporaryChanges(customerID uint, from, to time.Time) ([]model.TemporaryChange, error) {
	if util.DateOnly(from).After(util.DateOnly(to)) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.changeRepo.FindByCustomerAndRange(customerID, util.DateOnly(from), util.DateOnly(to))
}
