package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidaySkipParams 휴배 일괄 등록 파라미터
type HolidaySkipParams struct {
	CourseID   uint       `json:"course_id" binding:"required"`
	StartDate  time.Time  `json:"start_date" binding:"required"`
	EndDate    time.Time  `json:"end_date" binding:"required"`
	TargetDate *time.Time `json:"target_date"` // 지정 시 기간 수량을 이 날로 몰아서 배달
}

// BulkItemError 휴배 일괄 등록의 건별 실패.
// 실패가 있어도 호출 전체는 계속 진행된다.
type BulkItemError struct {
	CustomerID uint   `json:"customer_id"`
	ProductID  uint   `json:"product_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Reason     string `json:"reason"`
}

// HolidaySkipResult 휴배 일괄 등록 결과
type HolidaySkipResult struct {
	Log     *model.OperationLog `json:"log"`
	Created int                 `json:"created"` // 생성한 임시 변경 건수
	Errors  []BulkItemError     `json:"errors"`
}

// PriceChangeParams 단가 일괄 변경 파라미터
type PriceChangeParams struct {
	ProductID      uint    `json:"product_id" binding:"required"`
	NewUnitPrice   float64 `json:"new_unit_price"`
	EffectiveYear  int     `json:"effective_year" binding:"required"`
	EffectiveMonth int     `json:"effective_month" binding:"required"`
	CourseID       *uint   `json:"course_id"` // 지정 시 해당 코스 고객만
}

// PriceChangeResult 단가 일괄 변경 결과
type PriceChangeResult struct {
	Log     *model.OperationLog `json:"log"`
	Changed int                 `json:"changed"` // 분할된 패턴 수
}

// BulkService 코스 단위 일괄 변경 엔진. 각 호출은 되돌리기에 충분한 데이터를
// 담은 OperationLog 1건을 남긴다.
//
// 휴배 등록은 건별 실패를 허용하고, 단가 변경은 사전 점검에서 한 건이라도
// 걸리면 전체를 거부한다. 이 비대칭은 의도된 것이므로 통일하지 말 것.
type BulkService interface {
	ApplyHolidaySkips(params HolidaySkipParams) (*HolidaySkipResult, error)
	ChangePrice(params PriceChangeParams) (*PriceChangeResult, error)
	// Rollback 로그의 유형별 페이로드를 해석해 변경을 되돌린다.
	// 이미 사라진 행은 무해 삭제로 취급하고, 로그는 항상 처리 완료로 표시한다.
	Rollback(operationLogID uint) (*model.OperationLog, error)
	ListOperations(limit int) ([]model.OperationLog, error)
}

type bulkService struct {
	customerRepo repository.CustomerRepository
	courseRepo   repository.CourseRepository
	productRepo  repository.ProductRepository
	patternRepo  repository.PatternRepository
	changeRepo   repository.TemporaryChangeRepository
	logRepo      repository.OperationLogRepository
	monthLock    MonthLockService
}

func NewBulkService(
	customerRepo repository.CustomerRepository,
	courseRepo repository.CourseRepository,
	productRepo repository.ProductRepository,
	patternRepo repository.PatternRepository,
	changeRepo repository.TemporaryChangeRepository,
	logRepo repository.OperationLogRepository,
	monthLock MonthLockService,
) BulkService {
	return &bulkService{
		customerRepo: customerRepo,
		courseRepo:   courseRepo,
		productRepo:  productRepo,
		patternRepo:  patternRepo,
		changeRepo:   changeRepo,
		logRepo:      logRepo,
		monthLock:    monthLock,
	}
}

// reasonTag 임시 변경 사유에 심는 작업 식별 태그.
// 로그의 ID 목록이 유실됐을 때 이 태그로 되돌린다.
func reasonTag(operationID string) string {
	return fmt.Sprintf("[op:%s]", operationID)
}

func (s *bulkService) ApplyHolidaySkips(params HolidaySkipParams) (*HolidaySkipResult, error) {
	start := util.DateOnly(params.StartDate)
	end := util.DateOnly(params.EndDate)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	var target *time.Time
	if params.TargetDate != nil {
		t := util.DateOnly(*params.TargetDate)
		target = &t
	}

	if _, err := s.courseRepo.FindByID(params.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	customers, err := s.customerRepo.ListByCourse(params.CourseID)
	if err != nil {
		return nil, err
	}

	operationID := uuid.NewString()
	reason := "휴배 일괄 등록 " + reasonTag(operationID)

	result := &HolidaySkipResult{Errors: []BulkItemError{}}
	var createdIDs []uint

	// 고객/상품 단위로 순차 처리. 잠금 확인과 쓰기 사이의 좁은 경합은
	// 운영자 배치 도구이므로 허용한다.
	for _, customer := range customers {
		patterns, err := s.patternRepo.FindByCustomer(customer.ID)
		if err != nil {
			return nil, err
		}

		byProduct := make(map[uint][]model.DeliveryPattern)
		var productOrder []uint
		for _, p := range patterns {
			if _, seen := byProduct[p.ProductID]; !seen {
				productOrder = append(productOrder, p.ProductID)
			}
			byProduct[p.ProductID] = append(byProduct[p.ProductID], p)
		}

		for _, productID := range productOrder {
			group := byProduct[productID]

			// 기간 중 배달 예정 수량 (기존 임시 변경은 무시하고 패턴만 본다)
			type delivery struct {
				date time.Time
				qty  int
			}
			var deliveries []delivery
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				effective := ResolveEffectivePattern(group, d)
				if effective == nil {
					continue
				}
				if qty := effective.QuantityOn(d); qty > 0 {
					deliveries = append(deliveries, delivery{date: d, qty: qty})
				}
			}
			if len(deliveries) == 0 {
				continue // 기간 중 배달이 없는 패턴은 건너뛴다
			}

			dates := make([]time.Time, 0, len(deliveries))
			for _, dv := range deliveries {
				dates = append(dates, dv.date)
			}
			if itemErr := s.holidayLockError(customer.ID, productID, dates, target); itemErr != nil {
				result.Errors = append(result.Errors, *itemErr)
				continue
			}

			skippedTotal := 0
			for _, dv := range deliveries {
				if target != nil && util.SameDay(dv.date, *target) {
					continue // 몰아받는 날 자체는 건너뛰지 않는다
				}
				pid := productID
				change := &model.TemporaryChange{
					CustomerID: customer.ID,
					Date:       dv.date,
					Type:       model.ChangeTypeSkip,
					ProductID:  &pid,
					Quantity:   dv.qty,
					Reason:     reason,
				}
				if err := s.changeRepo.Create(change); err != nil {
					return nil, err
				}
				createdIDs = append(createdIDs, change.ID)
				skippedTotal += dv.qty
			}

			if target != nil && skippedTotal > 0 {
				if err := s.frontLoad(customer.ID, productID, *target, skippedTotal, reason, &createdIDs); err != nil {
					return nil, err
				}
			}
		}
	}

	result.Created = len(createdIDs)

	operationLog := &model.OperationLog{
		Type: model.OperationHolidaySkip,
		Description: fmt.Sprintf("휴배 일괄 등록: 코스 %d, %s ~ %s",
			params.CourseID, start.Format("2006-01-02"), end.Format("2006-01-02")),
	}
	if paramsJSON, err := json.Marshal(params); err == nil {
		operationLog.Params = string(paramsJSON)
	}
	if err := operationLog.EncodeReversal(model.HolidaySkipReversal{
		OperationID: operationID,
		ChangeIDs:   createdIDs,
	}); err != nil {
		return nil, err
	}
	if err := s.logRepo.Create(operationLog); err != nil {
		return nil, err
	}
	result.Log = operationLog

	logger.Info("Holiday skip batch finished", map[string]interface{}{
		"operation_log_id": operationLog.ID,
		"course_id":        params.CourseID,
		"created":          result.Created,
		"errors":           len(result.Errors),
	})
	return result, nil
}

// holidayLockError 해당 상품의 영향 일자 중 확정 월이 있으면 건별 오류를 돌려준다
func (s *bulkService) holidayLockError(customerID, productID uint, dates []time.Time, target *time.Time) *BulkItemError {
	checkDates := dates
	if target != nil {
		checkDates = append(checkDates, *target)
	}
	for _, d := range checkDates {
		err := s.monthLock.EnsureUnlocked(customerID, d)
		if err == nil {
			continue
		}
		var locked *MonthLockedError
		if errors.As(err, &locked) {
			return &BulkItemError{
				CustomerID: customerID,
				ProductID:  productID,
				Year:       locked.Year,
				Month:      locked.Month,
				Reason:     fmt.Sprintf("%04d-%02d월이 확정돼 있습니다", locked.Year, locked.Month),
			}
		}
		// 저장소 오류는 건별 오류로 집계 (재시도 없음)
		return &BulkItemError{
			CustomerID: customerID,
			ProductID:  productID,
			Reason:     err.Error(),
		}
	}
	return nil
}

// frontLoad 몰아받는 날에 기간 합계 수량의 modify를 넣는다.
// 그 날에 이미 있던 같은 상품의 skip은 제거해 합계 배달이 눌리지 않게 한다.
func (s *bulkService) frontLoad(customerID, productID uint, target time.Time, total int, reason string, createdIDs *[]uint) error {
	existing, err := s.changeRepo.FindSkips(customerID, target, productID)
	if err != nil {
		return err
	}
	for _, skip := range existing {
		if err := s.changeRepo.DeleteByID(skip.ID); err != nil {
			return err
		}
	}

	pid := productID
	change := &model.TemporaryChange{
		CustomerID: customerID,
		Date:       target,
		Type:       model.ChangeTypeModify,
		ProductID:  &pid,
		Quantity:   total,
		Reason:     reason,
	}
	if err := s.changeRepo.Create(change); err != nil {
		return err
	}
	*createdIDs = append(*createdIDs, change.ID)
	return nil
}

func (s *bulkService) ChangePrice(params PriceChangeParams) (*PriceChangeResult, error) {
	if !util.ValidMonth(params.EffectiveMonth) {
		return nil, ErrInvalidMonth
	}
	if params.NewUnitPrice < 0 {
		return nil, ErrInvalidUnitPrice
	}
	if _, err := s.productRepo.FindByID(params.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if params.CourseID != nil {
		if _, err := s.courseRepo.FindByID(*params.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
	}

	requestedStart := util.MonthStart(params.EffectiveYear, params.EffectiveMonth)

	patterns, err := s.patternRepo.FindActiveByProduct(params.ProductID, requestedStart, params.CourseID)
	if err != nil {
		return nil, err
	}

	// 사전 점검: 쓰기 전에 모든 고객을 검사해 한 건이라도 걸리면 전체 거부.
	// 실행 단계가 도중에 중단되는 일이 없도록 하기 위한 것이다.
	var blocked []BlockedCustomer
	for _, p := range patterns {
		effStart := effectiveStart(requestedStart, p.StartDate)
		confirmed, err := s.monthLock.IsConfirmed(p.CustomerID, effStart.Year(), int(effStart.Month()))
		if err != nil {
			return nil, err
		}
		if confirmed {
			blocked = append(blocked, BlockedCustomer{
				CustomerID: p.CustomerID,
				PatternID:  p.ID,
				Year:       effStart.Year(),
				Month:      int(effStart.Month()),
			})
		}
	}
	if len(blocked) > 0 {
		logger.Warn("Price change blocked before any mutation", map[string]interface{}{
			"product_id": params.ProductID,
			"blocked":    len(blocked),
		})
		return nil, &BatchBlockedError{Blocked: blocked}
	}

	// 실행: 기존 패턴을 시작 전날로 마감하고 새 단가의 무기한 패턴을 잇는다.
	// 기존 패턴은 청구 이력을 위해 그 외에는 손대지 않는다.
	var entries []model.PriceChangeEntry
	for _, p := range patterns {
		effStart := effectiveStart(requestedStart, p.StartDate)
		previousEnd := p.EndDate

		closeDate := effStart.AddDate(0, 0, -1)
		if err := s.patternRepo.UpdateEndDate(p.ID, &closeDate); err != nil {
			return nil, err
		}

		successor := &model.DeliveryPattern{
			CustomerID:      p.CustomerID,
			ProductID:       p.ProductID,
			Weekdays:        p.Weekdays,
			DailyQuantities: p.DailyQuantities,
			Quantity:        p.Quantity,
			UnitPrice:       params.NewUnitPrice,
			StartDate:       effStart,
			EndDate:         nil,
			Active:          true,
		}
		if err := s.patternRepo.Create(successor); err != nil {
			return nil, err
		}

		entries = append(entries, model.PriceChangeEntry{
			CustomerID:      p.CustomerID,
			OldPatternID:    p.ID,
			PreviousEndDate: previousEnd,
			NewPatternID:    successor.ID,
		})
	}

	operationLog := &model.OperationLog{
		Type: model.OperationPriceChange,
		Description: fmt.Sprintf("단가 일괄 변경: 상품 %d → %.0f원, %04d-%02d부터",
			params.ProductID, params.NewUnitPrice, params.EffectiveYear, params.EffectiveMonth),
	}
	if paramsJSON, err := json.Marshal(params); err == nil {
		operationLog.Params = string(paramsJSON)
	}
	if err := operationLog.EncodeReversal(model.PriceChangeReversal{Entries: entries}); err != nil {
		return nil, err
	}
	if err := s.logRepo.Create(operationLog); err != nil {
		return nil, err
	}

	logger.Info("Price change batch finished", map[string]interface{}{
		"operation_log_id": operationLog.ID,
		"product_id":       params.ProductID,
		"changed":          len(entries),
	})
	return &PriceChangeResult{Log: operationLog, Changed: len(entries)}, nil
}

func effectiveStart(requested, patternStart time.Time) time.Time {
	start := util.DateOnly(patternStart)
	if start.After(requested) {
		return start
	}
	return requested
}

func (s *bulkService) Rollback(operationLogID uint) (*model.OperationLog, error) {
	operationLog, err := s.logRepo.FindByID(operationLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	if operationLog.Reversed {
		return nil, ErrOperationReversed
	}

	switch operationLog.Type {
	case model.OperationHolidaySkip:
		err = s.rollbackHolidaySkip(operationLog)
	case model.OperationPriceChange:
		err = s.rollbackPriceChange(operationLog)
	default:
		err = fmt.Errorf("unknown operation type: %s", operationLog.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := s.logRepo.MarkReversed(operationLog.ID); err != nil {
		return nil, err
	}
	operationLog.Reversed = true

	logger.Info("Operation rolled back", map[string]interface{}{
		"operation_log_id": operationLog.ID,
		"type":             operationLog.Type,
	})
	return operationLog, nil
}

func (s *bulkService) rollbackHolidaySkip(operationLog *model.OperationLog) error {
	payload, err := operationLog.HolidaySkipPayload()
	if err != nil {
		return err
	}

	if len(payload.ChangeIDs) > 0 {
		// 이미 지워진 행은 무시 (무해 삭제)
		for _, id := range payload.ChangeIDs {
			if err := s.changeRepo.DeleteByID(id); err != nil {
				return err
			}
		}
		return nil
	}

	if payload.OperationID != "" {
		// ID 목록이 없으면 사유 태그로 되돌린다
		deleted, err := s.changeRepo.DeleteByReasonTag(nil, reasonTag(payload.OperationID))
		if err != nil {
			return err
		}
		logger.Debug("Holiday skip rollback via reason tag", map[string]interface{}{
			"operation_log_id": operationLog.ID,
			"deleted":          deleted,
		})
	}
	return nil
}

func (s *bulkService) rollbackPriceChange(operationLog *model.OperationLog) error {
	payload, err := operationLog.PriceChangePayload()
	if err != nil {
		return err
	}

	for _, entry := range payload.Entries {
		if err := s.patternRepo.Delete(entry.NewPatternID); err != nil {
			return err
		}
		if err := s.patternRepo.UpdateEndDate(entry.OldPatternID, entry.PreviousEndDate); err != nil {
			return err
		}
	}
	return nil
}

func (s *bulkService) ListOperations(limit int) ([]model.OperationLog, error) {
	return s.logRepo.List(limit)
}
