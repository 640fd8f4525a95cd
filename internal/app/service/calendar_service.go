package service

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"gorm.io/gorm"
)

// CalendarItem 배달 캘린더의 한 줄 (상품 단위)
type CalendarItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	Added       bool    `json:"added,omitempty"` // 임시 추가 행 여부
}

// CalendarDay 하루치 배달 내역. 저장하지 않고 항상 패턴+임시 변경에서 재계산한다.
type CalendarDay struct {
	Date    time.Time      `json:"date"`
	Weekday time.Weekday   `json:"weekday"`
	Items   []CalendarItem `json:"items"`
	Total   float64        `json:"total"`
}

// RouteDelivery 배달 코스 시트의 고객 1건
type RouteDelivery struct {
	CustomerID   uint           `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Address      string         `json:"address"`
	Position     int            `json:"position"`
	Items        []CalendarItem `json:"items"`
}

// ResolveEffectivePattern 같은 상품의 패턴들 중 해당 일자에 유효한 것 가운데
// 시작일이 가장 늦은 패턴을 고른다. 시작 전인 미래 패턴은 더 최근에 만들어졌어도
// 자기 시작일이 오기 전까지는 절대 선택되지 않는다.
func ResolveEffectivePattern(patterns []model.DeliveryPattern, date time.Time) *model.DeliveryPattern {
	var best *model.DeliveryPattern
	for i := range patterns {
		p := &patterns[i]
		if !p.ValidOn(date) {
			continue
		}
		if best == nil || p.StartDate.After(best.StartDate) {
			best = p
		}
	}
	return best
}

// RoundedBase 월 청구 기준액. 절사 시 10원 미만 버림, 음수는 0으로 고정.
func RoundedBase(rawTotal float64, roundingEnabled bool) float64 {
	base := rawTotal
	if roundingEnabled {
		base = math.Floor(rawTotal/10) * 10
	}
	if base < 0 {
		base = 0
	}
	return base
}

// MonthlyRawTotal 한 달 캘린더의 라인 금액 합계
func MonthlyRawTotal(days []CalendarDay) float64 {
	var total float64
	for _, day := range days {
		total += day.Total
	}
	return total
}

type CalendarService interface {
	// MonthlyCalendar 해당 월의 모든 날짜를 빠짐없이 생성한다
	MonthlyCalendar(customerID uint, year, month int) ([]CalendarDay, error)
	// DayCalendar 특정 일자 하루치
	DayCalendar(customerID uint, date time.Time) (*CalendarDay, error)
	// RouteSheet 코스 소속 고객들의 해당 일자 배달 목록 (배달 없는 고객은 제외)
	RouteSheet(courseID uint, date time.Time) ([]RouteDelivery, error)
}

type calendarService struct {
	customerRepo repository.CustomerRepository
	patternRepo  repository.PatternRepository
	changeRepo   repository.TemporaryChangeRepository
}

func NewCalendarService(
	customerRepo repository.CustomerRepository,
	patternRepo repository.PatternRepository,
	changeRepo repository.TemporaryChangeRepository,
) CalendarService {
	return &calendarService{
		customerRepo: customerRepo,
		patternRepo:  patternRepo,
		changeRepo:   changeRepo,
	}
}

func (s *calendarService) MonthlyCalendar(customerID uint, year, month int) ([]CalendarDay, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	patterns, err := s.patternRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	first := util.MonthStart(year, month)
	last := util.MonthEnd(year, month)

	changes, err := s.changeRepo.FindByCustomerAndRange(customerID, first, last)
	if err != nil {
		return nil, err
	}
	changesByDay := groupChangesByDay(changes)

	days := make([]CalendarDay, 0, util.DaysInMonth(year, month))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := buildCalendarDay(d, patterns, changesByDay[d.Format("2006-01-02")])
		days = append(days, day)
	}

	logger.Debug("Monthly calendar generated", map[string]interface{}{
		"customer_id": customerID,
		"year":        year,
		"month":       month,
		"days":        len(days),
	})
	return days, nil
}

func (s *calendarService) DayCalendar(customerID uint, date time.Time) (*CalendarDay, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	patterns, err := s.patternRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	d := util.DateOnly(date)
	changes, err := s.changeRepo.FindByCustomerAndDate(customerID, d)
	if err != nil {
		return nil, err
	}

	day := buildCalendarDay(d, patterns, changes)
	return &day, nil
}

func (s *calendarService) RouteSheet(courseID uint, date time.Time) ([]RouteDelivery, error) {
	customers, err := s.customerRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	deliveries := make([]RouteDelivery, 0, len(customers))
	for _, customer := range customers {
		day, err := s.DayCalendar(customer.ID, date)
		if err != nil {
			return nil, err
		}
		if len(day.Items) == 0 {
			continue
		}
		deliveries = append(deliveries, RouteDelivery{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Address:      customer.Address,
			Position:     customer.Position,
			Items:        day.Items,
		})
	}
	return deliveries, nil
}

func groupChangesByDay(changes []model.TemporaryChange) map[string][]model.TemporaryChange {
	grouped := make(map[string][]model.TemporaryChange)
	for _, change := range changes {
		key := util.DateOnly(change.Date).Format("2006-01-02")
		grouped[key] = append(grouped[key], change)
	}
	return grouped
}

// buildCalendarDay 패턴 해석 결과에 임시 변경을 덧씌워 하루치 내역을 만든다.
// skip은 조건 없이 수량 0, 그 외에는 가장 최근 생성된 modify 1건이 수량/단가를
// 덮어쓴다. add 행은 skip/modify와 무관하게 항상 추가된다.
func buildCalendarDay(date time.Time, patterns []model.DeliveryPattern, changes []model.TemporaryChange) CalendarDay {
	day := CalendarDay{
		Date:    date,
		Weekday: date.Weekday(),
		Items:   []CalendarItem{},
	}

	byProduct := make(map[uint][]model.DeliveryPattern)
	for _, p := range patterns {
		byProduct[p.ProductID] = append(byProduct[p.ProductID], p)
	}

	productIDs := make([]uint, 0, len(byProduct))
	for id := range byProduct {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	for _, productID := range productIDs {
		effective := ResolveEffectivePattern(byProduct[productID], date)
		if effective == nil {
			continue
		}

		quantity := effective.QuantityOn(date)
		unitPrice := effective.UnitPrice

		if hasSkip(changes, productID) {
			quantity = 0
		} else if modify := latestModify(changes, productID); modify != nil {
			quantity = modify.Quantity
			if modify.UnitPrice != nil {
				unitPrice = *modify.UnitPrice
			}
		}

		if quantity <= 0 {
			continue
		}

		amount := float64(quantity) * unitPrice
		day.Items = append(day.Items, CalendarItem{
			ProductID:   productID,
			ProductName: effective.Product.Name,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
		})
		day.Total += amount
	}

	// 추가 배달은 어떤 skip/modify에도 눌리지 않는다
	for _, change := range changes {
		if change.Type != model.ChangeTypeAdd || change.ProductID == nil || change.Quantity <= 0 {
			continue
		}
		unitPrice := 0.0
		name := ""
		if change.Product != nil {
			unitPrice = change.Product.UnitPrice
			name = change.Product.Name
		}
		if change.UnitPrice != nil {
			unitPrice = *change.UnitPrice
		}
		amount := float64(change.Quantity) * unitPrice
		day.Items = append(day.Items, CalendarItem{
			ProductID:   *change.ProductID,
			ProductName: name,
			Quantity:    change.Quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
			Added:       true,
		})
		day.Total += amount
	}

	return day
}

// hasSkip 상품 한정 또는 전체(blanket) skip 존재 여부
func hasSkip(changes []model.TemporaryChange, productID uint) bool {
	for _, change := range changes {
		if change.Type == model.ChangeTypeSkip && change.AppliesTo(productID) {
			return true
		}
	}
	return false
}

// latestModify 같은 슬롯의 modify가 여럿이면 가장 최근 생성된 행이 이긴다
func latestModify(changes []model.TemporaryChange, productID uint) *model.TemporaryChange {
	var latest *model.TemporaryChange
	for i := range changes {
		change := &changes[i]
		if change.Type != model.ChangeTypeModify {
			continue
		}
		if change.ProductID == nil || *change.ProductID != productID {
			continue
		}
		if latest == nil ||
			change.CreatedAt.After(latest.CreatedAt) ||
			(change.CreatedAt.Equal(latest.CreatedAt) && change.ID > latest.ID) {
			latest = change
		}
	}
	return latest
}
