package service

import (
	"testing"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCalendarServiceTest(t *testing.T) (CalendarService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(testDB)
	patternRepo := repository.NewPatternRepository(testDB)
	changeRepo := repository.NewTemporaryChangeRepository(testDB)
	return NewCalendarService(customerRepo, patternRepo, changeRepo), testDB
}

func seedCustomer(t *testing.T, testDB *gorm.DB, name string) *model.Customer {
	course := &model.Course{Name: "1코스"}
	require.NoError(t, testDB.Create(course).Error)

	customer := &model.Customer{Name: name, Address: "서울시 어딘가", CourseID: course.ID, Position: 1}
	require.NoError(t, testDB.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, unitPrice float64) *model.Product {
	product := &model.Product{Name: name, UnitPrice: unitPrice}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestResolveEffectivePattern(t *testing.T) {
	end := util.Date(2025, 6, 30)
	patterns := []model.DeliveryPattern{
		{ID: 1, StartDate: util.Date(2025, 1, 1), EndDate: &end, Active: true},
		{ID: 2, StartDate: util.Date(2025, 7, 1), Active: true},
		{ID: 3, StartDate: util.Date(2025, 9, 1), Active: true},
	}

	tests := []struct {
		name   string
		date   time.Time
		wantID uint
	}{
		{
			name:   "Before any start date",
			date:   util.Date(2024, 12, 31),
			wantID: 0,
		},
		{
			name:   "Only the first pattern valid",
			date:   util.Date(2025, 3, 15),
			wantID: 1,
		},
		{
			name:   "Future pattern not picked before its start",
			date:   util.Date(2025, 8, 15),
			wantID: 2,
		},
		{
			name:   "Latest start date wins once reached",
			date:   util.Date(2025, 9, 1),
			wantID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEffectivePattern(patterns, tt.date)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestResolveEffectivePattern_InactiveExcluded(t *testing.T) {
	patterns := []model.DeliveryPattern{
		{ID: 1, StartDate: util.Date(2025, 1, 1), Active: true},
		{ID: 2, StartDate: util.Date(2025, 6, 1), Active: false},
	}

	got := ResolveEffectivePattern(patterns, util.Date(2025, 7, 1))
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}

func TestRoundedBase(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		rounding bool
		want     float64
	}{
		{name: "Rounds down to 10", raw: 1234, rounding: true, want: 1230},
		{name: "No rounding keeps raw", raw: 1234, rounding: false, want: 1234},
		{name: "Already round", raw: 1230, rounding: true, want: 1230},
		{name: "Negative clamps to zero", raw: -50, rounding: true, want: 0},
		{name: "Negative clamps without rounding", raw: -50, rounding: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundedBase(tt.raw, tt.rounding))
		})
	}
}

func TestCalendarService_MonthlyCalendar(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "우유 900ml", 150)

	// 월·수 각 2개
	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Weekdays:   "1,3",
		Quantity:   2,
		UnitPrice:  150,
		StartDate:  util.Date(2025, 7, 1),
		Active:     true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	days, err := calendarService.MonthlyCalendar(customer.ID, 2025, 7)
	require.NoError(t, err)
	assert.Len(t, days, 31)

	// 2025-07-01은 화요일: 배달 없음
	assert.Empty(t, days[0].Items)
	assert.Equal(t, 0.0, days[0].Total)

	// 2025-07-02는 수요일
	wed := days[1]
	require.Len(t, wed.Items, 1)
	assert.Equal(t, product.ID, wed.Items[0].ProductID)
	assert.Equal(t, "우유 900ml", wed.Items[0].ProductName)
	assert.Equal(t, 2, wed.Items[0].Quantity)
	assert.Equal(t, 300.0, wed.Items[0].Amount)
	assert.Equal(t, 300.0, wed.Total)

	// 7월의 월·수는 9일: 합계 9 * 300
	assert.Equal(t, 2700.0, MonthlyRawTotal(days))
}

func TestCalendarService_MonthlyCalendar_DailyQuantities(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "요구르트", 100)

	// 요일별 수량 맵이 Weekdays/Quantity보다 우선한다
	pattern := &model.DeliveryPattern{
		CustomerID:      customer.ID,
		ProductID:       product.ID,
		Weekdays:        "1,3",
		DailyQuantities: `{"1":3,"3":1}`,
		Quantity:        5,
		UnitPrice:       100,
		StartDate:       util.Date(2025, 7, 1),
		Active:          true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	// 2025-07-07 월요일
	mon, err := calendarService.DayCalendar(customer.ID, util.Date(2025, 7, 7))
	require.NoError(t, err)
	require.Len(t, mon.Items, 1)
	assert.Equal(t, 3, mon.Items[0].Quantity)

	// 2025-07-02 수요일
	wed, err := calendarService.DayCalendar(customer.ID, util.Date(2025, 7, 2))
	require.NoError(t, err)
	require.Len(t, wed.Items, 1)
	assert.Equal(t, 1, wed.Items[0].Quantity)
}

func TestCalendarService_MonthlyCalendar_Validation(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)
	customer := seedCustomer(t, testDB, "홍길동")

	_, err := calendarService.MonthlyCalendar(customer.ID, 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = calendarService.MonthlyCalendar(9999, 2025, 7)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCalendarService_DayCalendar_SkipOverlay(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	milk := seedProduct(t, testDB, "우유", 150)
	yogurt := seedProduct(t, testDB, "요구르트", 100)

	for _, p := range []*model.DeliveryPattern{
		{CustomerID: customer.ID, ProductID: milk.ID, Weekdays: "3", Quantity: 2, UnitPrice: 150, StartDate: util.Date(2025, 7, 1), Active: true},
		{CustomerID: customer.ID, ProductID: yogurt.ID, Weekdays: "3", Quantity: 1, UnitPrice: 100, StartDate: util.Date(2025, 7, 1), Active: true},
	} {
		require.NoError(t, testDB.Create(p).Error)
	}

	date := util.Date(2025, 7, 2)

	// 상품 한정 skip: 우유만 빠진다
	skip := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeSkip, ProductID: &milk.ID}
	require.NoError(t, testDB.Create(skip).Error)

	day, err := calendarService.DayCalendar(customer.ID, date)
	require.NoError(t, err)
	require.Len(t, day.Items, 1)
	assert.Equal(t, yogurt.ID, day.Items[0].ProductID)

	// 전체 skip: 모든 상품이 빠진다
	blanket := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeSkip}
	require.NoError(t, testDB.Create(blanket).Error)

	day, err = calendarService.DayCalendar(customer.ID, date)
	require.NoError(t, err)
	assert.Empty(t, day.Items)
	assert.Equal(t, 0.0, day.Total)
}

func TestCalendarService_DayCalendar_ModifyOverlay(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	product := seedProduct(t, testDB, "우유", 150)

	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 2, UnitPrice: 150,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	date := util.Date(2025, 7, 2)
	price := 120.0

	first := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeModify, ProductID: &product.ID, Quantity: 5}
	require.NoError(t, testDB.Create(first).Error)
	second := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeModify, ProductID: &product.ID, Quantity: 3, UnitPrice: &price}
	require.NoError(t, testDB.Create(second).Error)

	// 같은 슬롯의 modify가 여럿이면 가장 최근 행이 이긴다
	day, err := calendarService.DayCalendar(customer.ID, date)
	require.NoError(t, err)
	require.Len(t, day.Items, 1)
	assert.Equal(t, 3, day.Items[0].Quantity)
	assert.Equal(t, 120.0, day.Items[0].UnitPrice)
	assert.Equal(t, 360.0, day.Total)
}

func TestCalendarService_DayCalendar_AddOverlay(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	customer := seedCustomer(t, testDB, "홍길동")
	milk := seedProduct(t, testDB, "우유", 150)
	cheese := seedProduct(t, testDB, "치즈", 500)

	pattern := &model.DeliveryPattern{
		CustomerID: customer.ID, ProductID: milk.ID,
		Weekdays: "3", Quantity: 2, UnitPrice: 150,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	date := util.Date(2025, 7, 2)

	// 전체 skip이 있어도 add 행은 눌리지 않는다
	blanket := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeSkip}
	require.NoError(t, testDB.Create(blanket).Error)
	add := &model.TemporaryChange{CustomerID: customer.ID, Date: date, Type: model.ChangeTypeAdd, ProductID: &cheese.ID, Quantity: 2}
	require.NoError(t, testDB.Create(add).Error)

	day, err := calendarService.DayCalendar(customer.ID, date)
	require.NoError(t, err)
	require.Len(t, day.Items, 1)
	assert.Equal(t, cheese.ID, day.Items[0].ProductID)
	assert.True(t, day.Items[0].Added)
	// 단가 미지정이면 상품 기준 단가를 쓴다
	assert.Equal(t, 500.0, day.Items[0].UnitPrice)
	assert.Equal(t, 1000.0, day.Total)
}

func TestCalendarService_RouteSheet(t *testing.T) {
	calendarService, testDB := setupCalendarServiceTest(t)

	course := &model.Course{Name: "2코스"}
	require.NoError(t, testDB.Create(course).Error)

	delivered := &model.Customer{Name: "배달 고객", CourseID: course.ID, Position: 2}
	require.NoError(t, testDB.Create(delivered).Error)
	idle := &model.Customer{Name: "휴지 고객", CourseID: course.ID, Position: 1}
	require.NoError(t, testDB.Create(idle).Error)

	product := seedProduct(t, testDB, "우유", 150)
	pattern := &model.DeliveryPattern{
		CustomerID: delivered.ID, ProductID: product.ID,
		Weekdays: "3", Quantity: 1, UnitPrice: 150,
		StartDate: util.Date(2025, 7, 1), Active: true,
	}
	require.NoError(t, testDB.Create(pattern).Error)

	deliveries, err := calendarService.RouteSheet(course.ID, util.Date(2025, 7, 2))
	require.NoError(t, err)

	// 배달이 없는 고객은 시트에서 제외된다
	require.Len(t, deliveries, 1)
	assert.Equal(t, delivered.ID, deliveries[0].CustomerID)
	assert.Equal(t, 2, deliveries[0].Position)
	require.Len(t, deliveries[0].Items, 1)
}
