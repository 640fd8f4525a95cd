package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
)

// DeliveryPattern 정기 배달 규칙.
// 과거 패턴은 삭제하지 않고 EndDate로만 마감한다 (청구 이력 보존).
type DeliveryPattern struct {
	ID              uint       `gorm:"primarykey" json:"id"`                      // 패턴 ID
	CustomerID      uint       `gorm:"not null;index" json:"customer_id"`         // 고객 ID
	ProductID       uint       `gorm:"not null;index" json:"product_id"`          // 상품 ID
	Weekdays        string     `gorm:"type:varchar(20)" json:"weekdays"`          // 배달 요일 목록 "1,3" (0=일 ... 6=토)
	DailyQuantities string     `gorm:"type:text" json:"daily_quantities"`         // 요일별 수량 JSON {"1":2,"3":1} — 지정 시 Weekdays/Quantity보다 우선
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`        // 고정 수량
	UnitPrice       float64    `gorm:"not null" json:"unit_price"`                // 단가
	StartDate       time.Time  `gorm:"not null;index" json:"start_date"`          // 적용 시작일
	EndDate         *time.Time `gorm:"index" json:"end_date"`                     // 적용 종료일 (nil = 무기한)
	Active          bool       `gorm:"not null;default:true" json:"active"`       // 활성 여부
	CreatedAt       time.Time  `json:"created_at"`                                // 생성 시각
	UpdatedAt       time.Time  `json:"updated_at"`                                // 수정 시각

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`                // 고객 정보
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 상품 정보
}

func (DeliveryPattern) TableName() string {
	return "delivery_patterns"
}

// ValidOn 해당 일자에 유효한 패턴인지 (시작 전/종료 후는 무효)
func (p *DeliveryPattern) ValidOn(date time.Time) bool {
	if !p.Active {
		return false
	}
	d := util.DateOnly(date)
	if d.Before(util.DateOnly(p.StartDate)) {
		return false
	}
	if p.EndDate != nil && d.After(util.DateOnly(*p.EndDate)) {
		return false
	}
	return true
}

// WeekdaySet Weekdays 문자열을 파싱한 요일 집합
func (p *DeliveryPattern) WeekdaySet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, part := range strings.Split(p.Weekdays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		set[time.Weekday(n)] = true
	}
	return set
}

// DailyQuantityMap 요일별 수량 JSON 파싱 (미설정 시 nil)
func (p *DeliveryPattern) DailyQuantityMap() map[time.Weekday]int {
	if strings.TrimSpace(p.DailyQuantities) == "" {
		return nil
	}
	raw := make(map[string]int)
	if err := json.Unmarshal([]byte(p.DailyQuantities), &raw); err != nil {
		return nil
	}
	m := make(map[time.Weekday]int, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		m[time.Weekday(n)] = v
	}
	return m
}

// QuantityOn 해당 일자의 배달 수량.
// 요일별 수량 맵이 있으면 맵 기준(없는 요일은 0), 없으면 요일 집합 + 고정 수량.
func (p *DeliveryPattern) QuantityOn(date time.Time) int {
	if !p.ValidOn(date) {
		return 0
	}
	wd := date.Weekday()
	if m := p.DailyQuantityMap(); m != nil {
		return m[wd]
	}
	if p.WeekdaySet()[wd] {
		return p.Quantity
	}
	return 0
}
