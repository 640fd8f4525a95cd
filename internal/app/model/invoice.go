package model

import "time"

// Invoice 확정된 월 청구액.
// (customer, year, month)당 1건이며 존재 자체가 해당 월의 잠금을 의미한다.
// 재확정 시 재계산 후 덮어쓴다.
type Invoice struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                                     // 청구 ID
	CustomerID      uint      `gorm:"not null;uniqueIndex:idx_invoices_customer_month" json:"customer_id"`      // 고객 ID
	Year            int       `gorm:"not null;uniqueIndex:idx_invoices_customer_month" json:"year"`             // 청구 연도
	Month           int       `gorm:"not null;uniqueIndex:idx_invoices_customer_month" json:"month"`            // 청구 월
	Amount          float64   `gorm:"not null" json:"amount"`                                                   // 확정 금액 (이월 포함)
	RoundingApplied bool      `gorm:"not null;default:true" json:"rounding_applied"`                            // 절사 적용 여부 스냅샷
	ConfirmedAt     time.Time `gorm:"not null" json:"confirmed_at"`                                             // 확정 시각

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"` // 고객 정보
}

func (Invoice) TableName() string {
	return "invoices"
}

type PaymentMethod string // 입금 방식 코드

const (
	PaymentMethodCollection PaymentMethod = "collection" // 방문 수금
	PaymentMethodTransfer   PaymentMethod = "transfer"   // 계좌 이체
	PaymentMethodCash       PaymentMethod = "cash"       // 현금
)

// Payment 입금 기록. 추가 전용이며 취소는 음수 금액을 덧붙인다.
type Payment struct {
	ID         uint          `gorm:"primarykey" json:"id"`                    // 입금 ID
	CustomerID uint          `gorm:"not null;index" json:"customer_id"`       // 고객 ID
	Year       int           `gorm:"not null" json:"year"`                    // 귀속 연도
	Month      int           `gorm:"not null" json:"month"`                   // 귀속 월
	Amount     float64       `gorm:"not null" json:"amount"`                  // 금액 (부호 포함)
	Method     PaymentMethod `gorm:"type:varchar(20);not null" json:"method"` // 입금 방식
	Note       string        `gorm:"type:varchar(255)" json:"note"`           // 비고
	CreatedAt  time.Time     `json:"created_at"`                              // 기록 시각

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"` // 고객 정보
}

func (Payment) TableName() string {
	return "payments"
}
