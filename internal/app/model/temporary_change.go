package model

import "time"

type ChangeType string // 임시 변경 유형 코드

const (
	ChangeTypeSkip   ChangeType = "skip"   // 해당일 배달 중지
	ChangeTypeModify ChangeType = "modify" // 해당일 수량/단가 변경
	ChangeTypeAdd    ChangeType = "add"    // 해당일 추가 배달
)

// TemporaryChange 특정 일자 한정 배달 변경.
// skip은 modify보다 우선하며, add는 skip/modify와 무관하게 항상 반영된다.
type TemporaryChange struct {
	ID         uint       `gorm:"primarykey" json:"id"`                       // 변경 ID
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`          // 고객 ID
	Date       time.Time  `gorm:"not null;index" json:"date"`                 // 대상 일자
	Type       ChangeType `gorm:"type:varchar(10);not null" json:"type"`      // 변경 유형
	ProductID  *uint      `gorm:"index" json:"product_id"`                    // 상품 ID (skip은 nil 허용 = 전체 중지)
	Quantity   int        `gorm:"not null;default:0" json:"quantity"`         // 수량
	UnitPrice  *float64   `json:"unit_price"`                                 // 단가 (nil = 패턴 단가 유지)
	Reason     string     `gorm:"type:varchar(255)" json:"reason"`            // 사유
	CreatedAt  time.Time  `json:"created_at"`                                 // 생성 시각

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`                // 고객 정보
	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 상품 정보
}

func (TemporaryChange) TableName() string {
	return "temporary_changes"
}

// AppliesTo 해당 상품 라인에 적용되는 변경인지 (전체 중지 포함)
func (c *TemporaryChange) AppliesTo(productID uint) bool {
	return c.ProductID == nil || *c.ProductID == productID
}
