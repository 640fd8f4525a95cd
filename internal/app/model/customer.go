package model

import (
	"time"

	"gorm.io/gorm"
)

type BillingMethod string // 수금 방식 코드

const (
	BillingMethodCollection BillingMethod = "collection" // 방문 수금
	BillingMethodTransfer   BillingMethod = "transfer"   // 계좌 이체
)

type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 고객 ID
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`     // 고객명
	Address   string         `gorm:"type:text" json:"address"`                   // 배달 주소
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`              // 연락처
	CourseID  uint           `gorm:"not null;index" json:"course_id"`            // 배달 코스 ID
	Position  int            `gorm:"default:0" json:"position"`                  // 코스 내 배달 순서
	CreatedAt time.Time      `json:"created_at"`                                 // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"`                                 // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 삭제 시각(소프트 삭제)

	Course   Course            `gorm:"foreignKey:CourseID" json:"course,omitempty"`      // 코스 정보
	Settings *CustomerSettings `gorm:"foreignKey:CustomerID" json:"settings,omitempty"`  // 청구 설정
}

func (Customer) TableName() string {
	return "customers"
}

type CustomerSettings struct {
	ID             uint          `gorm:"primarykey" json:"id"`                                        // 설정 ID
	CustomerID     uint          `gorm:"not null;uniqueIndex" json:"customer_id"`                     // 고객 ID
	BillingMethod  BillingMethod `gorm:"type:varchar(20);default:'collection'" json:"billing_method"` // 수금 방식
	RoundingEnabled *bool        `json:"rounding_enabled"`                                            // 10원 단위 절사 여부 (nil = 기본값 true)
	BankName       string        `gorm:"type:varchar(50)" json:"bank_name,omitempty"`                 // 은행명
	BranchName     string        `gorm:"type:varchar(50)" json:"branch_name,omitempty"`               // 지점명
	AccountNumber  string        `gorm:"type:varchar(30)" json:"account_number,omitempty"`            // 계좌번호
	AccountHolder  string        `gorm:"type:varchar(50)" json:"account_holder,omitempty"`            // 예금주
	CreatedAt      time.Time     `json:"created_at"`                                                  // 생성 시각
	UpdatedAt      time.Time     `json:"updated_at"`                                                  // 수정 시각
}

func (CustomerSettings) TableName() string {
	return "customer_settings"
}

// DefaultCustomerSettings 설정 레코드가 없는 고객에게 적용되는 기본값
func DefaultCustomerSettings(customerID uint) *CustomerSettings {
	enabled := true
	return &CustomerSettings{
		CustomerID:      customerID,
		BillingMethod:   BillingMethodCollection,
		RoundingEnabled: &enabled,
	}
}

// Rounding 절사 여부 (미지정 시 true)
func (s *CustomerSettings) Rounding() bool {
	if s == nil || s.RoundingEnabled == nil {
		return true
	}
	return *s.RoundingEnabled
}
