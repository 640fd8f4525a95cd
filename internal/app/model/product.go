package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`                  // 상품 ID
	Name      string         `gorm:"type:varchar(100);not null" json:"name"` // 상품명
	UnitPrice float64        `gorm:"not null" json:"unit_price"`            // 기준 단가
	Unit      string         `gorm:"type:varchar(10);default:'개'" json:"unit"` // 단위
	CreatedAt time.Time      `json:"created_at"`                            // 생성 시각
	UpdatedAt time.Time      `json:"updated_at"`                            // 수정 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                        // 삭제 시각(소프트 삭제)
}

func (Product) TableName() string {
	return "products"
}
