package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 코스 ID
	Name        string         `gorm:"type:varchar(50);not null" json:"name"`  // 코스명
	Description string         `gorm:"type:text" json:"description,omitempty"` // 설명
	CreatedAt   time.Time      `json:"created_at"`                             // 생성 시각
	UpdatedAt   time.Time      `json:"updated_at"`                             // 수정 시각
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 삭제 시각(소프트 삭제)
}

func (Course) TableName() string {
	return "courses"
}
