package model

import (
	"time"

	"gorm.io/gorm"
)

type OperatorRole string // 운영자 권한 코드

const (
	RoleAdmin OperatorRole = "admin" // 관리자
	RoleStaff OperatorRole = "staff" // 배달/수금 담당
)

// Operator 운영 콘솔 계정
type Operator struct {
	ID           uint           `gorm:"primarykey" json:"id"`                              // 운영자 ID
	Email        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"` // 이메일
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`               // 비밀번호 해시
	Name         string         `gorm:"type:varchar(50);not null" json:"name"`             // 이름
	Role         OperatorRole   `gorm:"type:varchar(20);default:'staff'" json:"role"`      // 권한
	CreatedAt    time.Time      `json:"created_at"`                                        // 생성 시각
	UpdatedAt    time.Time      `json:"updated_at"`                                        // 수정 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                    // 삭제 시각(소프트 삭제)
}

func (Operator) TableName() string {
	return "operators"
}
