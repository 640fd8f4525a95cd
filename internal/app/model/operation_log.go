package model

import (
	"encoding/json"
	"time"
)

type OperationType string // 일괄 작업 유형 코드

const (
	OperationHolidaySkip OperationType = "holiday_skip" // 휴배(건너뛰기) 일괄 등록
	OperationPriceChange OperationType = "price_change" // 단가 일괄 변경
)

// OperationLog 일괄 작업 감사 기록.
// 되돌리기에 필요한 데이터를 유형별 페이로드로 보관하며,
// 되돌린 뒤에도 기록은 삭제하지 않고 Reversed 표시만 남긴다.
type OperationLog struct {
	ID           uint          `gorm:"primarykey" json:"id"`                       // 기록 ID
	Type         OperationType `gorm:"type:varchar(30);not null;index" json:"type"` // 작업 유형
	Description  string        `gorm:"type:varchar(255)" json:"description"`       // 작업 설명
	Params       string        `gorm:"type:text" json:"params"`                    // 요청 파라미터 JSON
	ReversalData string        `gorm:"type:text" json:"-"`                         // 되돌리기 페이로드 JSON (유형별 구조)
	Reversed     bool          `gorm:"not null;default:false" json:"reversed"`     // 되돌림 여부
	ReversedAt   *time.Time    `json:"reversed_at,omitempty"`                      // 되돌린 시각
	CreatedAt    time.Time     `json:"created_at"`                                 // 작업 시각
}

func (OperationLog) TableName() string {
	return "operation_logs"
}

// HolidaySkipReversal 휴배 일괄 등록의 되돌리기 페이로드
type HolidaySkipReversal struct {
	OperationID string `json:"operation_id"` // 사유 태그에 포함된 작업 식별자
	ChangeIDs   []uint `json:"change_ids"`   // 생성한 임시 변경 ID 목록
}

// PriceChangeEntry 단가 변경 1건의 되돌리기 정보
type PriceChangeEntry struct {
	CustomerID      uint       `json:"customer_id"`       // 고객 ID
	OldPatternID    uint       `json:"old_pattern_id"`    // 마감 처리한 기존 패턴 ID
	PreviousEndDate *time.Time `json:"previous_end_date"` // 기존 패턴의 원래 종료일 (nil 가능)
	NewPatternID    uint       `json:"new_pattern_id"`    // 새로 삽입한 패턴 ID
}

// PriceChangeReversal 단가 일괄 변경의 되돌리기 페이로드
type PriceChangeReversal struct {
	Entries []PriceChangeEntry `json:"entries"`
}

// EncodeReversal 되돌리기 페이로드를 JSON으로 기록
func (l *OperationLog) EncodeReversal(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	l.ReversalData = string(data)
	return nil
}

// HolidaySkipPayload 휴배 페이로드 디코딩 (Type이 holiday_skip일 때만 유효)
func (l *OperationLog) HolidaySkipPayload() (*HolidaySkipReversal, error) {
	var payload HolidaySkipReversal
	if err := json.Unmarshal([]byte(l.ReversalData), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PriceChangePayload 단가 변경 페이로드 디코딩 (Type이 price_change일 때만 유효)
func (l *OperationLog) PriceChangePayload() (*PriceChangeReversal, error) {
	var payload PriceChangeReversal
	if err := json.Unmarshal([]byte(l.ReversalData), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
