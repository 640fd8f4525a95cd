package service

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrPatternNotFound   = errors.New("delivery pattern not found")
	ErrChangeNotFound    = errors.New("temporary change not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrOperationNotFound = errors.New("operation log not found")

	ErrOperationReversed  = errors.New("operation already reversed")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidAmount      = errors.New("amount must be non-zero")
	ErrInvalidUnitPrice   = errors.New("unit price must not be negative")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrInvalidChangeType  = errors.New("invalid temporary change type")
	ErrProductRequired    = errors.New("product is required for this change type")
	ErrInvalidSchedule    = errors.New("pattern needs weekdays or daily quantities")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOperatorNotFound   = errors.New("operator not found")
)

// MonthLockedError 확정된 월에 대한 변경 시도.
// 호출자가 어느 월을 먼저 확정 해제해야 하는지 알 수 있도록 연/월을 담는다.
type MonthLockedError struct {
	CustomerID uint
	Year       int
	Month      int
}

func (e *MonthLockedError) Error() string {
	return fmt.Sprintf("month %04d-%02d is confirmed for customer %d and cannot be modified",
		e.Year, e.Month, e.CustomerID)
}

// BlockedCustomer 단가 일괄 변경 사전 점검에서 걸린 고객
type BlockedCustomer struct {
	CustomerID uint `json:"customer_id"`
	PatternID  uint `json:"pattern_id"`
	Year       int  `json:"year"`
	Month      int  `json:"month"`
}

// BatchBlockedError 단가 일괄 변경 전체 거부.
// 한 건이라도 걸리면 어떤 변경도 수행하지 않은 상태로 반환된다.
type BatchBlockedError struct {
	Blocked []BlockedCustomer
}

func (e *BatchBlockedError) Error() string {
	return fmt.Sprintf("price change blocked: %d customer(s) have a confirmed month at the effective start",
		len(e.Blocked))
}
