package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"gorm.io/gorm"
)

// BillingSummary 월 청구 집계 (확정 전 미리보기 겸용)
type BillingSummary struct {
	CustomerID      uint    `json:"customer_id"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	RawTotal        float64 `json:"raw_total"`        // 라인 금액 합계
	RoundedBase     float64 `json:"rounded_base"`     // 절사·하한 적용 기준액
	RoundingApplied bool    `json:"rounding_applied"` // 절사 여부 (고객 설정)
	PriorAmount     float64 `json:"prior_amount"`     // 전월 확정액 (미확정 시 전월 기준액 재계산)
	Payments        float64 `json:"payments"`         // 당월 입금 합계
	Carryover       float64 `json:"carryover"`        // 이월 = 전월 확정액 − 당월 입금
	FinalAmount     float64 `json:"final_amount"`     // 기준액 + 이월
	Confirmed       bool    `json:"confirmed"`        // 이미 확정된 월인지
}

// BatchPaymentEntry 일괄 입금 등록 1건
type BatchPaymentEntry struct {
	CustomerID uint                `json:"customer_id" binding:"required"`
	Amount     float64             `json:"amount" binding:"required"`
	Method     model.PaymentMethod `json:"method"`
	Note       string              `json:"note"`
}

// BatchPaymentFailure 일괄 입금 실패 1건
type BatchPaymentFailure struct {
	CustomerID uint   `json:"customer_id"`
	Reason     string `json:"reason"`
}

// BatchPaymentResult 일괄 입금 결과. 실패가 있어도 호출 자체는 성공이다.
type BatchPaymentResult struct {
	Succeeded int                   `json:"succeeded"`
	Failures  []BatchPaymentFailure `json:"failures"`
}

// BillingService 외상매출 원장. 월 확정/해제, 이월 계산, 입금 기록을 담당한다.
//
// 이월은 「당월에 받은 입금을 전월 확정 잔액에서 차감」하는 정책이다.
// 전월 입금을 전월 청구에서 빼는 것이 아니라는 점이 의도된 동작이므로
// 수정하지 말 것.
type BillingService interface {
	// Summary 쓰기 없이 확정액과 동일한 계산을 돌려준다
	Summary(customerID uint, year, month int) (*BillingSummary, error)
	// Confirm 청구 확정. 동일 입력이면 몇 번을 불러도 같은 금액으로 덮어쓴다.
	Confirm(customerID uint, year, month int) (*model.Invoice, error)
	// Unconfirm 확정 해제 (월 잠금 해제)
	Unconfirm(customerID uint, year, month int) error

	RecordPayment(customerID uint, year, month int, amount float64, method model.PaymentMethod, note string) (*model.Payment, error)
	// CancelPayment 취소는 삭제가 아니라 음수 금액 추가
	CancelPayment(paymentID uint) (*model.Payment, error)
	ListPayments(customerID uint, year, month int) ([]model.Payment, error)
	// RegisterPaymentsBatch 「전월 확정 여부」를 선두에 한 번 스냅샷한 뒤
	// 각 건을 독립적으로 적용한다. 건끼리는 서로를 막지 않는다.
	RegisterPaymentsBatch(year, month int, entries []BatchPaymentEntry) (*BatchPaymentResult, error)
}

type billingService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	calendar     CalendarService
	monthLock    MonthLockService
}

func NewBillingService(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	calendar CalendarService,
	monthLock MonthLockService,
) BillingService {
	return &billingService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		calendar:     calendar,
		monthLock:    monthLock,
	}
}

func (s *billingService) Summary(customerID uint, year, month int) (*BillingSummary, error) {
	return s.compute(customerID, year, month)
}

func (s *billingService) Confirm(customerID uint, year, month int) (*model.Invoice, error) {
	summary, err := s.compute(customerID, year, month)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		CustomerID:      customerID,
		Year:            year,
		Month:           month,
		Amount:          summary.FinalAmount,
		RoundingApplied: summary.RoundingApplied,
		ConfirmedAt:     time.Now(),
	}
	if err := s.invoiceRepo.Upsert(invoice); err != nil {
		return nil, err
	}

	stored, err := s.invoiceRepo.FindByCustomerAndMonth(customerID, year, month)
	if err != nil {
		return nil, err
	}

	logger.Info("Invoice confirmed", map[string]interface{}{
		"customer_id": customerID,
		"year":        year,
		"month":       month,
		"amount":      stored.Amount,
	})
	return stored, nil
}

func (s *billingService) Unconfirm(customerID uint, year, month int) error {
	if !util.ValidMonth(month) {
		return ErrInvalidMonth
	}

	affected, err := s.invoiceRepo.Delete(customerID, year, month)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}

	logger.Info("Invoice unconfirmed", map[string]interface{}{
		"customer_id": customerID,
		"year":        year,
		"month":       month,
	})
	return nil
}

// compute 확정과 미리보기가 완전히 같은 식을 쓰도록 한 곳에 모은다
func (s *billingService) compute(customerID uint, year, month int) (*BillingSummary, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	settings, err := s.customerRepo.GetSettings(customerID)
	if err != nil {
		return nil, err
	}
	rounding := settings.Rounding()

	days, err := s.calendar.MonthlyCalendar(customerID, year, month)
	if err != nil {
		return nil, err
	}
	rawTotal := MonthlyRawTotal(days)
	base := RoundedBase(rawTotal, rounding)

	prior, err := s.priorAmount(customerID, year, month)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.SumByCustomerAndMonth(customerID, year, month)
	if err != nil {
		return nil, err
	}

	carryover := prior - payments

	confirmed, err := s.monthLock.IsConfirmed(customerID, year, month)
	if err != nil {
		return nil, err
	}

	return &BillingSummary{
		CustomerID:      customerID,
		Year:            year,
		Month:           month,
		RawTotal:        rawTotal,
		RoundedBase:     base,
		RoundingApplied: rounding,
		PriorAmount:     prior,
		Payments:        payments,
		Carryover:       carryover,
		FinalAmount:     base + carryover,
		Confirmed:       confirmed,
	}, nil
}

// priorAmount 전월 확정액. 확정 청구가 없으면 전월 기준액을 그 자리에서
// 재계산한다(이월의 이월까지 재귀하지는 않는다).
func (s *billingService) priorAmount(customerID uint, year, month int) (float64, error) {
	prevYear, prevMonth := util.PrevMonth(year, month)

	invoice, err := s.invoiceRepo.FindByCustomerAndMonth(customerID, prevYear, prevMonth)
	if err == nil {
		return invoice.Amount, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	settings, err := s.customerRepo.GetSettings(customerID)
	if err != nil {
		return 0, err
	}

	days, err := s.calendar.MonthlyCalendar(customerID, prevYear, prevMonth)
	if err != nil {
		return 0, err
	}
	return RoundedBase(MonthlyRawTotal(days), settings.Rounding()), nil
}

func (s *billingService) RecordPayment(customerID uint, year, month int, amount float64, method model.PaymentMethod, note string) (*model.Payment, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if method == "" {
		method = model.PaymentMethodCollection
	}

	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	payment := &model.Payment{
		CustomerID: customerID,
		Year:       year,
		Month:      month,
		Amount:     amount,
		Method:     method,
		Note:       note,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", map[string]interface{}{
		"payment_id":  payment.ID,
		"customer_id": customerID,
		"year":        year,
		"month":       month,
		"amount":      amount,
	})
	return payment, nil
}

func (s *billingService) CancelPayment(paymentID uint) (*model.Payment, error) {
	original, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	reversal := &model.Payment{
		CustomerID: original.CustomerID,
		Year:       original.Year,
		Month:      original.Month,
		Amount:     -original.Amount,
		Method:     original.Method,
		Note:       fmt.Sprintf("입금 취소 (#%d)", original.ID),
	}
	if err := s.paymentRepo.Create(reversal); err != nil {
		return nil, err
	}

	logger.Info("Payment cancelled", map[string]interface{}{
		"payment_id":  original.ID,
		"reversal_id": reversal.ID,
		"customer_id": original.CustomerID,
		"amount":      reversal.Amount,
	})
	return reversal, nil
}

func (s *billingService) ListPayments(customerID uint, year, month int) ([]model.Payment, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	return s.paymentRepo.FindByCustomerAndMonth(customerID, year, month)
}

func (s *billingService) RegisterPaymentsBatch(year, month int, entries []BatchPaymentEntry) (*BatchPaymentResult, error) {
	if !util.ValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	prevYear, prevMonth := util.PrevMonth(year, month)

	// 전월 확정 여부는 건 적용 전에 한 번만 평가한다
	confirmedSnapshot := make(map[uint]bool)
	for _, entry := range entries {
		if _, seen := confirmedSnapshot[entry.CustomerID]; seen {
			continue
		}
		confirmed, err := s.monthLock.IsConfirmed(entry.CustomerID, prevYear, prevMonth)
		if err != nil {
			return nil, err
		}
		confirmedSnapshot[entry.CustomerID] = confirmed
	}

	result := &BatchPaymentResult{Failures: []BatchPaymentFailure{}}
	for _, entry := range entries {
		if !confirmedSnapshot[entry.CustomerID] {
			result.Failures = append(result.Failures, BatchPaymentFailure{
				CustomerID: entry.CustomerID,
				Reason:     fmt.Sprintf("전월(%04d-%02d)이 미확정입니다", prevYear, prevMonth),
			})
			continue
		}
		if entry.Amount == 0 {
			result.Failures = append(result.Failures, BatchPaymentFailure{
				CustomerID: entry.CustomerID,
				Reason:     "금액이 0입니다",
			})
			continue
		}

		method := entry.Method
		if method == "" {
			method = model.PaymentMethodCollection
		}
		payment := &model.Payment{
			CustomerID: entry.CustomerID,
			Year:       year,
			Month:      month,
			Amount:     entry.Amount,
			Method:     method,
			Note:       entry.Note,
		}
		if err := s.paymentRepo.Create(payment); err != nil {
			result.Failures = append(result.Failures, BatchPaymentFailure{
				CustomerID: entry.CustomerID,
				Reason:     err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	logger.Info("Batch payment registration finished", map[string]interface{}{
		"year":      year,
		"month":     month,
		"succeeded": result.Succeeded,
		"failed":    len(result.Failures),
	})
	return result, nil
}
