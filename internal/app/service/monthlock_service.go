package service

import (
	"errors"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"gorm.io/gorm"
)

// MonthLockService 월 잠금 정책의 단일 창구.
// 패턴/임시 변경/입금의 모든 변경 경로가 이 서비스를 거쳐 같은 정책을 따른다.
// 확정 청구(Invoice) 행의 존재 자체가 잠금이다.
type MonthLockService interface {
	// EnsureUnlocked 해당 일자가 속한 월이 확정돼 있으면 MonthLockedError
	EnsureUnlocked(customerID uint, date time.Time) error
	// EnsureMonthUnlocked 연/월 직접 지정판
	EnsureMonthUnlocked(customerID uint, year, month int) error
	// EnsureStartAllowed 새 패턴 시작월이 이미 확정된 월을 거슬러 덮지 않는지
	EnsureStartAllowed(customerID uint, start time.Time) error
	// EnsureEndDateChangeAllowed 종료일 단축/연장 규칙 검사
	EnsureEndDateChangeAllowed(pattern *model.DeliveryPattern, newEnd *time.Time) error
	// IsConfirmed 조회 전용
	IsConfirmed(customerID uint, year, month int) (bool, error)
	// LatestConfirmed 가장 최근 확정 청구 (없으면 nil)
	LatestConfirmed(customerID uint) (*model.Invoice, error)
}

type monthLockService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewMonthLockService(invoiceRepo repository.InvoiceRepository) MonthLockService {
	return &monthLockService{invoiceRepo: invoiceRepo}
}

func (s *monthLockService) IsConfirmed(customerID uint, year, month int) (bool, error) {
	return s.invoiceRepo.Exists(customerID, year, month)
}

func (s *monthLockService) LatestConfirmed(customerID uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindLatestByCustomer(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return invoice, nil
}

func (s *monthLockService) EnsureUnlocked(customerID uint, date time.Time) error {
	return s.EnsureMonthUnlocked(customerID, date.Year(), int(date.Month()))
}

func (s *monthLockService) EnsureMonthUnlocked(customerID uint, year, month int) error {
	confirmed, err := s.IsConfirmed(customerID, year, month)
	if err != nil {
		return err
	}
	if confirmed {
		return &MonthLockedError{CustomerID: customerID, Year: year, Month: month}
	}
	return nil
}

func (s *monthLockService) EnsureStartAllowed(customerID uint, start time.Time) error {
	latest, err := s.LatestConfirmed(customerID)
	if err != nil {
		return err
	}
	if latest == nil {
		return nil
	}
	// 시작월이 확정 월 이하이면 확정된 기간의 내역을 바꾸게 된다
	if util.MonthIndexOf(start) <= util.MonthIndex(latest.Year, latest.Month) {
		return &MonthLockedError{CustomerID: customerID, Year: latest.Year, Month: latest.Month}
	}
	return nil
}

func (s *monthLockService) EnsureEndDateChangeAllowed(pattern *model.DeliveryPattern, newEnd *time.Time) error {
	oldEnd := pattern.EndDate

	// 종료일이 그대로면 덮는 기간도 그대로다. 검사 없이 통과시킨다.
	if oldEnd == nil && newEnd == nil {
		return nil
	}
	if oldEnd != nil && newEnd != nil && util.SameDay(*oldEnd, *newEnd) {
		return nil
	}

	if isShorten(oldEnd, newEnd) {
		// 단축: 새 종료월이 최근 확정 월보다 앞서면 확정 내역이 깎인다
		latest, err := s.LatestConfirmed(pattern.CustomerID)
		if err != nil {
			return err
		}
		if latest != nil && util.MonthIndexOf(*newEnd) < util.MonthIndex(latest.Year, latest.Month) {
			return &MonthLockedError{CustomerID: pattern.CustomerID, Year: latest.Year, Month: latest.Month}
		}
		return nil
	}

	// 연장: 새로 덮게 되는 월 중 확정된 월이 있으면 거부
	coveredFrom := util.DateOnly(pattern.StartDate)
	if oldEnd != nil {
		coveredFrom = util.DateOnly(*oldEnd).AddDate(0, 0, 1)
	}

	if newEnd == nil {
		// 무기한으로 여는 경우: 그 이후의 어떤 확정 월이든 걸린다
		latest, err := s.LatestConfirmed(pattern.CustomerID)
		if err != nil {
			return err
		}
		if latest != nil && util.MonthIndex(latest.Year, latest.Month) >= util.MonthIndexOf(coveredFrom) {
			return &MonthLockedError{CustomerID: pattern.CustomerID, Year: latest.Year, Month: latest.Month}
		}
		return nil
	}

	for idx := util.MonthIndexOf(coveredFrom); idx <= util.MonthIndexOf(*newEnd); idx++ {
		year, month := idx/12, idx%12+1
		confirmed, err := s.IsConfirmed(pattern.CustomerID, year, month)
		if err != nil {
			return err
		}
		if confirmed {
			return &MonthLockedError{CustomerID: pattern.CustomerID, Year: year, Month: month}
		}
	}
	return nil
}

// isShorten 종료일 변경이 단축인지. nil은 무기한이므로 nil→값 은 단축,
// 값→nil 은 연장으로 본다.
func isShorten(oldEnd, newEnd *time.Time) bool {
	if newEnd == nil {
		return false
	}
	if oldEnd == nil {
		return true
	}
	return newEnd.Before(*oldEnd)
}
