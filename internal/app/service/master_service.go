package service

import (
	"errors"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"gorm.io/gorm"
)

// UpdateSettingsInput 고객 청구 설정 변경 입력. nil 필드는 손대지 않는다.
type UpdateSettingsInput struct {
	BillingMethod   *model.BillingMethod `json:"billing_method"`
	RoundingEnabled *bool                `json:"rounding_enabled"`
	BankName        *string              `json:"bank_name"`
	BranchName      *string              `json:"branch_name"`
	AccountNumber   *string              `json:"account_number"`
	AccountHolder   *string              `json:"account_holder"`
}

// MasterService 고객/코스/상품 기준 정보 조회 창구
type MasterService interface {
	ListCourses() ([]model.Course, error)
	ListProducts() ([]model.Product, error)
	ListCustomers() ([]model.Customer, error)
	ListCustomersByCourse(courseID uint) ([]model.Customer, error)
	GetCustomer(id uint) (*model.Customer, error)
	GetCustomerSettings(customerID uint) (*model.CustomerSettings, error)
	UpdateCustomerSettings(customerID uint, input UpdateSettingsInput) (*model.CustomerSettings, error)
}

type masterService struct {
	customerRepo repository.CustomerRepository
	courseRepo   repository.CourseRepository
	productRepo  repository.ProductRepository
}

func NewMasterService(
	customerRepo repository.CustomerRepository,
	courseRepo repository.CourseRepository,
	productRepo repository.ProductRepository,
) MasterService {
	return &masterService{
		customerRepo: customerRepo,
		courseRepo:   courseRepo,
		productRepo:  productRepo,
	}
}

func (s *masterService) ListCourses() ([]model.Course, error) {
	return s.courseRepo.List()
}

func (s *masterService) ListProducts() ([]model.Product, error) {
	return s.productRepo.List()
}

func (s *masterService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.List()
}

func (s *masterService) ListCustomersByCourse(courseID uint) ([]model.Customer, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.customerRepo.ListByCourse(courseID)
}

func (s *masterService) GetCustomer(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *masterService) GetCustomerSettings(customerID uint) (*model.CustomerSettings, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.GetSettings(customerID)
}

func (s *masterService) UpdateCustomerSettings(customerID uint, input UpdateSettingsInput) (*model.CustomerSettings, error) {
	settings, err := s.GetCustomerSettings(customerID)
	if err != nil {
		return nil, err
	}

	if input.BillingMethod != nil {
		settings.BillingMethod = *input.BillingMethod
	}
	if input.RoundingEnabled != nil {
		settings.RoundingEnabled = input.RoundingEnabled
	}
	if input.BankName != nil {
		settings.BankName = *input.BankName
	}
	if input.BranchName != nil {
		settings.BranchName = *input.BranchName
	}
	if input.AccountNumber != nil {
		settings.AccountNumber = *input.AccountNumber
	}
	if input.AccountHolder != nil {
		settings.AccountHolder = *input.AccountHolder
	}

	if err := s.customerRepo.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
