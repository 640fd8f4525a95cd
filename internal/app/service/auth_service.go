package service

import (
	"errors"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"gorm.io/gorm"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type AuthService interface {
	Register(email, password, name, role string) (*model.Operator, *util.TokenPair, error)
	Login(email, password string) (*model.Operator, *util.TokenPair, error)
	GetOperatorByID(id uint) (*model.Operator, error)
}

type authService struct {
	operatorRepo  repository.OperatorRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	operatorRepo repository.OperatorRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		operatorRepo:  operatorRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, name, role string) (*model.Operator, *util.TokenPair, error) {
	logger.Info("Attempting operator registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	existing, err := s.operatorRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing operator", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if role != string(model.RoleAdmin) {
		role = string(model.RoleStaff)
	}

	operator := &model.Operator{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Role:         model.OperatorRole(role),
	}
	if err := s.operatorRepo.Create(operator); err != nil {
		logger.Error("Failed to create operator in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		operator.ID,
		operator.Email,
		string(operator.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"operator_id": operator.ID,
		})
		return nil, nil, err
	}

	logger.Info("Operator registered successfully", map[string]interface{}{
		"operator_id": operator.ID,
		"email":       email,
		"role":        operator.Role,
	})
	return operator, tokens, nil
}

func (s *authService) Login(email, password string) (*model.Operator, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	operator, err := s.operatorRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: operator not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find operator", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(operator.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":       email,
			"operator_id": operator.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		operator.ID,
		operator.Email,
		string(operator.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"operator_id": operator.ID,
		})
		return nil, nil, err
	}

	logger.Info("Operator logged in successfully", map[string]interface{}{
		"operator_id": operator.ID,
		"email":       email,
		"role":        operator.Role,
	})
	return operator, tokens, nil
}

func (s *authService) GetOperatorByID(id uint) (*model.Operator, error) {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		logger.Error("Failed to fetch operator", err, map[string]interface{}{
			"operator_id": id,
		})
		return nil, err
	}
	return operator, nil
}
