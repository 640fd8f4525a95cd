package controller

import (
	"net/http"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/JETKIDS/trae-milk2-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthController 운영자 인증 컨트롤러
type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 운영자 등록 요청 (관리자 전용)
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

// Login 운영자 로그인
// @Summary 운영자 로그인
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "로그인 요청"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	operator, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"operator": operator,
			"tokens":   tokens,
		},
	})
}

// Register 운영자 등록 (관리자 전용)
// @Summary 운영자 등록
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "등록 요청"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	operator, tokens, err := ctrl.authService.Register(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"operator": operator,
			"tokens":   tokens,
		},
	})
}

// Me 로그인한 운영자 정보
// @Summary 내 정보 조회
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	operator, err := ctrl.authService.GetOperatorByID(operatorID)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    operator,
	})
}
