package controller

import (
	"net/http"
	"strconv"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/gin-gonic/gin"
)

// MasterController 고객/코스/상품 기준 정보 컨트롤러
type MasterController struct {
	masterService service.MasterService
}

func NewMasterController(masterService service.MasterService) *MasterController {
	return &MasterController{
		masterService: masterService,
	}
}

// ListCourses 코스 목록
// @Summary 코스 목록 조회
// @Tags master
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/courses [get]
func (ctrl *MasterController) ListCourses(c *gin.Context) {
	courses, err := ctrl.masterService.ListCourses()
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    courses,
	})
}

// ListProducts 상품 목록
// @Summary 상품 목록 조회
// @Tags master
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (ctrl *MasterController) ListProducts(c *gin.Context) {
	products, err := ctrl.masterService.ListProducts()
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// ListCustomers 고객 목록 (코스 필터는 쿼리 파라미터)
// @Summary 고객 목록 조회
// @Tags master
// @Produce json
// @Param course_id query int false "코스 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers [get]
func (ctrl *MasterController) ListCustomers(c *gin.Context) {
	if courseParam := c.Query("course_id"); courseParam != "" {
		courseID, err := strconv.ParseUint(courseParam, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 코스 ID입니다")
			return
		}
		customers, err := ctrl.masterService.ListCustomersByCourse(uint(courseID))
		if err != nil {
			apperrors.RespondService(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    customers,
		})
		return
	}

	customers, err := ctrl.masterService.ListCustomers()
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetCustomer 고객 상세
// @Summary 고객 상세 조회
// @Tags master
// @Produce json
// @Param id path int true "고객 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/customers/{id} [get]
func (ctrl *MasterController) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := ctrl.masterService.GetCustomer(id)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// GetCustomerSettings 고객 청구 설정
// @Summary 고객 청구 설정 조회
// @Tags master
// @Produce json
// @Param id path int true "고객 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/settings [get]
func (ctrl *MasterController) GetCustomerSettings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	settings, err := ctrl.masterService.GetCustomerSettings(id)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// UpdateCustomerSettings 고객 청구 설정 변경
// @Summary 고객 청구 설정 변경
// @Tags master
// @Accept json
// @Produce json
// @Param id path int true "고객 ID"
// @Param request body service.UpdateSettingsInput true "변경 요청"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/settings [put]
func (ctrl *MasterController) UpdateCustomerSettings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	settings, err := ctrl.masterService.UpdateCustomerSettings(id, input)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "청구 설정이 변경되었습니다",
		"data":    settings,
	})
}

// parseIDParam 경로 파라미터의 숫자 ID 파싱 공통 처리
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID입니다")
		return 0, false
	}
	return uint(id), true
}
