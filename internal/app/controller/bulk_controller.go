package controller

import (
	"net/http"
	"strconv"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/gin-gonic/gin"
)

// BulkController 일괄 변경/되돌리기 컨트롤러
type BulkController struct {
	bulkService service.BulkService
}

func NewBulkController(bulkService service.BulkService) *BulkController {
	return &BulkController{
		bulkService: bulkService,
	}
}

// ApplyHolidaySkips 휴배 일괄 등록
// @Summary 코스 휴배 일괄 등록
// @Tags bulk
// @Accept json
// @Produce json
// @Param request body service.HolidaySkipParams true "휴배 등록 요청"
// @Success 200 {object} map[string]interface{}
// @Router /api/bulk/holiday-skips [post]
func (ctrl *BulkController) ApplyHolidaySkips(c *gin.Context) {
	var params service.HolidaySkipParams
	if err := c.ShouldBindJSON(&params); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	result, err := ctrl.bulkService.ApplyHolidaySkips(params)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ChangePrice 단가 일괄 변경 (전건 통과 시에만 실행)
// @Summary 상품 단가 일괄 변경
// @Tags bulk
// @Accept json
// @Produce json
// @Param request body service.PriceChangeParams true "단가 변경 요청"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/bulk/price-changes [post]
func (ctrl *BulkController) ChangePrice(c *gin.Context) {
	var params service.PriceChangeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	result, err := ctrl.bulkService.ChangePrice(params)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Rollback 작업 로그 기준 되돌리기
// @Summary 일괄 작업 되돌리기
// @Tags bulk
// @Produce json
// @Param id path int true "작업 로그 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/operations/{id}/rollback [post]
func (ctrl *BulkController) Rollback(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	operationLog, err := ctrl.bulkService.Rollback(id)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "작업을 되돌렸습니다",
		"data":    operationLog,
	})
}

// ListOperations 일괄 작업 이력
// @Summary 일괄 작업 이력 조회
// @Tags bulk
// @Produce json
// @Param limit query int false "최대 건수" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /api/operations [get]
func (ctrl *BulkController) ListOperations(c *gin.Context) {
	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "limit이 올바르지 않습니다")
			return
		}
		limit = parsed
	}

	operations, err := ctrl.bulkService.ListOperations(limit)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    operations,
	})
}
