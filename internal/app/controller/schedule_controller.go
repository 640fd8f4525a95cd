package controller

import (
	"net/http"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/gin-gonic/gin"
)

// ScheduleController 배달 패턴/임시 변경 컨트롤러
type ScheduleController struct {
	scheduleService service.ScheduleService
}

func NewScheduleController(scheduleService service.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// UpdateEndDateRequest 패턴 종료일 변경 요청. end_date를 비우면 무기한.
type UpdateEndDateRequest struct {
	EndDate *time.Time `json:"end_date"`
}

// CreatePattern 배달 패턴 등록
// @Summary 배달 패턴 등록
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body service.CreatePatternInput true "패턴 등록 요청"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/patterns [post]
func (ctrl *ScheduleController) CreatePattern(c *gin.Context) {
	var input service.CreatePatternInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	pattern, err := ctrl.scheduleService.CreatePattern(input)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    pattern,
	})
}

// GetPattern 패턴 상세
// @Summary 배달 패턴 조회
// @Tags schedule
// @Produce json
// @Param id path int true "패턴 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/patterns/{id} [get]
func (ctrl *ScheduleController) GetPattern(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pattern, err := ctrl.scheduleService.GetPattern(id)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pattern,
	})
}

// ListPatterns 고객의 패턴 목록
// @Summary 고객 배달 패턴 목록
// @Tags schedule
// @Produce json
// @Param id path int true "고객 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/patterns [get]
func (ctrl *ScheduleController) ListPatterns(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	patterns, err := ctrl.scheduleService.ListPatterns(customerID)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patterns,
	})
}

// UpdatePatternEndDate 패턴 종료일 변경 (단축/연장은 확정 월 기준으로 검사)
// @Summary 배달 패턴 종료일 변경
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path int true "패턴 ID"
// @Param request body UpdateEndDateRequest true "종료일 변경 요청"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/patterns/{id}/end-date [put]
func (ctrl *ScheduleController) UpdatePatternEndDate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEndDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	pattern, err := ctrl.scheduleService.UpdatePatternEndDate(id, req.EndDate)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "패턴 종료일이 변경되었습니다",
		"data":    pattern,
	})
}

// CreateTemporaryChange 임시 변경 등록 (skip/modify/add)
// @Summary 임시 변경 등록
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body service.CreateChangeInput true "임시 변경 요청"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/changes [post]
func (ctrl *ScheduleController) CreateTemporaryChange(c *gin.Context) {
	var input service.CreateChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	change, err := ctrl.scheduleService.CreateTemporaryChange(input)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    change,
	})
}

// ListTemporaryChanges 고객의 기간 내 임시 변경 목록
// @Summary 임시 변경 목록
// @Tags schedule
// @Produce json
// @Param id path int true "고객 ID"
// @Param from query string true "시작일 (YYYY-MM-DD)"
// @Param to query string true "종료일 (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/changes [get]
func (ctrl *ScheduleController) ListTemporaryChanges(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	changes, err := ctrl.scheduleService.ListTemporaryChanges(customerID, from, to)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    changes,
	})
}

// DeleteTemporaryChange 임시 변경 삭제
// @Summary 임시 변경 삭제
// @Tags schedule
// @Produce json
// @Param id path int true "임시 변경 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/changes/{id} [delete]
func (ctrl *ScheduleController) DeleteTemporaryChange(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.scheduleService.DeleteTemporaryChange(id); err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "임시 변경이 삭제되었습니다",
	})
}
