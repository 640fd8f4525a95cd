package controller

import (
	"net/http"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/model"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/gin-gonic/gin"
)

// BillingController 청구/수금 컨트롤러
type BillingController struct {
	billingService service.BillingService
}

func NewBillingController(billingService service.BillingService) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

// RecordPaymentRequest 입금 등록 요청
type RecordPaymentRequest struct {
	Year   int                 `json:"year" binding:"required"`
	Month  int                 `json:"month" binding:"required"`
	Amount float64             `json:"amount" binding:"required"`
	Method model.PaymentMethod `json:"method"`
	Note   string              `json:"note"`
}

// BatchPaymentsRequest 일괄 입금 등록 요청
type BatchPaymentsRequest struct {
	Year    int                         `json:"year" binding:"required"`
	Month   int                         `json:"month" binding:"required"`
	Entries []service.BatchPaymentEntry `json:"entries" binding:"required,dive"`
}

// Summary 청구 미리보기 (쓰기 없음)
// @Summary 월 청구 요약 조회
// @Tags billing
// @Produce json
// @Param id path int true "고객 ID"
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/billing/summary [get]
func (ctrl *BillingController) Summary(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	summary, err := ctrl.billingService.Summary(customerID, year, month)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// Confirm 청구 확정 (월 잠금)
// @Summary 월 청구 확정
// @Tags billing
// @Produce json
// @Param id path int true "고객 ID"
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/billing/confirm [post]
func (ctrl *BillingController) Confirm(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	invoice, err := ctrl.billingService.Confirm(customerID, year, month)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "청구가 확정되었습니다",
		"data":    invoice,
	})
}

// Unconfirm 청구 확정 해제 (월 잠금 해제)
// @Summary 월 청구 확정 해제
// @Tags billing
// @Produce json
// @Param id path int true "고객 ID"
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/billing/confirm [delete]
func (ctrl *BillingController) Unconfirm(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	if err := ctrl.billingService.Unconfirm(customerID, year, month); err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "청구 확정이 해제되었습니다",
	})
}

// RecordPayment 입금 등록
// @Summary 입금 등록
// @Tags billing
// @Accept json
// @Produce json
// @Param id path int true "고객 ID"
// @Param request body RecordPaymentRequest true "입금 등록 요청"
// @Success 201 {object} map[string]interface{}
// @Router /api/customers/{id}/payments [post]
func (ctrl *BillingController) RecordPayment(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	payment, err := ctrl.billingService.RecordPayment(customerID, req.Year, req.Month, req.Amount, req.Method, req.Note)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payment,
	})
}

// ListPayments 고객의 월 입금 목록
// @Summary 입금 목록 조회
// @Tags billing
// @Produce json
// @Param id path int true "고객 ID"
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/payments [get]
func (ctrl *BillingController) ListPayments(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	payments, err := ctrl.billingService.ListPayments(customerID, year, month)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

// CancelPayment 입금 취소 (삭제가 아니라 음수 금액 추가)
// @Summary 입금 취소
// @Tags billing
// @Produce json
// @Param id path int true "입금 ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/payments/{id}/cancel [post]
func (ctrl *BillingController) CancelPayment(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reversal, err := ctrl.billingService.CancelPayment(paymentID)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "입금이 취소되었습니다",
		"data":    reversal,
	})
}

// RegisterPaymentsBatch 일괄 입금 등록. 건별 실패는 결과에 모아서 돌려준다.
// @Summary 일괄 입금 등록
// @Tags billing
// @Accept json
// @Produce json
// @Param request body BatchPaymentsRequest true "일괄 입금 요청"
// @Success 200 {object} map[string]interface{}
// @Router /api/payments/batch [post]
func (ctrl *BillingController) RegisterPaymentsBatch(c *gin.Context) {
	var req BatchPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "잘못된 요청입니다")
		return
	}

	result, err := ctrl.billingService.RegisterPaymentsBatch(req.Year, req.Month, req.Entries)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
