package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int         // HTTP 상태 코드
	Code    string      // 에러 코드 (codes.go 참조)
	Message string      // 사용자 친화적 메시지
	Details interface{} // 건별 실패 목록 등 부가 정보
}

// ParseServiceError 서비스 계층 에러를 상태 코드와 응답으로 변환.
// 민감한 내부 정보는 숨기되 사용자가 문제를 해결할 수 있는 정보는 남긴다.
func ParseServiceError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: "서버 오류가 발생했습니다"}
	}

	// 월 잠금: 어느 연월이 막혔는지 함께 돌려준다
	var locked *service.MonthLockedError
	if errors.As(err, &locked) {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    BillingMonthLocked,
			Message: fmt.Sprintf("%04d-%02d월은 청구가 확정돼 변경할 수 없습니다", locked.Year, locked.Month),
			Details: locked,
		}
	}

	// 일괄 단가 변경의 전체 거부: 막힌 고객 목록을 함께 돌려준다
	var blocked *service.BatchBlockedError
	if errors.As(err, &blocked) {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    BulkBatchBlocked,
			Message: fmt.Sprintf("확정된 월의 고객 %d명 때문에 전체가 거부됐습니다", len(blocked.Blocked)),
			Details: blocked.Blocked,
		}
	}

	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return notFound(MasterCustomerNotFound, "고객을 찾을 수 없습니다")
	case errors.Is(err, service.ErrCourseNotFound):
		return notFound(MasterCourseNotFound, "코스를 찾을 수 없습니다")
	case errors.Is(err, service.ErrProductNotFound):
		return notFound(MasterProductNotFound, "상품을 찾을 수 없습니다")
	case errors.Is(err, service.ErrPatternNotFound):
		return notFound(SchedulePatternNotFound, "배달 패턴을 찾을 수 없습니다")
	case errors.Is(err, service.ErrChangeNotFound):
		return notFound(ScheduleChangeNotFound, "임시 변경을 찾을 수 없습니다")
	case errors.Is(err, service.ErrInvoiceNotFound):
		return notFound(BillingInvoiceNotFound, "청구 확정 내역을 찾을 수 없습니다")
	case errors.Is(err, service.ErrPaymentNotFound):
		return notFound(BillingPaymentNotFound, "입금 내역을 찾을 수 없습니다")
	case errors.Is(err, service.ErrOperationNotFound):
		return notFound(BulkOperationNotFound, "일괄 작업 로그를 찾을 수 없습니다")
	case errors.Is(err, service.ErrOperatorNotFound):
		return notFound(ResourceNotFound, "운영자를 찾을 수 없습니다")

	case errors.Is(err, service.ErrOperationReversed):
		return ErrorInfo{Status: http.StatusConflict, Code: BulkOperationReversed, Message: "이미 되돌린 작업입니다"}
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return ErrorInfo{Status: http.StatusConflict, Code: AuthEmailAlreadyExists, Message: "이미 사용 중인 이메일입니다"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return ErrorInfo{Status: http.StatusUnauthorized, Code: AuthInvalidCredentials, Message: "이메일 또는 비밀번호가 올바르지 않습니다"}

	case errors.Is(err, service.ErrInvalidMonth):
		return badRequest(ValidationInvalidMonth, "연월이 올바르지 않습니다")
	case errors.Is(err, service.ErrInvalidDateRange):
		return badRequest(ValidationInvalidRange, "기간이 올바르지 않습니다")
	case errors.Is(err, service.ErrInvalidAmount):
		return badRequest(ValidationInvalidAmount, "금액이 올바르지 않습니다")
	case errors.Is(err, service.ErrInvalidUnitPrice):
		return badRequest(ValidationInvalidAmount, "단가가 올바르지 않습니다")
	case errors.Is(err, service.ErrInvalidQuantity):
		return badRequest(ValidationInvalidAmount, "수량이 올바르지 않습니다")
	case errors.Is(err, service.ErrInvalidChangeType):
		return badRequest(ValidationInvalidInput, "임시 변경 유형이 올바르지 않습니다")
	case errors.Is(err, service.ErrProductRequired):
		return badRequest(ScheduleProductRequired, "상품을 지정해야 합니다")
	case errors.Is(err, service.ErrInvalidSchedule):
		return badRequest(ScheduleInvalidPattern, "요일 또는 일별 수량을 지정해야 합니다")

	case errors.Is(err, service.ErrStorageUnavailable):
		return ErrorInfo{Status: http.StatusServiceUnavailable, Code: ExportStorageUnavailable, Message: "파일 스토리지가 설정돼 있지 않습니다"}

	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(ResourceNotFound, "요청한 데이터를 찾을 수 없습니다")
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "이미 존재하는 데이터입니다"}
	}
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalDatabaseError,
			Message: "저장소 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}
}

// RespondService 서비스 에러를 그대로 HTTP 응답으로 흘려보낸다
func RespondService(c *gin.Context, err error) {
	info := ParseServiceError(err)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
		Details: info.Details,
	})
}

func notFound(code, message string) ErrorInfo {
	return ErrorInfo{Status: http.StatusNotFound, Code: code, Message: message}
}

func badRequest(code, message string) ErrorInfo {
	return ErrorInfo{Status: http.StatusBadRequest, Code: code, Message: message}
}
