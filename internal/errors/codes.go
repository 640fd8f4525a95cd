package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // 접근 권한 없음
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidMonth  = "VALIDATION_INVALID_MONTH"  // 잘못된 연월
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 잘못된 기간
	ValidationInvalidAmount = "VALIDATION_INVALID_AMOUNT" // 잘못된 금액
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 기준 정보 (MASTER_) ====================
	MasterCustomerNotFound = "MASTER_CUSTOMER_NOT_FOUND" // 고객 없음
	MasterCourseNotFound   = "MASTER_COURSE_NOT_FOUND"   // 코스 없음
	MasterProductNotFound  = "MASTER_PRODUCT_NOT_FOUND"  // 상품 없음

	// ==================== 배달 일정 (SCHEDULE_) ====================
	SchedulePatternNotFound = "SCHEDULE_PATTERN_NOT_FOUND" // 패턴 없음
	ScheduleChangeNotFound  = "SCHEDULE_CHANGE_NOT_FOUND"  // 임시 변경 없음
	ScheduleInvalidPattern  = "SCHEDULE_INVALID_PATTERN"   // 요일/수량 정보 없음
	ScheduleProductRequired = "SCHEDULE_PRODUCT_REQUIRED"  // 상품 지정 필요

	// ==================== 청구/수금 (BILLING_) ====================
	BillingMonthLocked      = "BILLING_MONTH_LOCKED"      // 확정된 월 변경 불가
	BillingInvoiceNotFound  = "BILLING_INVOICE_NOT_FOUND" // 청구 없음
	BillingPaymentNotFound  = "BILLING_PAYMENT_NOT_FOUND" // 입금 없음

	// ==================== 일괄 변경 (BULK_) ====================
	BulkBatchBlocked      = "BULK_BATCH_BLOCKED"      // 확정 고객 때문에 전체 거부
	BulkOperationNotFound = "BULK_OPERATION_NOT_FOUND" // 작업 로그 없음
	BulkOperationReversed = "BULK_OPERATION_REVERSED"  // 이미 되돌린 작업

	// ==================== 내보내기 (EXPORT_) ====================
	ExportFailed             = "EXPORT_FAILED"              // 파일 생성 실패
	ExportStorageUnavailable = "EXPORT_STORAGE_UNAVAILABLE" // 스토리지 미설정

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
