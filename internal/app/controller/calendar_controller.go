package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	apperrors "github.com/JETKIDS/trae-milk2-sub000/internal/errors"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/redis"
	"github.com/gin-gonic/gin"
)

// CalendarController 배달 캘린더/배달 목록 컨트롤러
type CalendarController struct {
	calendarService service.CalendarService
	routeSheetTTL   time.Duration
}

func NewCalendarController(calendarService service.CalendarService, routeSheetTTL time.Duration) *CalendarController {
	return &CalendarController{
		calendarService: calendarService,
		routeSheetTTL:   routeSheetTTL,
	}
}

// MonthlyCalendar 월 배달 캘린더
// @Summary 월 배달 캘린더 조회
// @Tags calendar
// @Produce json
// @Param id path int true "고객 ID"
// @Param year query int true "연도"
// @Param month query int true "월 (1-12)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/calendar [get]
func (ctrl *CalendarController) MonthlyCalendar(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	days, err := ctrl.calendarService.MonthlyCalendar(customerID, year, month)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customer_id": customerID,
			"year":        year,
			"month":       month,
			"days":        days,
		},
	})
}

// DayCalendar 특정 일자 배달 내역
// @Summary 일자별 배달 내역 조회
// @Tags calendar
// @Produce json
// @Param id path int true "고객 ID"
// @Param date query string true "일자 (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/customers/{id}/calendar/day [get]
func (ctrl *CalendarController) DayCalendar(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	day, err := ctrl.calendarService.DayCalendar(customerID, date)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    day,
	})
}

// RouteSheet 코스별 배달 목록. 스케줄러가 미리 캐시해 둔 것을 먼저 본다.
// @Summary 코스 배달 목록 조회
// @Tags calendar
// @Produce json
// @Param id path int true "코스 ID"
// @Param date query string true "일자 (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/courses/{id}/route-sheet [get]
func (ctrl *CalendarController) RouteSheet(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	dateKey := date.Format("2006-01-02")

	if redis.GetClient() != nil {
		if cached, err := redis.GetRouteSheet(c.Request.Context(), courseID, dateKey); err == nil && cached != nil {
			var deliveries []service.RouteDelivery
			if json.Unmarshal(cached, &deliveries) == nil {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"cached":  true,
					"data":    deliveries,
				})
				return
			}
		}
	}

	deliveries, err := ctrl.calendarService.RouteSheet(courseID, date)
	if err != nil {
		apperrors.RespondService(c, err)
		return
	}

	if redis.GetClient() != nil {
		if payload, err := json.Marshal(deliveries); err == nil {
			_ = redis.CacheRouteSheet(c.Request.Context(), courseID, dateKey, payload, ctrl.routeSheetTTL)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cached":  false,
		"data":    deliveries,
	})
}

// parseYearMonth year/month 쿼리 파라미터 공통 처리
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidMonth, "연도가 올바르지 않습니다")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidMonth, "월이 올바르지 않습니다")
		return 0, 0, false
	}
	return year, month, true
}

// parseDateQuery date 쿼리 파라미터 공통 처리 (YYYY-MM-DD)
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Query(name))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "일자 형식은 YYYY-MM-DD여야 합니다")
		return time.Time{}, false
	}
	return date, true
}
