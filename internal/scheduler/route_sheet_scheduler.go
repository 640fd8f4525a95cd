package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/redis"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/util"
	"github.com/robfig/cron/v3"
)

// RouteSheetScheduler 아침 배달 전에 코스별 배달 목록을 미리 만들어 캐시한다
type RouteSheetScheduler struct {
	cron       *cron.Cron
	spec       string
	ttl        time.Duration
	calendar   service.CalendarService
	courseRepo repository.CourseRepository
}

// NewRouteSheetScheduler 배달 목록 스케줄러 생성
func NewRouteSheetScheduler(
	spec string,
	ttl time.Duration,
	calendar service.CalendarService,
	courseRepo repository.CourseRepository,
) *RouteSheetScheduler {
	return &RouteSheetScheduler{
		cron:       cron.New(),
		spec:       spec,
		ttl:        ttl,
		calendar:   calendar,
		courseRepo: courseRepo,
	}
}

// Start 스케줄러 시작
func (s *RouteSheetScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.BuildToday()
	})
	if err != nil {
		logger.Error("Failed to add cron job for route sheet build", err)
		return err
	}

	s.cron.Start()
	logger.Info("Route sheet scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// BuildToday 오늘자 배달 목록을 전 코스에 대해 만들어 캐시한다.
// 한 코스가 실패해도 나머지 코스는 계속 진행한다.
func (s *RouteSheetScheduler) BuildToday() {
	today := util.DateOnly(time.Now())
	dateKey := today.Format("2006-01-02")

	logger.Info("Starting scheduled route sheet build", map[string]interface{}{
		"date": dateKey,
	})

	courses, err := s.courseRepo.List()
	if err != nil {
		logger.Error("Failed to list courses for route sheet build", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	built := 0
	for _, course := range courses {
		deliveries, err := s.calendar.RouteSheet(course.ID, today)
		if err != nil {
			logger.Error("Failed to build route sheet", err, map[string]interface{}{
				"course_id": course.ID,
				"date":      dateKey,
			})
			continue
		}

		payload, err := json.Marshal(deliveries)
		if err != nil {
			logger.Error("Failed to encode route sheet", err, map[string]interface{}{
				"course_id": course.ID,
			})
			continue
		}

		if err := redis.CacheRouteSheet(ctx, course.ID, dateKey, payload, s.ttl); err != nil {
			continue
		}
		built++
	}

	logger.Info("Route sheet build finished", map[string]interface{}{
		"date":    dateKey,
		"courses": len(courses),
		"built":   built,
	})
}

// Stop 스케줄러 중지
func (s *RouteSheetScheduler) Stop() {
	logger.Info("Stopping route sheet scheduler...", nil)
	s.cron.Stop()
	logger.Info("Route sheet scheduler stopped", nil)
}
