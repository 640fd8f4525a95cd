package router

import (
	"github.com/JETKIDS/trae-milk2-sub000/config"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/controller"
	"github.com/JETKIDS/trae-milk2-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	masterController   *controller.MasterController
	calendarController *controller.CalendarController
	scheduleController *controller.ScheduleController
	billingController  *controller.BillingController
	bulkController     *controller.BulkController
	exportController   *controller.ExportController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	masterController *controller.MasterController,
	calendarController *controller.CalendarController,
	scheduleController *controller.ScheduleController,
	billingController *controller.BillingController,
	bulkController *controller.BulkController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		masterController:   masterController,
		calendarController: calendarController,
		scheduleController: scheduleController,
		billingController:  billingController,
		bulkController:     bulkController,
		exportController:   exportController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "MILK LEDGER API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/register",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.authController.Register,
			)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// 이하 전부 로그인 필요. 운영 콘솔 내부 API라 공개 경로가 없다.
		api := v1.Group("")
		api.Use(r.authMiddleware.Authenticate())
		{
			courses := api.Group("/courses")
			{
				courses.GET("", r.masterController.ListCourses)
				courses.GET("/:id/route-sheet", r.calendarController.RouteSheet)
			}

			api.GET("/products", r.masterController.ListProducts)

			customers := api.Group("/customers")
			{
				customers.GET("", r.masterController.ListCustomers)
				customers.GET("/:id", r.masterController.GetCustomer)
				customers.GET("/:id/settings", r.masterController.GetCustomerSettings)
				customers.PUT("/:id/settings", r.masterController.UpdateCustomerSettings)

				customers.GET("/:id/calendar", r.calendarController.MonthlyCalendar)
				customers.GET("/:id/calendar/day", r.calendarController.DayCalendar)

				customers.GET("/:id/patterns", r.scheduleController.ListPatterns)
				customers.GET("/:id/changes", r.scheduleController.ListTemporaryChanges)

				customers.GET("/:id/billing/summary", r.billingController.Summary)
				customers.POST("/:id/billing/confirm", r.billingController.Confirm)
				customers.DELETE("/:id/billing/confirm", r.billingController.Unconfirm)
				customers.GET("/:id/payments", r.billingController.ListPayments)
				customers.POST("/:id/payments", r.billingController.RecordPayment)
			}

			patterns := api.Group("/patterns")
			{
				patterns.POST("", r.scheduleController.CreatePattern)
				patterns.GET("/:id", r.scheduleController.GetPattern)
				patterns.PUT("/:id/end-date", r.scheduleController.UpdatePatternEndDate)
			}

			changes := api.Group("/changes")
			{
				changes.POST("", r.scheduleController.CreateTemporaryChange)
				changes.DELETE("/:id", r.scheduleController.DeleteTemporaryChange)
			}

			payments := api.Group("/payments")
			{
				payments.POST("/batch", r.billingController.RegisterPaymentsBatch)
				payments.POST("/:id/cancel", r.billingController.CancelPayment)
			}

			bulk := api.Group("/bulk")
			{
				bulk.POST("/holiday-skips", r.bulkController.ApplyHolidaySkips)
				bulk.POST("/price-changes",
					r.authMiddleware.RequireAdmin(),
					r.bulkController.ChangePrice,
				)
			}

			operations := api.Group("/operations")
			{
				operations.GET("", r.bulkController.ListOperations)
				operations.POST("/:id/rollback", r.bulkController.Rollback)
			}

			api.GET("/exports/invoices", r.exportController.MonthlyInvoices)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
