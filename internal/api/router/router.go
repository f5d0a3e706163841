package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cmms120187/pratamair/config"
	"github.com/cmms120187/pratamair/internal/api/handler"
	"github.com/cmms120187/pratamair/internal/api/middleware"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/pkg/jwt"
	"github.com/cmms120187/pratamair/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
//
// Authorization model: every mechanic-side role reads the board and
// records executions; catalog writes and schedule generation are
// restricted to admin and coordinator.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	planners := middleware.RoleAuth(model.RoleAdmin, model.RoleCoordinator)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// catalog lookups
			authorized.GET("/plants", h.MasterData.ListPlants)
			authorized.GET("/lines", h.MasterData.ListLines)
			authorized.GET("/machine-types", h.MasterData.ListMachineTypes)
			authorized.GET("/users/mechanics", h.MasterData.ListMechanics)

			// machines
			machines := authorized.Group("/machines")
			{
				machines.GET("", h.MasterData.ListMachines)
				machines.GET("/:id", h.MasterData.GetMachine)
				machines.POST("", planners, h.MasterData.CreateMachine)
				machines.PUT("/:id", planners, h.MasterData.UpdateMachine)
				machines.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.MasterData.DeleteMachine)
			}

			// measurement standards
			standards := authorized.Group("/standards")
			{
				standards.GET("", h.MasterData.ListStandards)
				standards.POST("", planners, h.MasterData.CreateStandard)
			}

			// maintenance points
			points := authorized.Group("/maintenance-points")
			{
				points.GET("", h.MasterData.ListMaintenancePoints)
				points.POST("", planners, h.MasterData.CreateMaintenancePoint)
				points.DELETE("/:id", planners, h.MasterData.DeleteMaintenancePoint)
			}

			// scheduling
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Scheduling.Board)
				schedules.GET("/:id", h.Scheduling.Get)
				schedules.POST("/generate", planners, h.Scheduling.Generate)
				schedules.PUT("/:id", planners, h.Scheduling.Update)
				schedules.DELETE("/:id", planners, h.Scheduling.Delete)
			}

			// controlling
			authorized.GET("/controlling", h.Controlling.Dashboard)
			executions := authorized.Group("/executions")
			{
				executions.POST("/batch", h.Controlling.BatchUpsertExecutions)
				executions.GET("/:id", h.Controlling.GetExecution)
				executions.PUT("/:id", h.Controlling.UpdateExecution)
				executions.DELETE("/:id", planners, h.Controlling.DeleteExecution)
			}

			// exports
			export := authorized.Group("/export")
			{
				export.GET("/controlling", h.Export.ControllingXLSX)
				export.GET("/machines/:id/calendar", h.Export.MachineCalendarICS)
			}
		}
	}

	return r
}
