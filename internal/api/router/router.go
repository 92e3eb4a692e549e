package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studie-planner/config"
	"studie-planner/internal/api/handler"
	"studie-planner/internal/api/middleware"
	"studie-planner/internal/model"
	"studie-planner/pkg/jwt"
	"studie-planner/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil; rate limiting is then off.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Subject.ListSubjects)
			subjects.POST("", h.Subject.CreateSubject)
			subjects.GET("/:id", h.Subject.GetSubject)
			subjects.PUT("/:id", h.Subject.UpdateSubject)
			subjects.DELETE("/:id", h.Subject.DeleteSubject)
		}

		tests := v1.Group("/tests")
		{
			tests.POST("", h.Test.CreateTest)
			tests.GET("", h.Test.ListTests)
			tests.POST("/preview", h.Test.Preview)
			tests.GET("/:id", h.Test.GetTest)
			tests.PUT("/:id/items", h.Test.ReplaceItems)
			tests.POST("/:id/planning/regenerate", h.Test.RegeneratePlanning)
			tests.DELETE("/:id", h.Test.DeleteTest)
		}

		homework := v1.Group("/homework")
		{
			homework.POST("", h.Homework.CreateHomework)
			homework.GET("", h.Homework.ListHomework)
			homework.PUT("/:id/toggle", h.Homework.ToggleHomework)
			homework.DELETE("/:id", h.Homework.DeleteHomework)
		}

		planning := v1.Group("/planning")
		{
			planning.GET("", h.Planning.GetDay)
			planning.GET("/week", h.Planning.GetWeek)
			planning.PUT("/items/:id/complete", h.Planning.CompleteItem)
			planning.PUT("/items/:id/incomplete", h.Planning.IncompleteItem)
			planning.GET("/export.xlsx", h.Export.ExportWeekXLSX)
			planning.GET("/export.pdf", h.Export.ExportWeekPDF)
			planning.GET("/calendar.ics", h.Export.Calendar)
		}

		// parent view, same household is checked in the service
		children := v1.Group("/children", middleware.RoleAuth(model.RoleParent))
		{
			children.GET("/:id/planning", h.Planning.GetChildDay)
			children.GET("/:id/planning/week", h.Planning.GetChildWeek)
		}

		v1.GET("/settings", h.Settings.GetSettings)
		v1.PUT("/settings", h.Settings.UpdateSettings)

		questions := v1.Group("/questions")
		{
			questions.GET("", h.Question.ListQuestions)
			questions.POST("", h.Question.AskQuestion)
			questions.POST("/:id/answers", h.Question.AnswerQuestion)
			questions.PUT("/:id/resolve", h.Question.ResolveQuestion)
		}

		games := v1.Group("/games")
		{
			games.GET("/credits", h.Game.GetCredits)
			games.POST("/credits/spend", h.Game.SpendCredit)
			games.POST("/scores", h.Game.SaveScore)
			games.GET("/leaderboard", h.Game.GetLeaderboard)
		}
	}

	return r
}
