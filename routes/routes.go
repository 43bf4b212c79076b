package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/controllers"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
	"github.com/vnkhanh/wild-series-backend/ws"
)

type Dependencies struct {
	DB             *gorm.DB
	JWT            *utils.JWTService
	Controller     *controllers.Controller
	WebSocket      *ws.Handler
	CommentLimiter *middleware.RateLimiter
}

func SetupRouter(r *gin.Engine, d Dependencies) *gin.Engine {
	ctl := d.Controller
	auth := middleware.AuthMiddleware(d.JWT, d.DB)
	optionalAuth := middleware.OptionalAuthMiddleware(d.JWT, d.DB)

	r.Use(middleware.DBMiddleware(d.DB))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", ctl.HealthCheck)

	r.GET("/", ctl.Home)
	r.GET("/my-profile", auth, ctl.MyProfile)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", ctl.Register)
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/google", ctl.GoogleLogin)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", ctl.ListCategories)
		categories.POST("/new", auth, middleware.RequireRoles(models.RoleAdmin), ctl.NewCategory)
		categories.GET("/:name", ctl.ShowCategory)
	}

	actors := r.Group("/actors")
	{
		actors.GET("", ctl.ListActors)
		actors.GET("/:id", ctl.ShowActor)
	}

	// :program là slug, riêng route xoá dùng id
	programs := r.Group("/programs")
	{
		programs.GET("", ctl.ListPrograms)
		programs.POST("/new", auth, ctl.NewProgram)
		programs.GET("/:program", optionalAuth, ctl.ShowProgram)
		programs.POST("/:program", optionalAuth, ctl.DeleteProgram)
		programs.GET("/:program/edit", auth, ctl.EditProgramForm)
		programs.POST("/:program/edit", auth, ctl.EditProgram)

		programs.POST("/:program/seasons", auth, ctl.NewSeason)
		programs.GET("/:program/seasons/:number", ctl.ShowSeason)

		programs.POST("/:program/seasons/:number/episodes", auth, ctl.NewEpisode)
		programs.GET("/:program/seasons/:number/episodes/:episode", ctl.ShowEpisode)
		programs.POST("/:program/seasons/:number/episodes/:episode",
			auth, middleware.RateLimitMiddleware(d.CommentLimiter), ctl.PostComment)
	}

	wsGroup := r.Group("/ws")
	{
		wsGroup.GET("/episodes/:id", d.WebSocket.Episode)
		wsGroup.GET("/programs", d.WebSocket.Global)
	}

	return r
}
