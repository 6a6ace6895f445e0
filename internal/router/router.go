package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/config"
	"github.com/gosecsite/internal/handler"
	"github.com/gosecsite/internal/logger"
	"go.uber.org/zap"
)

const sessionName = "gosec_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg config.AppConfig, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(logger.Gin(log), gin.Recovery())

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
			ExposeHeaders:    []string{"Content-Language"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 会话只用于记住访客选择的语言
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LocaleMiddleware())

	r.GET("/healthz", api.HealthCheck)

	// 上传的图片与缩略图
	uploads := strings.TrimRight(cfg.UploadURLPath, "/") + "/*filepath"
	r.GET(uploads, api.ServeUpload)
	r.HEAD(uploads, api.ServeUpload)

	public := r.Group("/api")
	{
		public.POST("/auth/login", api.Login)

		public.GET("/site", api.GetSite)
		public.GET("/content/hero", api.GetHero)
		public.GET("/content/about", api.GetAbout)

		public.GET("/programs", api.ListPrograms)
		public.GET("/programs/:id", api.GetProgram)
		public.GET("/events", api.ListEvents)
		public.GET("/events/:id", api.GetEvent)
		public.GET("/gallery", api.ListGalleryItems)
		public.GET("/gallery/:id", api.GetGalleryItem)
		public.GET("/leadership", api.ListLeadership)
		public.GET("/leadership/:id", api.GetLeadershipMember)
		public.GET("/media", api.ListMedia)

		public.POST("/forms/join", api.SubmitJoin)
		public.POST("/forms/donate", api.SubmitDonate)
		public.POST("/forms/contact", api.SubmitContact)
	}

	// 需要认证的后台路由
	admin := r.Group("/api")
	admin.Use(api.AuthRequired())
	{
		admin.GET("/auth/me", api.Me)

		admin.PUT("/content/hero", api.UpdateHero)
		admin.PUT("/content/about", api.UpdateAbout)

		admin.POST("/programs", api.CreateProgram)
		admin.PUT("/programs/:id", api.UpdateProgram)
		admin.DELETE("/programs/:id", api.DeleteProgram)

		admin.POST("/events", api.CreateEvent)
		admin.POST("/events/with-image", api.CreateEventWithImage)
		admin.PUT("/events/:id", api.UpdateEvent)
		admin.PUT("/events/:id/with-image", api.UpdateEventWithImage)
		admin.DELETE("/events/:id", api.DeleteEvent)

		admin.POST("/gallery", api.CreateGalleryItem)
		admin.POST("/gallery/with-image", api.CreateGalleryItemWithImage)
		admin.PUT("/gallery/:id", api.UpdateGalleryItem)
		admin.PUT("/gallery/:id/with-image", api.UpdateGalleryItemWithImage)
		admin.DELETE("/gallery/:id", api.DeleteGalleryItem)

		admin.POST("/leadership", api.CreateLeadershipMember)
		admin.POST("/leadership/with-image", api.CreateLeadershipMemberWithImage)
		admin.PUT("/leadership/:id", api.UpdateLeadershipMember)
		admin.PUT("/leadership/:id/with-image", api.UpdateLeadershipMemberWithImage)
		admin.DELETE("/leadership/:id", api.DeleteLeadershipMember)

		admin.GET("/forms/:variant", api.ListSubmissions)
		admin.GET("/forms/:variant/:id", api.GetSubmission)
		admin.DELETE("/forms/:variant/:id", api.DeleteSubmission)

		admin.POST("/media", api.UploadMedia)
		admin.PUT("/media/:id", api.UpdateMedia)
	}

	return r
}
