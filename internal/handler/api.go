package handler

import (
	"time"

	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/service"
	"github.com/gosecsite/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 汇总构造 API 所需的外部依赖与配置。
type Options struct {
	Storage        storage.Storage
	MaxUploadBytes int64
	PublicBaseURL  string
	UploadURLPath  string
	JWTSecret      string
	TokenTTL       time.Duration
	Defaults       fallback.Content
	Logger         *zap.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	auth       *service.AuthService
	content    *service.ContentService
	programs   *service.ProgramService
	events     *service.EventService
	gallery    *service.GalleryService
	leadership *service.LeadershipService
	forms      *service.FormService
	media      *service.MediaService
	site       *service.SiteService
	log        *zap.Logger
	maxUpload  int64
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	media := service.NewMediaService(gdb, opts.Storage, opts.MaxUploadBytes, log)
	content := service.NewContentService(gdb, opts.Defaults.Hero, opts.Defaults.About)
	programs := service.NewProgramService(gdb)
	events := service.NewEventService(gdb, media)
	gallery := service.NewGalleryService(gdb, media)
	leadership := service.NewLeadershipService(gdb, media)

	return &API{
		db:         gdb,
		auth:       service.NewAuthService(gdb, opts.JWTSecret, opts.TokenTTL),
		content:    content,
		programs:   programs,
		events:     events,
		gallery:    gallery,
		leadership: leadership,
		forms:      service.NewFormService(gdb),
		media:      media,
		site: service.NewSiteService(content, programs, events, gallery, leadership, service.SiteOptions{
			BaseURL:    opts.PublicBaseURL,
			UploadPath: opts.UploadURLPath,
		}, log),
		log:       log,
		maxUpload: opts.MaxUploadBytes,
	}
}

// DB exposes the underlying gorm instance for health checks.
func (a *API) DB() *gorm.DB {
	return a.db
}
