package service

import (
	"context"
	"fmt"

	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/locale"
	"github.com/gosecsite/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SiteSnapshot 是访客页面需要的全部内容，已按语言取值。
// Fallback 为 true 表示数据库读取失败，内容来自内置静态文案。
type SiteSnapshot struct {
	Language   string           `json:"language"`
	Fallback   bool             `json:"fallback"`
	Hero       HeroView         `json:"hero"`
	About      AboutView        `json:"about"`
	Programs   []ProgramView    `json:"programs"`
	Events     []EventView      `json:"events"`
	Gallery    []GalleryView    `json:"gallery"`
	Leadership []LeadershipView `json:"leadership"`
}

type HeroView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Tagline  string `json:"tagline"`
	MediaKey string `json:"media_key"`
}

// AboutView 的文本字段为清洗后的 HTML。
type AboutView struct {
	About   string `json:"about"`
	Mission string `json:"mission"`
	Vision  string `json:"vision"`
}

type ProgramView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
	MediaKey    string   `json:"media_key"`
	Order       int      `json:"order"`
}

type EventView struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	MediaKey string `json:"media_key"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

type GalleryView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	MediaKey string `json:"media_key"`
	Order    int    `json:"order"`
}

type LeadershipView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

// siteSource 是组装快照所需的原始记录。
type siteSource struct {
	hero       db.HeroContent
	about      db.AboutContent
	programs   []db.Program
	events     []db.Event
	gallery    []db.GalleryItem
	leadership []db.LeadershipMember
}

// SiteService 组装访客读取的页面快照。
type SiteService struct {
	content    *ContentService
	programs   *ProgramService
	events     *EventService
	gallery    *GalleryService
	leadership *LeadershipService
	baseURL    string
	uploadPath string
	loadStatic func() (fallback.Content, error)
	log        *zap.Logger
}

// SiteOptions 配置图片引用的解析方式。
type SiteOptions struct {
	// BaseURL 为后端对外地址，本地上传的引用会拼上它
	BaseURL    string
	UploadPath string
}

// NewSiteService creates a SiteService over the content services.
func NewSiteService(content *ContentService, programs *ProgramService, events *EventService, gallery *GalleryService, leadership *LeadershipService, opts SiteOptions, log *zap.Logger) *SiteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SiteService{
		content:    content,
		programs:   programs,
		events:     events,
		gallery:    gallery,
		leadership: leadership,
		baseURL:    opts.BaseURL,
		uploadPath: opts.UploadPath,
		loadStatic: fallback.Load,
		log:        log,
	}
}

// Snapshot 读取各个板块并按语言组装，列表并行加载；任一板块读取失败时整体退回内置文案。
func (s *SiteService) Snapshot(ctx context.Context, language string) (*SiteSnapshot, error) {
	lang := locale.NormalizeLanguage(language)
	if lang == "" {
		lang = locale.DefaultLanguage
	}

	source, err := s.load(ctx)
	if err == nil {
		snapshot, buildErr := s.build(lang, source)
		if buildErr == nil {
			return snapshot, nil
		}
		err = buildErr
	}

	s.log.Warn("site snapshot degraded to static content", zap.String("language", lang), zap.Error(err))
	static, staticErr := s.loadStatic()
	if staticErr != nil {
		return nil, fmt.Errorf("load static content: %w (after %v)", staticErr, err)
	}
	snapshot, buildErr := s.build(lang, siteSource{
		hero:       static.Hero,
		about:      static.About,
		programs:   static.Programs,
		events:     static.Events,
		gallery:    static.Gallery,
		leadership: static.Leadership,
	})
	if buildErr != nil {
		return nil, buildErr
	}
	snapshot.Fallback = true
	return snapshot, nil
}

func (s *SiteService) load(ctx context.Context) (siteSource, error) {
	var source siteSource

	// 单例缺失时会写入默认值，先串行读取，避免与下面的并行查询争用写锁
	hero, err := s.content.Hero(ctx)
	if err != nil {
		return source, fmt.Errorf("hero: %w", err)
	}
	about, err := s.content.About(ctx)
	if err != nil {
		return source, fmt.Errorf("about: %w", err)
	}
	source.hero, source.about = *hero, *about

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		source.programs, err = s.programs.List(gctx)
		return wrapSection("programs", err)
	})
	g.Go(func() (err error) {
		source.events, err = s.events.List(gctx)
		return wrapSection("events", err)
	})
	g.Go(func() (err error) {
		source.gallery, err = s.gallery.List(gctx)
		return wrapSection("gallery", err)
	})
	g.Go(func() (err error) {
		source.leadership, err = s.leadership.List(gctx)
		return wrapSection("leadership", err)
	})

	if err := g.Wait(); err != nil {
		return siteSource{}, err
	}
	return source, nil
}

func (s *SiteService) build(lang string, src siteSource) (*SiteSnapshot, error) {
	snapshot := &SiteSnapshot{
		Language: lang,
		Hero: HeroView{
			Title:    locale.Pick(lang, src.hero.TitleEN, src.hero.TitleFR),
			Subtitle: locale.Pick(lang, src.hero.SubtitleEN, src.hero.SubtitleFR),
			Tagline:  locale.Pick(lang, src.hero.TaglineEN, src.hero.TaglineFR),
			MediaKey: src.hero.MediaKey,
		},
		Programs:   make([]ProgramView, 0, len(src.programs)),
		Events:     make([]EventView, 0, len(src.events)),
		Gallery:    make([]GalleryView, 0, len(src.gallery)),
		Leadership: make([]LeadershipView, 0, len(src.leadership)),
	}

	var err error
	if snapshot.About.About, err = renderMarkdown(locale.Pick(lang, src.about.AboutEN, src.about.AboutFR)); err != nil {
		return nil, err
	}
	if snapshot.About.Mission, err = renderMarkdown(locale.Pick(lang, src.about.MissionEN, src.about.MissionFR)); err != nil {
		return nil, err
	}
	if snapshot.About.Vision, err = renderMarkdown(locale.Pick(lang, src.about.VisionEN, src.about.VisionFR)); err != nil {
		return nil, err
	}

	for _, program := range src.programs {
		description, err := renderMarkdown(locale.Pick(lang, program.DescriptionEN, program.DescriptionFR))
		if err != nil {
			return nil, err
		}
		snapshot.Programs = append(snapshot.Programs, ProgramView{
			ID:          program.ID,
			Title:       locale.Pick(lang, program.TitleEN, program.TitleFR),
			Description: description,
			Bullets:     locale.PickList(lang, program.BulletsEN, program.BulletsFR),
			MediaKey:    program.MediaKey,
			Order:       program.SortOrder,
		})
	}

	for _, event := range src.events {
		snapshot.Events = append(snapshot.Events, EventView{
			ID:       event.ID,
			Date:     locale.Pick(lang, event.DateEN, event.DateFR),
			Title:    locale.Pick(lang, event.TitleEN, event.TitleFR),
			Location: locale.Pick(lang, event.LocationEN, event.LocationFR),
			Summary:  locale.Pick(lang, event.SummaryEN, event.SummaryFR),
			MediaKey: event.MediaKey,
			ImageURL: s.resolve(event.ImageURL),
			Order:    event.SortOrder,
		})
	}

	for _, item := range src.gallery {
		snapshot.Gallery = append(snapshot.Gallery, GalleryView{
			ID:       item.ID,
			Title:    locale.Pick(lang, item.TitleEN, item.TitleFR),
			ImageURL: s.resolve(item.ImageURL),
			MediaKey: item.MediaKey,
			Order:    item.SortOrder,
		})
	}

	for _, member := range src.leadership {
		bio, err := renderMarkdown(locale.Pick(lang, member.BioEN, member.BioFR))
		if err != nil {
			return nil, err
		}
		snapshot.Leadership = append(snapshot.Leadership, LeadershipView{
			ID:       member.ID,
			Name:     member.Name,
			Role:     locale.Pick(lang, member.RoleEN, member.RoleFR),
			Bio:      bio,
			Email:    member.Email,
			LinkedIn: member.LinkedIn,
			ImageURL: s.resolve(member.ImageURL),
			Order:    member.SortOrder,
		})
	}

	return snapshot, nil
}

func (s *SiteService) resolve(ref string) string {
	return storage.ResolveReference(s.baseURL, s.uploadPath, ref)
}

func wrapSection(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
