package service

import (
	"context"
	"errors"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

// HeroPatch 列出首页横幅可修改的字段。
type HeroPatch struct {
	TitleEN    *string `json:"title_en"`
	TitleFR    *string `json:"title_fr"`
	SubtitleEN *string `json:"subtitle_en"`
	SubtitleFR *string `json:"subtitle_fr"`
	TaglineEN  *string `json:"tagline_en"`
	TaglineFR  *string `json:"tagline_fr"`
	MediaKey   *string `json:"media_key"`
}

func (p HeroPatch) fields() []*string {
	return []*string{p.TitleEN, p.TitleFR, p.SubtitleEN, p.SubtitleFR, p.TaglineEN, p.TaglineFR, p.MediaKey}
}

func (p HeroPatch) apply(hero *db.HeroContent) {
	setString(&hero.TitleEN, p.TitleEN)
	setString(&hero.TitleFR, p.TitleFR)
	setString(&hero.SubtitleEN, p.SubtitleEN)
	setString(&hero.SubtitleFR, p.SubtitleFR)
	setString(&hero.TaglineEN, p.TaglineEN)
	setString(&hero.TaglineFR, p.TaglineFR)
	setString(&hero.MediaKey, p.MediaKey)
}

// AboutPatch 列出关于我们可修改的字段。
type AboutPatch struct {
	AboutEN   *string `json:"about_en"`
	AboutFR   *string `json:"about_fr"`
	MissionEN *string `json:"mission_en"`
	MissionFR *string `json:"mission_fr"`
	VisionEN  *string `json:"vision_en"`
	VisionFR  *string `json:"vision_fr"`
}

func (p AboutPatch) fields() []*string {
	return []*string{p.AboutEN, p.AboutFR, p.MissionEN, p.MissionFR, p.VisionEN, p.VisionFR}
}

func (p AboutPatch) apply(about *db.AboutContent) {
	setString(&about.AboutEN, p.AboutEN)
	setString(&about.AboutFR, p.AboutFR)
	setString(&about.MissionEN, p.MissionEN)
	setString(&about.MissionFR, p.MissionFR)
	setString(&about.VisionEN, p.VisionEN)
	setString(&about.VisionFR, p.VisionFR)
}

// ContentService 管理 hero / about 两条单例记录。
// 单例不会被删除，缺失时用默认文案补建。
type ContentService struct {
	db           *gorm.DB
	defaultHero  db.HeroContent
	defaultAbout db.AboutContent
}

// NewContentService creates a ContentService; the defaults fill a missing singleton.
func NewContentService(gdb *gorm.DB, hero db.HeroContent, about db.AboutContent) *ContentService {
	return &ContentService{db: gdb, defaultHero: hero, defaultAbout: about}
}

// Hero 返回首页横幅，不存在时写入默认值。
func (s *ContentService) Hero(ctx context.Context) (*db.HeroContent, error) {
	hero := s.defaultHero
	hero.Record = db.Record{}
	if err := loadSingleton(s.db.WithContext(ctx), &hero); err != nil {
		return nil, err
	}
	return &hero, nil
}

// UpdateHero 合并提供的字段。
func (s *ContentService) UpdateHero(ctx context.Context, patch HeroPatch) (*db.HeroContent, error) {
	if !anySet(patch.fields()) {
		return nil, ErrNoFieldsToUpdate
	}
	for _, field := range patch.fields() {
		trimPtr(field)
	}

	hero := s.defaultHero
	hero.Record = db.Record{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadSingleton(tx, &hero); err != nil {
			return err
		}
		patch.apply(&hero)
		return tx.Save(&hero).Error
	})
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

// About 返回关于我们，不存在时写入默认值。
func (s *ContentService) About(ctx context.Context) (*db.AboutContent, error) {
	about := s.defaultAbout
	about.Record = db.Record{}
	if err := loadSingleton(s.db.WithContext(ctx), &about); err != nil {
		return nil, err
	}
	return &about, nil
}

// UpdateAbout 合并提供的字段。
func (s *ContentService) UpdateAbout(ctx context.Context, patch AboutPatch) (*db.AboutContent, error) {
	if !anySet(patch.fields()) {
		return nil, ErrNoFieldsToUpdate
	}
	for _, field := range patch.fields() {
		trimPtr(field)
	}

	about := s.defaultAbout
	about.Record = db.Record{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadSingleton(tx, &about); err != nil {
			return err
		}
		patch.apply(&about)
		return tx.Save(&about).Error
	})
	if err != nil {
		return nil, err
	}
	return &about, nil
}

// loadSingleton 读取最早的一条记录到 dst；表为空时把 dst 当前的值作为默认记录写入。
// 并发首次访问可能多写一行，读取始终取 seq 最小的那条，多出的行不会被使用。
func loadSingleton[T any](gdb *gorm.DB, dst *T) error {
	var existing T
	err := gdb.Order("seq ASC").First(&existing).Error
	if err == nil {
		*dst = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return gdb.Create(dst).Error
}

func anySet(fields []*string) bool {
	for _, field := range fields {
		if field != nil {
			return true
		}
	}
	return false
}
