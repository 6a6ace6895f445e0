package service

import (
	"context"
	"strings"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

const galleryMediaCategory = "gallery"

// GalleryInput represents fields accepted when creating a gallery item.
type GalleryInput struct {
	TitleEN  string `json:"title_en" validate:"required,max=255"`
	TitleFR  string `json:"title_fr" validate:"required,max=255"`
	ImageURL string `json:"image_url" validate:"required_without=MediaKey,max=1024"`
	MediaKey string `json:"media_key" validate:"max=255"`
	Order    int    `json:"order" validate:"gte=0"`
}

func (in *GalleryInput) normalize() {
	in.TitleEN = strings.TrimSpace(in.TitleEN)
	in.TitleFR = strings.TrimSpace(in.TitleFR)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.MediaKey = strings.TrimSpace(in.MediaKey)
}

// GalleryPatch 列出可修改的字段，nil 表示不修改。
type GalleryPatch struct {
	TitleEN  *string `json:"title_en"`
	TitleFR  *string `json:"title_fr"`
	ImageURL *string `json:"image_url"`
	MediaKey *string `json:"media_key"`
	Order    *int    `json:"order"`
}

func (p GalleryPatch) empty() bool {
	return p.TitleEN == nil && p.TitleFR == nil && p.ImageURL == nil && p.MediaKey == nil && p.Order == nil
}

func (p GalleryPatch) apply(input *GalleryInput) {
	setString(&input.TitleEN, p.TitleEN)
	setString(&input.TitleFR, p.TitleFR)
	setString(&input.ImageURL, p.ImageURL)
	setString(&input.MediaKey, p.MediaKey)
	setInt(&input.Order, p.Order)
}

func galleryInputFrom(item db.GalleryItem) GalleryInput {
	return GalleryInput{
		TitleEN:  item.TitleEN,
		TitleFR:  item.TitleFR,
		ImageURL: item.ImageURL,
		MediaKey: item.MediaKey,
		Order:    item.SortOrder,
	}
}

func (in GalleryInput) assign(item *db.GalleryItem) {
	item.TitleEN = in.TitleEN
	item.TitleFR = in.TitleFR
	item.ImageURL = in.ImageURL
	item.MediaKey = in.MediaKey
	item.SortOrder = in.Order
}

// GalleryService handles gallery CRUD.
type GalleryService struct {
	store store[db.GalleryItem]
	media *MediaService
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB, media *MediaService) *GalleryService {
	return &GalleryService{store: newStore[db.GalleryItem](gdb, "gallery item"), media: media}
}

// List returns all gallery items in display order.
func (s *GalleryService) List(ctx context.Context) ([]db.GalleryItem, error) {
	return s.store.list(ctx)
}

// Get fetches a gallery item by id.
func (s *GalleryService) Get(ctx context.Context, id string) (*db.GalleryItem, error) {
	return s.store.get(ctx, id)
}

// Create inserts a new gallery item; image_url or media_key must be set.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (*db.GalleryItem, error) {
	return s.CreateWithImage(ctx, input, nil)
}

// CreateWithImage 上传图片并创建作品，上传的图片优先于请求里的 image_url。
func (s *GalleryService) CreateWithImage(ctx context.Context, input GalleryInput, upload *Upload) (*db.GalleryItem, error) {
	input.normalize()
	check := input
	if upload != nil && check.ImageURL == "" {
		// 图片稍后才有地址，先用占位值通过必填校验
		check.ImageURL = "upload"
	}
	if err := validateStruct(check); err != nil {
		return nil, err
	}

	var item db.GalleryItem
	_, err := s.media.WithUpload(ctx, upload, galleryMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
		if asset != nil {
			input.ImageURL = asset.URL
		}
		input.assign(&item)
		return s.store.withTx(tx).create(ctx, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update merges the supplied fields into an existing gallery item.
func (s *GalleryService) Update(ctx context.Context, id string, patch GalleryPatch) (*db.GalleryItem, error) {
	return s.UpdateWithImage(ctx, id, patch, nil)
}

// UpdateWithImage 合并字段并可选地替换图片；上传失败时原记录保持不变。
func (s *GalleryService) UpdateWithImage(ctx context.Context, id string, patch GalleryPatch, upload *Upload) (*db.GalleryItem, error) {
	if patch.empty() && upload == nil {
		return nil, ErrNoFieldsToUpdate
	}
	if _, err := s.store.get(ctx, id); err != nil {
		return nil, err
	}

	var updated *db.GalleryItem
	_, err := s.media.WithUpload(ctx, upload, galleryMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
		item, err := s.store.withTx(tx).update(ctx, id, func(item *db.GalleryItem) error {
			input := galleryInputFrom(*item)
			patch.apply(&input)
			if asset != nil {
				input.ImageURL = asset.URL
			}
			input.normalize()
			if err := validateStruct(input); err != nil {
				return err
			}
			input.assign(item)
			return nil
		})
		updated = item
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a gallery item.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	return s.store.delete(ctx, id)
}
