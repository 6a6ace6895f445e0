package service

import (
	"context"
	"strings"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

const eventMediaCategory = "events"

// EventInput 是创建活动时接受的字段，日期为展示用的双语文本。
type EventInput struct {
	DateEN     string `json:"date_en" validate:"max=120"`
	DateFR     string `json:"date_fr" validate:"max=120"`
	TitleEN    string `json:"title_en" validate:"required,max=255"`
	TitleFR    string `json:"title_fr" validate:"required,max=255"`
	LocationEN string `json:"location_en" validate:"max=255"`
	LocationFR string `json:"location_fr" validate:"max=255"`
	SummaryEN  string `json:"summary_en"`
	SummaryFR  string `json:"summary_fr"`
	MediaKey   string `json:"media_key" validate:"max=255"`
	ImageURL   string `json:"image_url" validate:"max=1024"`
	Order      int    `json:"order" validate:"gte=0"`
}

func (in *EventInput) normalize() {
	for _, field := range []*string{
		&in.DateEN, &in.DateFR, &in.TitleEN, &in.TitleFR, &in.LocationEN, &in.LocationFR,
		&in.SummaryEN, &in.SummaryFR, &in.MediaKey, &in.ImageURL,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// EventPatch 列出可修改的字段，nil 表示不修改。
type EventPatch struct {
	DateEN     *string `json:"date_en"`
	DateFR     *string `json:"date_fr"`
	TitleEN    *string `json:"title_en"`
	TitleFR    *string `json:"title_fr"`
	LocationEN *string `json:"location_en"`
	LocationFR *string `json:"location_fr"`
	SummaryEN  *string `json:"summary_en"`
	SummaryFR  *string `json:"summary_fr"`
	MediaKey   *string `json:"media_key"`
	ImageURL   *string `json:"image_url"`
	Order      *int    `json:"order"`
}

func (p EventPatch) empty() bool {
	return p.DateEN == nil && p.DateFR == nil && p.TitleEN == nil && p.TitleFR == nil &&
		p.LocationEN == nil && p.LocationFR == nil && p.SummaryEN == nil && p.SummaryFR == nil &&
		p.MediaKey == nil && p.ImageURL == nil && p.Order == nil
}

func (p EventPatch) apply(input *EventInput) {
	setString(&input.DateEN, p.DateEN)
	setString(&input.DateFR, p.DateFR)
	setString(&input.TitleEN, p.TitleEN)
	setString(&input.TitleFR, p.TitleFR)
	setString(&input.LocationEN, p.LocationEN)
	setString(&input.LocationFR, p.LocationFR)
	setString(&input.SummaryEN, p.SummaryEN)
	setString(&input.SummaryFR, p.SummaryFR)
	setString(&input.MediaKey, p.MediaKey)
	setString(&input.ImageURL, p.ImageURL)
	setInt(&input.Order, p.Order)
}

func eventInputFrom(item db.Event) EventInput {
	return EventInput{
		DateEN:     item.DateEN,
		DateFR:     item.DateFR,
		TitleEN:    item.TitleEN,
		TitleFR:    item.TitleFR,
		LocationEN: item.LocationEN,
		LocationFR: item.LocationFR,
		SummaryEN:  item.SummaryEN,
		SummaryFR:  item.SummaryFR,
		MediaKey:   item.MediaKey,
		ImageURL:   item.ImageURL,
		Order:      item.SortOrder,
	}
}

func (in EventInput) assign(item *db.Event) {
	item.DateEN = in.DateEN
	item.DateFR = in.DateFR
	item.TitleEN = in.TitleEN
	item.TitleFR = in.TitleFR
	item.LocationEN = in.LocationEN
	item.LocationFR = in.LocationFR
	item.SummaryEN = in.SummaryEN
	item.SummaryFR = in.SummaryFR
	item.MediaKey = in.MediaKey
	item.ImageURL = in.ImageURL
	item.SortOrder = in.Order
}

// EventService handles event CRUD, including the upload-then-write variants.
type EventService struct {
	store store[db.Event]
	media *MediaService
}

// NewEventService creates an EventService instance.
func NewEventService(gdb *gorm.DB, media *MediaService) *EventService {
	return &EventService{store: newStore[db.Event](gdb, "event"), media: media}
}

// List returns all events in display order.
func (s *EventService) List(ctx context.Context) ([]db.Event, error) {
	return s.store.list(ctx)
}

// Get fetches an event by id.
func (s *EventService) Get(ctx context.Context, id string) (*db.Event, error) {
	return s.store.get(ctx, id)
}

// Create inserts a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*db.Event, error) {
	return s.CreateWithImage(ctx, input, nil)
}

// CreateWithImage 上传图片并创建活动，image_url 指向新图片；任一步失败都不会留下记录。
func (s *EventService) CreateWithImage(ctx context.Context, input EventInput, upload *Upload) (*db.Event, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var item db.Event
	_, err := s.media.WithUpload(ctx, upload, eventMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
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

// Update merges the supplied fields into an existing event.
func (s *EventService) Update(ctx context.Context, id string, patch EventPatch) (*db.Event, error) {
	return s.UpdateWithImage(ctx, id, patch, nil)
}

// UpdateWithImage 合并字段并可选地替换图片，旧图片保留在存储中。
func (s *EventService) UpdateWithImage(ctx context.Context, id string, patch EventPatch, upload *Upload) (*db.Event, error) {
	if patch.empty() && upload == nil {
		return nil, ErrNoFieldsToUpdate
	}
	if _, err := s.store.get(ctx, id); err != nil {
		return nil, err
	}

	var updated *db.Event
	_, err := s.media.WithUpload(ctx, upload, eventMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
		item, err := s.store.withTx(tx).update(ctx, id, func(item *db.Event) error {
			input := eventInputFrom(*item)
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

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.store.delete(ctx, id)
}
