package service

import (
	"context"
	"strings"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

// ProgramInput 是创建项目时接受的字段。
type ProgramInput struct {
	TitleEN       string   `json:"title_en" validate:"required,max=255"`
	TitleFR       string   `json:"title_fr" validate:"required,max=255"`
	DescriptionEN string   `json:"description_en"`
	DescriptionFR string   `json:"description_fr"`
	BulletsEN     []string `json:"bullets_en"`
	BulletsFR     []string `json:"bullets_fr"`
	MediaKey      string   `json:"media_key" validate:"max=255"`
	Order         int      `json:"order" validate:"gte=0"`
}

func (in *ProgramInput) normalize() {
	in.TitleEN = strings.TrimSpace(in.TitleEN)
	in.TitleFR = strings.TrimSpace(in.TitleFR)
	in.DescriptionEN = strings.TrimSpace(in.DescriptionEN)
	in.DescriptionFR = strings.TrimSpace(in.DescriptionFR)
	in.BulletsEN = trimList(in.BulletsEN)
	in.BulletsFR = trimList(in.BulletsFR)
	in.MediaKey = strings.TrimSpace(in.MediaKey)
}

// ProgramPatch 列出可修改的字段，nil 表示不修改。
type ProgramPatch struct {
	TitleEN       *string   `json:"title_en"`
	TitleFR       *string   `json:"title_fr"`
	DescriptionEN *string   `json:"description_en"`
	DescriptionFR *string   `json:"description_fr"`
	BulletsEN     *[]string `json:"bullets_en"`
	BulletsFR     *[]string `json:"bullets_fr"`
	MediaKey      *string   `json:"media_key"`
	Order         *int      `json:"order"`
}

func (p ProgramPatch) empty() bool {
	return p.TitleEN == nil && p.TitleFR == nil && p.DescriptionEN == nil && p.DescriptionFR == nil &&
		p.BulletsEN == nil && p.BulletsFR == nil && p.MediaKey == nil && p.Order == nil
}

func (p ProgramPatch) apply(input *ProgramInput) {
	setString(&input.TitleEN, p.TitleEN)
	setString(&input.TitleFR, p.TitleFR)
	setString(&input.DescriptionEN, p.DescriptionEN)
	setString(&input.DescriptionFR, p.DescriptionFR)
	if p.BulletsEN != nil {
		input.BulletsEN = *p.BulletsEN
	}
	if p.BulletsFR != nil {
		input.BulletsFR = *p.BulletsFR
	}
	setString(&input.MediaKey, p.MediaKey)
	setInt(&input.Order, p.Order)
}

func programInputFrom(item db.Program) ProgramInput {
	return ProgramInput{
		TitleEN:       item.TitleEN,
		TitleFR:       item.TitleFR,
		DescriptionEN: item.DescriptionEN,
		DescriptionFR: item.DescriptionFR,
		BulletsEN:     item.BulletsEN,
		BulletsFR:     item.BulletsFR,
		MediaKey:      item.MediaKey,
		Order:         item.SortOrder,
	}
}

func (in ProgramInput) assign(item *db.Program) {
	item.TitleEN = in.TitleEN
	item.TitleFR = in.TitleFR
	item.DescriptionEN = in.DescriptionEN
	item.DescriptionFR = in.DescriptionFR
	item.BulletsEN = in.BulletsEN
	item.BulletsFR = in.BulletsFR
	item.MediaKey = in.MediaKey
	item.SortOrder = in.Order
}

// ProgramService handles program CRUD.
type ProgramService struct {
	store store[db.Program]
}

// NewProgramService creates a ProgramService instance.
func NewProgramService(gdb *gorm.DB) *ProgramService {
	return &ProgramService{store: newStore[db.Program](gdb, "program")}
}

// List returns all programs in display order.
func (s *ProgramService) List(ctx context.Context) ([]db.Program, error) {
	return s.store.list(ctx)
}

// Get fetches a program by id.
func (s *ProgramService) Get(ctx context.Context, id string) (*db.Program, error) {
	return s.store.get(ctx, id)
}

// Create inserts a new program.
func (s *ProgramService) Create(ctx context.Context, input ProgramInput) (*db.Program, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var item db.Program
	input.assign(&item)
	if err := s.store.create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update merges the supplied fields into an existing program.
func (s *ProgramService) Update(ctx context.Context, id string, patch ProgramPatch) (*db.Program, error) {
	if patch.empty() {
		return nil, ErrNoFieldsToUpdate
	}
	return s.store.update(ctx, id, func(item *db.Program) error {
		input := programInputFrom(*item)
		patch.apply(&input)
		input.normalize()
		if err := validateStruct(input); err != nil {
			return err
		}
		input.assign(item)
		return nil
	})
}

// Delete removes a program.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	return s.store.delete(ctx, id)
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func setInt(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}
