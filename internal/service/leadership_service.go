package service

import (
	"context"
	"strings"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

const leadershipMediaCategory = "leadership"

// LeadershipInput 是创建领导成员时接受的字段，email 与 linkedin 可留空。
type LeadershipInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	RoleEN   string `json:"role_en" validate:"required,max=255"`
	RoleFR   string `json:"role_fr" validate:"required,max=255"`
	BioEN    string `json:"bio_en"`
	BioFR    string `json:"bio_fr"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url,max=512"`
	ImageURL string `json:"image_url" validate:"max=1024"`
	Order    int    `json:"order" validate:"gte=0"`
}

func (in *LeadershipInput) normalize() {
	for _, field := range []*string{
		&in.Name, &in.RoleEN, &in.RoleFR, &in.BioEN, &in.BioFR, &in.Email, &in.LinkedIn, &in.ImageURL,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// LeadershipPatch 列出可修改的字段，nil 表示不修改。
type LeadershipPatch struct {
	Name     *string `json:"name"`
	RoleEN   *string `json:"role_en"`
	RoleFR   *string `json:"role_fr"`
	BioEN    *string `json:"bio_en"`
	BioFR    *string `json:"bio_fr"`
	Email    *string `json:"email"`
	LinkedIn *string `json:"linkedin"`
	ImageURL *string `json:"image_url"`
	Order    *int    `json:"order"`
}

func (p LeadershipPatch) empty() bool {
	return p.Name == nil && p.RoleEN == nil && p.RoleFR == nil && p.BioEN == nil && p.BioFR == nil &&
		p.Email == nil && p.LinkedIn == nil && p.ImageURL == nil && p.Order == nil
}

func (p LeadershipPatch) apply(input *LeadershipInput) {
	setString(&input.Name, p.Name)
	setString(&input.RoleEN, p.RoleEN)
	setString(&input.RoleFR, p.RoleFR)
	setString(&input.BioEN, p.BioEN)
	setString(&input.BioFR, p.BioFR)
	setString(&input.Email, p.Email)
	setString(&input.LinkedIn, p.LinkedIn)
	setString(&input.ImageURL, p.ImageURL)
	setInt(&input.Order, p.Order)
}

func leadershipInputFrom(item db.LeadershipMember) LeadershipInput {
	return LeadershipInput{
		Name:     item.Name,
		RoleEN:   item.RoleEN,
		RoleFR:   item.RoleFR,
		BioEN:    item.BioEN,
		BioFR:    item.BioFR,
		Email:    item.Email,
		LinkedIn: item.LinkedIn,
		ImageURL: item.ImageURL,
		Order:    item.SortOrder,
	}
}

func (in LeadershipInput) assign(item *db.LeadershipMember) {
	item.Name = in.Name
	item.RoleEN = in.RoleEN
	item.RoleFR = in.RoleFR
	item.BioEN = in.BioEN
	item.BioFR = in.BioFR
	item.Email = in.Email
	item.LinkedIn = in.LinkedIn
	item.ImageURL = in.ImageURL
	item.SortOrder = in.Order
}

// LeadershipService 管理领导团队成员。
type LeadershipService struct {
	store store[db.LeadershipMember]
	media *MediaService
}

// NewLeadershipService creates a LeadershipService instance.
func NewLeadershipService(gdb *gorm.DB, media *MediaService) *LeadershipService {
	return &LeadershipService{store: newStore[db.LeadershipMember](gdb, "leadership member"), media: media}
}

// List returns all members in display order.
func (s *LeadershipService) List(ctx context.Context) ([]db.LeadershipMember, error) {
	return s.store.list(ctx)
}

// Get fetches a member by id.
func (s *LeadershipService) Get(ctx context.Context, id string) (*db.LeadershipMember, error) {
	return s.store.get(ctx, id)
}

// Create inserts a new member.
func (s *LeadershipService) Create(ctx context.Context, input LeadershipInput) (*db.LeadershipMember, error) {
	return s.CreateWithImage(ctx, input, nil)
}

// CreateWithImage 上传头像并创建成员。
func (s *LeadershipService) CreateWithImage(ctx context.Context, input LeadershipInput, upload *Upload) (*db.LeadershipMember, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var item db.LeadershipMember
	_, err := s.media.WithUpload(ctx, upload, leadershipMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
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

// Update merges the supplied fields into an existing member.
func (s *LeadershipService) Update(ctx context.Context, id string, patch LeadershipPatch) (*db.LeadershipMember, error) {
	return s.UpdateWithImage(ctx, id, patch, nil)
}

// UpdateWithImage 合并字段并可选地替换头像。
func (s *LeadershipService) UpdateWithImage(ctx context.Context, id string, patch LeadershipPatch, upload *Upload) (*db.LeadershipMember, error) {
	if patch.empty() && upload == nil {
		return nil, ErrNoFieldsToUpdate
	}
	if _, err := s.store.get(ctx, id); err != nil {
		return nil, err
	}

	var updated *db.LeadershipMember
	_, err := s.media.WithUpload(ctx, upload, leadershipMediaCategory, func(tx *gorm.DB, asset *db.MediaAsset) error {
		item, err := s.store.withTx(tx).update(ctx, id, func(item *db.LeadershipMember) error {
			input := leadershipInputFrom(*item)
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

// Delete removes a member.
func (s *LeadershipService) Delete(ctx context.Context, id string) error {
	return s.store.delete(ctx, id)
}
