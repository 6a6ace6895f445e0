package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosecsite/internal/db"
	"gorm.io/gorm"
)

// 表单类型，对应 /forms/{variant}
const (
	FormJoin    = "join"
	FormDonate  = "donate"
	FormContact = "contact"
)

// ErrUnknownFormVariant 表示不存在的表单类型。
var ErrUnknownFormVariant = fmt.Errorf("form variant %w", ErrNotFound)

// JoinInput 是加入申请表单。
type JoinInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	AgeGroup string `json:"age_group" validate:"max=120"`
	Message  string `json:"message"`
}

// DonateInput 是捐款意向表单。
type DonateInput struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Amount  float64 `json:"amount" validate:"gt=0"`
	Message string  `json:"message"`
}

// ContactInput 是联系表单。
type ContactInput struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"max=60"`
	Topic     string `json:"topic" validate:"max=255"`
	Relation  string `json:"relation" validate:"max=255"`
	City      string `json:"city" validate:"max=120"`
	Message   string `json:"message" validate:"required"`
}

// FormService 保存访客提交的表单；提交后不可修改，只能由管理员查看或删除。
type FormService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFormService creates a FormService instance.
func NewFormService(gdb *gorm.DB) *FormService {
	return &FormService{db: gdb, now: time.Now}
}

// WithClock 替换时间来源，测试使用。
func (s *FormService) WithClock(now func() time.Time) *FormService {
	s.now = now
	return s
}

// SubmitJoin stores a join request.
// 访客文本只去掉首尾空白后原样保存，由展示端负责转义。
func (s *FormService) SubmitJoin(ctx context.Context, input JoinInput) (*db.JoinSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.AgeGroup = strings.TrimSpace(input.AgeGroup)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	record := db.JoinSubmission{
		Submission: s.stamp(),
		Name:       input.Name,
		Email:      input.Email,
		AgeGroup:   input.AgeGroup,
		Message:    input.Message,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// SubmitDonate stores a donation pledge.
func (s *FormService) SubmitDonate(ctx context.Context, input DonateInput) (*db.DonateSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	record := db.DonateSubmission{
		Submission: s.stamp(),
		Name:       input.Name,
		Email:      input.Email,
		Amount:     input.Amount,
		Message:    input.Message,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// SubmitContact stores a contact message.
func (s *FormService) SubmitContact(ctx context.Context, input ContactInput) (*db.ContactSubmission, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Topic = strings.TrimSpace(input.Topic)
	input.Relation = strings.TrimSpace(input.Relation)
	input.City = strings.TrimSpace(input.City)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	record := db.ContactSubmission{
		Submission: s.stamp(),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Topic:      input.Topic,
		Relation:   input.Relation,
		City:       input.City,
		Message:    input.Message,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List 返回某类表单的全部提交，最新的在前。
func (s *FormService) List(ctx context.Context, variant string) (interface{}, error) {
	switch variant {
	case FormJoin:
		return listSubmissions[db.JoinSubmission](ctx, s.db)
	case FormDonate:
		return listSubmissions[db.DonateSubmission](ctx, s.db)
	case FormContact:
		return listSubmissions[db.ContactSubmission](ctx, s.db)
	default:
		return nil, ErrUnknownFormVariant
	}
}

// Get 返回单条提交。
func (s *FormService) Get(ctx context.Context, variant, id string) (interface{}, error) {
	switch variant {
	case FormJoin:
		return getSubmission[db.JoinSubmission](ctx, s.db, variant, id)
	case FormDonate:
		return getSubmission[db.DonateSubmission](ctx, s.db, variant, id)
	case FormContact:
		return getSubmission[db.ContactSubmission](ctx, s.db, variant, id)
	default:
		return nil, ErrUnknownFormVariant
	}
}

// Delete 删除单条提交。
func (s *FormService) Delete(ctx context.Context, variant, id string) error {
	switch variant {
	case FormJoin:
		return deleteSubmission[db.JoinSubmission](ctx, s.db, variant, id)
	case FormDonate:
		return deleteSubmission[db.DonateSubmission](ctx, s.db, variant, id)
	case FormContact:
		return deleteSubmission[db.ContactSubmission](ctx, s.db, variant, id)
	default:
		return ErrUnknownFormVariant
	}
}

// stamp 由服务端写入提交时间，精确到微秒以兼容各数据库。
func (s *FormService) stamp() db.Submission {
	return db.Submission{CreatedAt: s.now().UTC().Truncate(time.Microsecond)}
}

func listSubmissions[T any](ctx context.Context, gdb *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	if err := gdb.WithContext(ctx).Order("created_at DESC").Order("seq DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func getSubmission[T any](ctx context.Context, gdb *gorm.DB, variant, id string) (*T, error) {
	var item T
	if err := gdb.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(variant+" submission", id)
		}
		return nil, err
	}
	return &item, nil
}

func deleteSubmission[T any](ctx context.Context, gdb *gorm.DB, variant, id string) error {
	result := gdb.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(variant+" submission", id)
	}
	return nil
}
