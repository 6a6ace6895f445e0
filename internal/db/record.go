package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record 是所有内容记录共用的主键结构。
// Seq 为自增序号，仅用于相同 order 时按插入顺序排序；对外暴露的是不透明的 ID。
type Record struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement" json:"-" yaml:"-"`
	ID        string    `gorm:"size:36;uniqueIndex;not null" json:"id" yaml:"-"`
	CreatedAt time.Time `json:"-" yaml:"-"`
	UpdatedAt time.Time `json:"-" yaml:"-"`
}

// BeforeCreate 在写入前分配 ID。
func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Submission 是前台表单提交的公共字段，CreatedAt 只在创建时写入一次。
type Submission struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time `gorm:"index;not null;autoCreateTime:false" json:"created_at"`
}

// BeforeCreate 在写入前分配 ID。
func (s *Submission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
