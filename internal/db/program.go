package db

import "gorm.io/datatypes"

// Program 定义社区项目，SortOrder 决定展示顺序
type Program struct {
	Record
	TitleEN       string                      `gorm:"size:255;not null" json:"title_en" yaml:"title_en"`
	TitleFR       string                      `gorm:"size:255;not null" json:"title_fr" yaml:"title_fr"`
	DescriptionEN string                      `gorm:"type:text" json:"description_en" yaml:"description_en"`
	DescriptionFR string                      `gorm:"type:text" json:"description_fr" yaml:"description_fr"`
	BulletsEN     datatypes.JSONSlice[string] `json:"bullets_en" yaml:"bullets_en"`
	BulletsFR     datatypes.JSONSlice[string] `json:"bullets_fr" yaml:"bullets_fr"`
	MediaKey      string                      `gorm:"size:255" json:"media_key" yaml:"media_key"`
	SortOrder     int                         `gorm:"index" json:"order" yaml:"order"`
}
