package db

import "time"

// MediaAsset 记录一次图片上传，Key 为存储键，URL 为对外引用路径
type MediaAsset struct {
	Record
	Key          string    `gorm:"size:255;uniqueIndex;not null" json:"key"`
	URL          string    `gorm:"size:1024;not null" json:"url"`
	ThumbnailURL string    `gorm:"size:1024" json:"thumbnail_url"`
	ContentType  string    `gorm:"size:60;not null" json:"content_type"`
	Size         int64     `json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	AltEN        string    `gorm:"size:512" json:"alt_en"`
	AltFR        string    `gorm:"size:512" json:"alt_fr"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
