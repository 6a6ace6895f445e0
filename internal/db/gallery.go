package db

// GalleryItem 定义相册图片
type GalleryItem struct {
	Record
	TitleEN   string `gorm:"size:255;not null" json:"title_en" yaml:"title_en"`
	TitleFR   string `gorm:"size:255;not null" json:"title_fr" yaml:"title_fr"`
	ImageURL  string `gorm:"size:1024" json:"image_url" yaml:"image_url"`
	MediaKey  string `gorm:"size:255" json:"media_key" yaml:"media_key"`
	SortOrder int    `gorm:"index" json:"order" yaml:"order"`
}

// TableName 固定表名。
func (GalleryItem) TableName() string {
	return "gallery_items"
}
