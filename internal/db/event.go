package db

// Event 定义活动，日期以双语文本保存
type Event struct {
	Record
	DateEN     string `gorm:"size:120" json:"date_en" yaml:"date_en"`
	DateFR     string `gorm:"size:120" json:"date_fr" yaml:"date_fr"`
	TitleEN    string `gorm:"size:255;not null" json:"title_en" yaml:"title_en"`
	TitleFR    string `gorm:"size:255;not null" json:"title_fr" yaml:"title_fr"`
	LocationEN string `gorm:"size:255" json:"location_en" yaml:"location_en"`
	LocationFR string `gorm:"size:255" json:"location_fr" yaml:"location_fr"`
	SummaryEN  string `gorm:"type:text" json:"summary_en" yaml:"summary_en"`
	SummaryFR  string `gorm:"type:text" json:"summary_fr" yaml:"summary_fr"`
	MediaKey   string `gorm:"size:255" json:"media_key" yaml:"media_key"`
	ImageURL   string `gorm:"size:1024" json:"image_url" yaml:"image_url"`
	SortOrder  int    `gorm:"index" json:"order" yaml:"order"`
}
