package db

// HeroContent 首页横幅文案，全站只有一条记录
type HeroContent struct {
	Record
	TitleEN    string `gorm:"type:text" json:"title_en" yaml:"title_en"`
	TitleFR    string `gorm:"type:text" json:"title_fr" yaml:"title_fr"`
	SubtitleEN string `gorm:"type:text" json:"subtitle_en" yaml:"subtitle_en"`
	SubtitleFR string `gorm:"type:text" json:"subtitle_fr" yaml:"subtitle_fr"`
	TaglineEN  string `gorm:"type:text" json:"tagline_en" yaml:"tagline_en"`
	TaglineFR  string `gorm:"type:text" json:"tagline_fr" yaml:"tagline_fr"`
	MediaKey   string `gorm:"size:255" json:"media_key" yaml:"media_key"`
}

// TableName 固定表名。
func (HeroContent) TableName() string {
	return "hero_content"
}

// AboutContent 关于我们、使命与愿景，全站只有一条记录
type AboutContent struct {
	Record
	AboutEN   string `gorm:"type:text" json:"about_en" yaml:"about_en"`
	AboutFR   string `gorm:"type:text" json:"about_fr" yaml:"about_fr"`
	MissionEN string `gorm:"type:text" json:"mission_en" yaml:"mission_en"`
	MissionFR string `gorm:"type:text" json:"mission_fr" yaml:"mission_fr"`
	VisionEN  string `gorm:"type:text" json:"vision_en" yaml:"vision_en"`
	VisionFR  string `gorm:"type:text" json:"vision_fr" yaml:"vision_fr"`
}

// TableName 固定表名。
func (AboutContent) TableName() string {
	return "about_content"
}
