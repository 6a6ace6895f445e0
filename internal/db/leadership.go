package db

// LeadershipMember 用于保存领导团队成员介绍
// Email 与 LinkedIn 为可选项，为空时前台不展示
type LeadershipMember struct {
	Record
	Name      string `gorm:"size:120;not null" json:"name" yaml:"name"`
	RoleEN    string `gorm:"size:255" json:"role_en" yaml:"role_en"`
	RoleFR    string `gorm:"size:255" json:"role_fr" yaml:"role_fr"`
	BioEN     string `gorm:"type:text" json:"bio_en" yaml:"bio_en"`
	BioFR     string `gorm:"type:text" json:"bio_fr" yaml:"bio_fr"`
	Email     string `gorm:"size:255" json:"email" yaml:"email"`
	LinkedIn  string `gorm:"column:linkedin;size:512" json:"linkedin" yaml:"linkedin"`
	ImageURL  string `gorm:"size:1024" json:"image_url" yaml:"image_url"`
	SortOrder int    `gorm:"index" json:"order" yaml:"order"`
}

// TableName 返回自定义表名
func (LeadershipMember) TableName() string {
	return "leadership_members"
}
