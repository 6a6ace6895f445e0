package db

// JoinSubmission 加入俱乐部的申请
type JoinSubmission struct {
	Submission
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	AgeGroup string `gorm:"size:120" json:"age_group"`
	Message  string `gorm:"type:text" json:"message"`
}

// DonateSubmission 捐款意向，仅记录承诺金额，不涉及支付
type DonateSubmission struct {
	Submission
	Name    string  `gorm:"size:255;not null" json:"name"`
	Email   string  `gorm:"size:255;not null" json:"email"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Message string  `gorm:"type:text" json:"message"`
}

// ContactSubmission 联系表单
type ContactSubmission struct {
	Submission
	FirstName string `gorm:"size:120;not null" json:"first_name"`
	LastName  string `gorm:"size:120;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:60" json:"phone"`
	Topic     string `gorm:"size:255" json:"topic"`
	Relation  string `gorm:"size:255" json:"relation"`
	City      string `gorm:"size:120" json:"city"`
	Message   string `gorm:"type:text;not null" json:"message"`
}
