package model

import "time"

// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID            uint      `gorm:"index:idx_certificate_user_course,unique;not null" json:"userId"`
	CourseID          uint      `gorm:"index:idx_certificate_user_course,unique;not null" json:"courseId"`
	CertificateNumber string    `gorm:"size:64;unique;not null" json:"certificateNumber"`
	IssuedAt          time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
