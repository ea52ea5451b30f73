package model

import "time"

// TeacherStatus 教师在职状态
type TeacherStatus string

const (
	TeacherActive   TeacherStatus = "ACTIVE"
	TeacherInactive TeacherStatus = "INACTIVE"
	TeacherRetired  TeacherStatus = "RETIRED"
)

// Teacher 教师档案，关联一个登录账户。
type Teacher struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	TeacherID  string        `gorm:"uniqueIndex;size:32;not null" json:"teacherId"`
	Name       string        `gorm:"size:64;not null" json:"name"`
	Gender     Gender        `gorm:"type:varchar(8)" json:"gender"`
	BirthDate  time.Time     `json:"birthDate"`
	Phone      string        `gorm:"size:32" json:"phone,omitempty"`
	Email      string        `gorm:"size:128" json:"email,omitempty"`
	Address    string        `json:"address,omitempty"`
	HireDate   time.Time     `json:"hireDate"`
	Department string        `gorm:"size:64" json:"department"`
	Position   string        `gorm:"size:64" json:"position"`
	Status     TeacherStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	Avatar     string        `json:"avatar,omitempty"`
	UserID     uint          `gorm:"index" json:"userId"`
	User       *User         `json:"user,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
