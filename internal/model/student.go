package model

import "time"

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// StudentStatus 学籍状态
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentGraduated StudentStatus = "GRADUATED"
	StudentDropout   StudentStatus = "DROPOUT"
)

// Student 学生档案，关联一个登录账户，可选归属一个班级。
type Student struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	StudentID      string        `gorm:"uniqueIndex;size:32;not null" json:"studentId"`
	Name           string        `gorm:"size:64;not null" json:"name"`
	Gender         Gender        `gorm:"type:varchar(8)" json:"gender"`
	BirthDate      time.Time     `json:"birthDate"`
	Phone          string        `gorm:"size:32" json:"phone,omitempty"`
	Address        string        `json:"address,omitempty"`
	ParentName     string        `gorm:"size:64" json:"parentName,omitempty"`
	ParentPhone    string        `gorm:"size:32" json:"parentPhone,omitempty"`
	AdmissionDate  time.Time     `json:"admissionDate"`
	GraduationDate *time.Time    `json:"graduationDate,omitempty"`
	Status         StudentStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	Avatar         string        `json:"avatar,omitempty"`
	UserID         uint          `gorm:"index" json:"userId"`
	ClassID        *uint         `gorm:"index" json:"classId,omitempty"`
	User           *User         `json:"user,omitempty"`
	Class          *Class        `json:"class,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
