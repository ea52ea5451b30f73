package model

import "time"

// ClassStatus 班级状态
type ClassStatus string

const (
	ClassActive    ClassStatus = "ACTIVE"
	ClassInactive  ClassStatus = "INACTIVE"
	ClassGraduated ClassStatus = "GRADUATED"
)

// Class 班级，可选指定一位班主任。
type Class struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Grade       string      `gorm:"size:32;not null" json:"grade"`
	Description string      `json:"description,omitempty"`
	Capacity    int         `gorm:"default:50" json:"capacity"`
	Status      ClassStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	TeacherID   *uint       `gorm:"index" json:"teacherId,omitempty"`
	Teacher     *Teacher    `json:"teacher,omitempty"`
	Students    []Student   `json:"students,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
