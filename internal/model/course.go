package model

import "time"

// CourseStatus 课程状态
type CourseStatus string

const (
	CourseActive   CourseStatus = "ACTIVE"
	CourseInactive CourseStatus = "INACTIVE"
)

// EnrollmentStatus 选课状态
type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "ACTIVE"
	EnrollmentDropped EnrollmentStatus = "DROPPED"
)

// Course 课程，可选归属一个班级与一位授课教师。
type Course struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:64;not null" json:"name"`
	Code        string       `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Description string       `json:"description,omitempty"`
	Credits     int          `gorm:"default:1" json:"credits"`
	Hours       int          `gorm:"default:16" json:"hours"`
	Status      CourseStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	TeacherID   *uint        `gorm:"index" json:"teacherId,omitempty"`
	ClassID     *uint        `gorm:"index" json:"classId,omitempty"`
	Teacher     *Teacher     `json:"teacher,omitempty"`
	Class       *Class       `json:"class,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Enrollment 学生选课记录，学生与课程的组合唯一。
type Enrollment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	StudentID uint             `gorm:"index;uniqueIndex:idx_student_course" json:"studentId"`
	CourseID  uint             `gorm:"uniqueIndex:idx_student_course" json:"courseId"`
	Status    EnrollmentStatus `gorm:"type:varchar(16);default:'ACTIVE'" json:"status"`
	Student   *Student         `json:"student,omitempty"`
	Course    *Course          `json:"course,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
