package model

import "time"

// GradeType 成绩类型
type GradeType string

const (
	GradeMidterm    GradeType = "MIDTERM"
	GradeFinal      GradeType = "FINAL"
	GradeAssignment GradeType = "ASSIGNMENT"
	GradeQuiz       GradeType = "QUIZ"
)

// AttendanceStatus 考勤状态
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Grade 单次成绩记录。不做任何汇总计算，原样存取。
type Grade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Score     float64   `gorm:"not null" json:"score"`
	Type      GradeType `gorm:"type:varchar(16);not null" json:"type"`
	Comment   string    `json:"comment,omitempty"`
	StudentID uint      `gorm:"index;not null" json:"studentId"`
	CourseID  uint      `gorm:"index;not null" json:"courseId"`
	Student   *Student  `json:"student,omitempty"`
	Course    *Course   `json:"course,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Attendance 单日考勤记录，可选记录登记教师。
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Date      time.Time        `gorm:"index;not null" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(16);not null" json:"status"`
	Reason    string           `json:"reason,omitempty"`
	StudentID uint             `gorm:"index;not null" json:"studentId"`
	TeacherID *uint            `gorm:"index" json:"teacherId,omitempty"`
	Student   *Student         `json:"student,omitempty"`
	Teacher   *Teacher         `json:"teacher,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
