package model

import "time"

// NoticeType 通知类型
type NoticeType string

const (
	NoticeGeneral        NoticeType = "GENERAL"
	NoticeAcademic       NoticeType = "ACADEMIC"
	NoticeAdministrative NoticeType = "ADMINISTRATIVE"
	NoticeEmergency      NoticeType = "EMERGENCY"
)

// Notice 系统通知公告。发布后会通过 WebSocket 推送给在线客户端。
type Notice struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:128;not null" json:"title"`
	Content     string     `gorm:"not null" json:"content"`
	Type        NoticeType `gorm:"type:varchar(16);default:'GENERAL'" json:"type"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
