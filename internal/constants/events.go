package constants

// 事件类型常量
const (
	// 通知事件
	EventNoticePublished = "notice.published"
	EventNoticeUpdated   = "notice.updated"
	EventNoticeDeleted   = "notice.deleted"
)
