package constants

// Redis Pub/Sub 频道
const (
	// RedisChannelNotices 通知公告广播频道，多实例部署时保证各实例推送一致
	RedisChannelNotices = "school.notices"
)
