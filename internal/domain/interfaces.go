package domain

import (
	"context"

	"schooladmin.com/internal/model"
)

// ===========================
// 通知服务接口
// ===========================

// NoticeService 定义通知公告相关的业务操作
type NoticeService interface {
	// 获取通知列表
	ListNotices(ctx context.Context, page, pageSize int, publishedOnly bool) ([]model.Notice, int64, error)
	// 获取通知详情
	GetNotice(ctx context.Context, id uint) (*model.Notice, error)
	// 创建通知
	CreateNotice(ctx context.Context, notice *model.Notice) error
	// 更新通知
	UpdateNotice(ctx context.Context, id uint, updates map[string]interface{}) (*model.Notice, error)
	// 删除通知
	DeleteNotice(ctx context.Context, id uint) error
}

// ===========================
// WebSocket 推送接口
// ===========================

// Notifier 定义推送通知的接口
type Notifier interface {
	// 广播消息给所有连接的客户端
	BroadcastToAll(data interface{})
	// 推送消息给指定用户的所有连接
	PushToUser(userID string, data interface{})
}
