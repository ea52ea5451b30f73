package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/constants"
	"schooladmin.com/internal/domain"
	"schooladmin.com/internal/event"
	"schooladmin.com/internal/model"
)

// NoticeServiceImpl 实现 domain.NoticeService 接口。
// 发布动作会向事件总线发出事件，由订阅方转发到 Redis 频道并最终
// 推送给在线的 WebSocket 客户端。
type NoticeServiceImpl struct {
	db  *gorm.DB
	bus *event.Bus
	log *logrus.Logger
}

// NewNoticeService 创建通知服务
func NewNoticeService(db *gorm.DB, bus *event.Bus, log *logrus.Logger) *NoticeServiceImpl {
	return &NoticeServiceImpl{db: db, bus: bus, log: log}
}

// ListNotices 分页获取通知列表
func (s *NoticeServiceImpl) ListNotices(ctx context.Context, page, pageSize int, publishedOnly bool) ([]model.Notice, int64, error) {
	var notices []model.Notice
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Notice{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count notices", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&notices).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to fetch notices", err)
	}

	return notices, total, nil
}

// GetNotice 获取通知详情
func (s *NoticeServiceImpl) GetNotice(ctx context.Context, id uint) (*model.Notice, error) {
	var notice model.Notice
	if err := s.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("notice not found")
		}
		return nil, domain.NewInternalError("failed to fetch notice", err)
	}
	return &notice, nil
}

// CreateNotice 创建通知，若创建即发布则触发推送事件
func (s *NoticeServiceImpl) CreateNotice(ctx context.Context, notice *model.Notice) error {
	if err := s.db.WithContext(ctx).Create(notice).Error; err != nil {
		return domain.NewInternalError("failed to create notice", err)
	}

	if notice.IsPublished {
		s.publishEvent(constants.EventNoticePublished, notice)
	}

	s.log.WithFields(logrus.Fields{
		"noticeId":  notice.ID,
		"published": notice.IsPublished,
	}).Info("notice created")
	return nil
}

// UpdateNotice 更新通知，从未发布变为发布时触发推送事件
func (s *NoticeServiceImpl) UpdateNotice(ctx context.Context, id uint, updates map[string]interface{}) (*model.Notice, error) {
	notice, err := s.GetNotice(ctx, id)
	if err != nil {
		return nil, err
	}

	wasPublished := notice.IsPublished

	if err := s.db.WithContext(ctx).Model(notice).Updates(updates).Error; err != nil {
		return nil, domain.NewInternalError("failed to update notice", err)
	}

	if !wasPublished && notice.IsPublished {
		s.publishEvent(constants.EventNoticePublished, notice)
	} else if notice.IsPublished {
		s.publishEvent(constants.EventNoticeUpdated, notice)
	}

	return notice, nil
}

// DeleteNotice 删除通知
func (s *NoticeServiceImpl) DeleteNotice(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Notice{}, id)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete notice", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("notice not found")
	}

	s.publishEvent(constants.EventNoticeDeleted, &model.Notice{ID: id})
	return nil
}

func (s *NoticeServiceImpl) publishEvent(eventType string, notice *model.Notice) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{
		Type:   eventType,
		Source: "notice-service",
		Data:   notice,
	})
}

// 确保实现了接口
var _ domain.NoticeService = (*NoticeServiceImpl)(nil)
