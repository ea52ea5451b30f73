package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"schooladmin.com/internal/api/middleware"
	"schooladmin.com/internal/domain"
	"schooladmin.com/internal/model"
)

// NoticeHandler 处理通知公告相关的 HTTP 请求
type NoticeHandler struct {
	noticeSvc domain.NoticeService
	log       *logrus.Logger
}

func NewNoticeHandler(noticeSvc domain.NoticeService, log *logrus.Logger) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc, log: log}
}

// List 获取通知列表。学生只能看到已发布的通知。
// GET /api/notices?page=1&pageSize=10
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	user := middleware.UserFromCtx(c)
	publishedOnly := user == nil || user.Role == model.RoleStudent

	notices, total, err := h.noticeSvc.ListNotices(c.Context(), page, pageSize, publishedOnly)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取通知列表成功", notices, page, pageSize, total)
}

// Get 获取通知详情
// GET /api/notices/:id
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的通知ID")
	}

	notice, err := h.noticeSvc.GetNotice(c.Context(), uint(id))
	if err != nil {
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取通知信息成功", notice)
}

type CreateNoticeRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	IsPublished bool   `json:"isPublished"`
}

// Create 创建通知，发布状态的通知会推送给在线客户端
// POST /api/notices
func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	var req CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.Title == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "title", Message: "标题不能为空"})
	}
	if req.Content == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "content", Message: "内容不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	notice := model.Notice{
		Title:       req.Title,
		Content:     req.Content,
		Type:        model.NoticeType(req.Type),
		IsPublished: req.IsPublished,
	}
	if notice.Type == "" {
		notice.Type = model.NoticeGeneral
	}

	if err := h.noticeSvc.CreateNotice(c.Context(), &notice); err != nil {
		return handleError(c, h.log, err)
	}

	return SendCreated(c, "创建通知成功", notice)
}

type UpdateNoticeRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Type        *string `json:"type"`
	IsPublished *bool   `json:"isPublished"`
}

// Update 更新通知
// PUT /api/notices/:id
func (h *NoticeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的通知ID")
	}

	var req UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	notice, err := h.noticeSvc.UpdateNotice(c.Context(), uint(id), updates)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "更新通知成功", notice)
}

// Delete 删除通知
// DELETE /api/notices/:id
func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的通知ID")
	}

	if err := h.noticeSvc.DeleteNotice(c.Context(), uint(id)); err != nil {
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "删除通知成功", nil)
}
