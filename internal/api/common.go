package api

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"schooladmin.com/internal/domain"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response 统一响应信封
type Response struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Data       interface{}  `json:"data,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPages"`
}

// SendSuccess 发送成功响应
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

// SendCreated 发送 201 创建成功响应
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: message, Data: data})
}

// SendError 发送失败响应
func SendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// SendValidationErrors 发送 400，附带逐字段错误明细
func SendValidationErrors(c *fiber.Ctx, fieldErrors []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: "请求数据验证失败",
		Errors:  fieldErrors,
	})
}

// SendPaginated 发送标准的分页响应
func SendPaginated(c *fiber.Ctx, message string, data interface{}, page, pageSize int, total int64) error {
	totalPage := 0
	if pageSize > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
		Pagination: &Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// handleError 将业务错误映射为响应信封。内部错误只记日志，
// 对外返回通用消息。
func handleError(c *fiber.Ctx, log *logrus.Logger, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			log.WithError(appErr.Err).Error(appErr.Message)
			return SendError(c, appErr.Code, "服务器内部错误")
		}
		return SendError(c, appErr.Code, appErr.Message)
	}

	log.WithError(err).Error("unhandled error")
	return SendError(c, fiber.StatusInternalServerError, "服务器内部错误")
}

// parsePaging 解析分页查询参数并套用默认值与上限
func parsePaging(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	pageSize = c.QueryInt("pageSize", 10)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
