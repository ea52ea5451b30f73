package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// AttendanceHandler 处理考勤相关的 HTTP 请求。只做存取，不做统计。
type AttendanceHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAttendanceHandler(db *gorm.DB, log *logrus.Logger) *AttendanceHandler {
	return &AttendanceHandler{db: db, log: log}
}

// List 获取考勤记录列表
// GET /api/attendances?page=1&pageSize=10&studentId=&status=&date=
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Attendance{})

	if studentID := c.QueryInt("studentId", 0); studentID > 0 {
		query = query.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		if day, err := time.Parse("2006-01-02", date); err == nil {
			query = query.Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var records []model.Attendance
	offset := (page - 1) * pageSize
	if err := query.Preload("Student").Preload("Teacher").
		Order("date DESC, id DESC").Limit(pageSize).Offset(offset).
		Find(&records).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取考勤列表成功", records, page, pageSize, total)
}

// Get 获取考勤详情
// GET /api/attendances/:id
func (h *AttendanceHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的考勤记录ID")
	}

	var record model.Attendance
	if err := h.db.Preload("Student").Preload("Teacher").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "考勤记录不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取考勤信息成功", record)
}

type CreateAttendanceRequest struct {
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	StudentID uint      `json:"studentId"`
	TeacherID *uint     `json:"teacherId"`
}

// Create 登记考勤
// POST /api/attendances
func (h *AttendanceHandler) Create(c *fiber.Ctx) error {
	var req CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.StudentID == 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "studentId", Message: "学生不能为空"})
	}
	if req.Status == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "status", Message: "考勤状态不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	record := model.Attendance{
		Date:      req.Date,
		Status:    model.AttendanceStatus(req.Status),
		Reason:    req.Reason,
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
	}
	if record.Date.IsZero() {
		record.Date = time.Now()
	}

	if err := h.db.Create(&record).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendCreated(c, "登记考勤成功", record)
}

type UpdateAttendanceRequest struct {
	Date      *time.Time `json:"date"`
	Status    *string    `json:"status"`
	Reason    *string    `json:"reason"`
	TeacherID *uint      `json:"teacherId"`
}

// Update 更新考勤
// PUT /api/attendances/:id
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的考勤记录ID")
	}

	var record model.Attendance
	if err := h.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "考勤记录不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Reason != nil {
		updates["reason"] = *req.Reason
	}
	if req.TeacherID != nil {
		updates["teacher_id"] = *req.TeacherID
	}

	if len(updates) > 0 {
		if err := h.db.Model(&record).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新考勤成功", record)
}

// Delete 删除考勤记录
// DELETE /api/attendances/:id
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的考勤记录ID")
	}

	result := h.db.Delete(&model.Attendance{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "考勤记录不存在")
	}

	return SendSuccess(c, "删除考勤成功", nil)
}
