package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// TeacherHandler 处理教师档案相关的 HTTP 请求
type TeacherHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewTeacherHandler(db *gorm.DB, log *logrus.Logger) *TeacherHandler {
	return &TeacherHandler{db: db, log: log}
}

// List 获取教师列表
// GET /api/teachers?page=1&pageSize=10&search=&department=&status=
func (h *TeacherHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Teacher{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR teacher_id LIKE ?", search+"%", search+"%")
	}
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var teachers []model.Teacher
	offset := (page - 1) * pageSize
	if err := query.Preload("User").
		Order("id ASC").Limit(pageSize).Offset(offset).
		Find(&teachers).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取教师列表成功", teachers, page, pageSize, total)
}

// Get 获取教师详情
// GET /api/teachers/:id
func (h *TeacherHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的教师ID")
	}

	var teacher model.Teacher
	if err := h.db.Preload("User").First(&teacher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "教师不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取教师信息成功", teacher)
}

type CreateTeacherRequest struct {
	TeacherID  string    `json:"teacherId"`
	Name       string    `json:"name"`
	Gender     string    `json:"gender"`
	BirthDate  time.Time `json:"birthDate"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	HireDate   time.Time `json:"hireDate"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	UserID     uint      `json:"userId"`
}

// Create 创建教师档案
// POST /api/teachers
func (h *TeacherHandler) Create(c *fiber.Ctx) error {
	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.TeacherID == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "teacherId", Message: "工号不能为空"})
	}
	if req.Name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "姓名不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	teacher := model.Teacher{
		TeacherID:  req.TeacherID,
		Name:       req.Name,
		Gender:     model.Gender(req.Gender),
		BirthDate:  req.BirthDate,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		HireDate:   req.HireDate,
		Department: req.Department,
		Position:   req.Position,
		Status:     model.TeacherActive,
		UserID:     req.UserID,
	}

	if err := h.db.Create(&teacher).Error; err != nil {
		return SendError(c, fiber.StatusBadRequest, "工号已存在")
	}

	return SendCreated(c, "创建教师成功", teacher)
}

type UpdateTeacherRequest struct {
	Name       *string    `json:"name"`
	Gender     *string    `json:"gender"`
	BirthDate  *time.Time `json:"birthDate"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
	Address    *string    `json:"address"`
	Department *string    `json:"department"`
	Position   *string    `json:"position"`
	Status     *string    `json:"status"`
	Avatar     *string    `json:"avatar"`
}

// Update 更新教师档案
// PUT /api/teachers/:id
func (h *TeacherHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的教师ID")
	}

	var teacher model.Teacher
	if err := h.db.First(&teacher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "教师不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) > 0 {
		if err := h.db.Model(&teacher).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新教师成功", teacher)
}

// Delete 删除教师档案
// DELETE /api/teachers/:id
func (h *TeacherHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的教师ID")
	}

	result := h.db.Delete(&model.Teacher{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "教师不存在")
	}

	return SendSuccess(c, "删除教师成功", nil)
}
