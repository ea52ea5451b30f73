package api

import (
	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/api/middleware"
	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/config"
	"schooladmin.com/internal/domain"
	"schooladmin.com/internal/infra"
)

// Router 负责注册所有路由
type Router struct {
	app       *fiber.App
	cfg       *config.Config
	db        *gorm.DB
	enforcer  *casbin.Enforcer
	tokens    *auth.TokenService
	noticeSvc domain.NoticeService
	wsManager *infra.WsManager
	log       *logrus.Logger
}

func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	enforcer *casbin.Enforcer,
	tokens *auth.TokenService,
	noticeSvc domain.NoticeService,
	wsManager *infra.WsManager,
	log *logrus.Logger,
) *Router {
	return &Router{
		app:       app,
		cfg:       cfg,
		db:        db,
		enforcer:  enforcer,
		tokens:    tokens,
		noticeSvc: noticeSvc,
		wsManager: wsManager,
		log:       log,
	}
}

// RegisterRoutes 注册所有业务路由
func (r *Router) RegisterRoutes() {
	// 1. 初始化各个 Handler
	authHandler := NewAuthHandler(r.db, r.tokens, r.cfg.Auth.BcryptCost, r.log)
	studentHandler := NewStudentHandler(r.db, r.log)
	teacherHandler := NewTeacherHandler(r.db, r.log)
	classHandler := NewClassHandler(r.db, r.log)
	courseHandler := NewCourseHandler(r.db, r.log)
	enrollmentHandler := NewEnrollmentHandler(r.db, r.log)
	gradeHandler := NewGradeHandler(r.db, r.log)
	attendanceHandler := NewAttendanceHandler(r.db, r.log)
	noticeHandler := NewNoticeHandler(r.noticeSvc, r.log)

	// 2. WebSocket 路由（连接时自行校验令牌）
	if r.wsManager != nil {
		InitWebsocket(r.app, r.wsManager, r.tokens)
	}

	// 3. 认证与角色门中间件
	authenticated := middleware.Authenticate(r.db, r.tokens)
	anyRole := middleware.RequireAuthenticated(r.enforcer)
	staff := middleware.RequireStaff(r.enforcer)
	admin := middleware.RequireAdmin(r.enforcer)

	api := r.app.Group("/api")

	// 4. 认证路由：注册/登录公开，me/logout 需认证
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authenticated, authHandler.GetMe)
	authGroup.Post("/logout", authenticated, authHandler.Logout)
	authHandler.EnsureAdminUser()

	// 5. 业务资源路由：读取对所有已认证角色开放，
	// 写入需要教师或管理员，教师档案的写入仅限管理员
	students := api.Group("/students", authenticated)
	students.Get("/", anyRole, studentHandler.List)
	students.Get("/:id", anyRole, studentHandler.Get)
	students.Post("/", staff, studentHandler.Create)
	students.Put("/:id", staff, studentHandler.Update)
	students.Delete("/:id", staff, studentHandler.Delete)

	teachers := api.Group("/teachers", authenticated)
	teachers.Get("/", anyRole, teacherHandler.List)
	teachers.Get("/:id", anyRole, teacherHandler.Get)
	teachers.Post("/", admin, teacherHandler.Create)
	teachers.Put("/:id", admin, teacherHandler.Update)
	teachers.Delete("/:id", admin, teacherHandler.Delete)

	classes := api.Group("/classes", authenticated)
	classes.Get("/", anyRole, classHandler.List)
	classes.Get("/:id", anyRole, classHandler.Get)
	classes.Post("/", staff, classHandler.Create)
	classes.Put("/:id", staff, classHandler.Update)
	classes.Delete("/:id", staff, classHandler.Delete)

	courses := api.Group("/courses", authenticated)
	courses.Get("/", anyRole, courseHandler.List)
	courses.Get("/:id", anyRole, courseHandler.Get)
	courses.Post("/", staff, courseHandler.Create)
	courses.Put("/:id", staff, courseHandler.Update)
	courses.Delete("/:id", staff, courseHandler.Delete)

	enrollments := api.Group("/enrollments", authenticated)
	enrollments.Get("/", anyRole, enrollmentHandler.List)
	enrollments.Get("/:id", anyRole, enrollmentHandler.Get)
	enrollments.Post("/", staff, enrollmentHandler.Create)
	enrollments.Put("/:id", staff, enrollmentHandler.Update)
	enrollments.Delete("/:id", staff, enrollmentHandler.Delete)

	grades := api.Group("/grades", authenticated)
	grades.Get("/", anyRole, gradeHandler.List)
	grades.Get("/:id", anyRole, gradeHandler.Get)
	grades.Post("/", staff, gradeHandler.Create)
	grades.Put("/:id", staff, gradeHandler.Update)
	grades.Delete("/:id", staff, gradeHandler.Delete)

	attendances := api.Group("/attendances", authenticated)
	attendances.Get("/", anyRole, attendanceHandler.List)
	attendances.Get("/:id", anyRole, attendanceHandler.Get)
	attendances.Post("/", staff, attendanceHandler.Create)
	attendances.Put("/:id", staff, attendanceHandler.Update)
	attendances.Delete("/:id", staff, attendanceHandler.Delete)

	notices := api.Group("/notices", authenticated)
	notices.Get("/", anyRole, noticeHandler.List)
	notices.Get("/:id", anyRole, noticeHandler.Get)
	notices.Post("/", staff, noticeHandler.Create)
	notices.Put("/:id", staff, noticeHandler.Update)
	notices.Delete("/:id", staff, noticeHandler.Delete)

	// 6. 兜底 404
	r.app.Use(func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "请求的资源不存在")
	})
}
