package infra

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"schooladmin.com/internal/config"
	"schooladmin.com/internal/model"
)

type PostgresClient struct {
	DB *gorm.DB
}

func NewPostgresClient(cfg config.DatabaseConfig) (*PostgresClient, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   cfg.TablePrefix,
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected successfully")

	if err := AutoMigrate(db); err != nil {
		log.Printf("Warning: AutoMigrate failed: %v", err)
	}

	return &PostgresClient{DB: db}, nil
}

// AutoMigrate 建表并保证唯一索引等约束到位。用户名/邮箱的唯一性
// 以这里的存储层约束为准，注册流程里的预检查只是快速路径。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Teacher{},
		&model.Class{},
		&model.Course{},
		&model.Enrollment{},
		&model.Grade{},
		&model.Attendance{},
		&model.Notice{},
	)
}
