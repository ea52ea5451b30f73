package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"schooladmin.com/internal/config"
)

// New 根据配置构建日志记录器：JSON 格式，同时输出到控制台与日志文件。
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	out := io.Writer(os.Stdout)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = io.MultiWriter(os.Stdout, f)
			}
		}
	}
	logger.SetOutput(out)

	return logger
}
