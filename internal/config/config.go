package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Log       LogConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port    string
	AppName string `mapstructure:"app_name"`
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
	TablePrefix string `mapstructure:"table_prefix"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig 令牌签名配置。密钥进程级只读，启动后不再变更；
// 轮换密钥会让所有已签发的令牌静默失效。
type JWTConfig struct {
	Secret      string
	ExpireHours int `mapstructure:"expire_hours"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level string
	File  string
}

type RateLimitConfig struct {
	Max           int
	WindowMinutes int `mapstructure:"window_minutes"`
}

// TokenTTL 返回令牌有效期
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpireHours) * time.Hour
}

func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // 在当前目录中查找配置
	viper.AddConfigPath("./config") // 在 config 目录中查找配置

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":3001")
	viper.SetDefault("server.app_name", "school-admin-api")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.dbname", "school_admin")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.timezone", "Asia/Shanghai")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("jwt.secret", "school-admin-dev-secret")
	viper.SetDefault("jwt.expire_hours", 168) // 7 天
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "logs/app.log")
	viper.SetDefault("rate_limit.max", 100)
	viper.SetDefault("rate_limit.window_minutes", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Error reading config file, %s", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
