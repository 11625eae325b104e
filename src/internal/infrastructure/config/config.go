package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ===========================
// 環境設定
// ===========================

// Config 服務啟動所需的全部外部設定
type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	LogLevel string

	// AdminMemberIDs 具管理員能力的會員 ID 清單
	AdminMemberIDs []string
}

// DatabaseConfig GORM 連線設定
//
// DSN 直接交給 sqlite driver；":memory:" 用於測試，
// 檔案路徑用於單機部署。
type DatabaseConfig struct {
	DSN string
}

// RabbitMQConfig 事件發布設定
//
// URL 為空字串時不連 RabbitMQ，事件改走 logging 發布器。
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// RedisConfig 冪等鍵儲存設定
//
// Addr 為空字串時不連 Redis，冪等鍵改存資料庫。
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load 從環境變數載入設定
//
// 先嘗試載入 .env（不存在時靜默略過），再讀環境變數。
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	return &Config{
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_DSN", "walk_rewards.db"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "walk_rewards.events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AdminMemberIDs: splitList(getEnv("ADMIN_MEMBER_IDS", "")),
	}, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
