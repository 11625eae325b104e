package logger

import (
	"github.com/sirupsen/logrus"
)

// ===========================
// Logger 設定
// ===========================

// New 創建結構化 JSON logger
//
// 無法解析 level 時回退到 Info，不讓 log 配置錯誤擋住服務啟動。
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
