package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger глобальный логгер приложения. До вызова Init пишет в никуда.
var Logger = zap.NewNop()

// Init настраивает логгер под режим запуска: release — JSON, иначе — цветной вывод для разработки.
func Init(mode string) error {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := config.Build()
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

// Sync сбрасывает буферы логгера.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
