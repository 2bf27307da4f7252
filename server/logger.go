package server

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局 SugaredLogger，统一输出到滚动日志文件与控制台
var Log *zap.SugaredLogger

// InitLogger 初始化 zap 日志到本地文件（支持滚动）
// filePath: 日志文件路径，如 "pointworld.log"；PW_LOG_LEVEL 可调级别
func InitLogger(filePath string) error {
	// 文件滚动策略：10MB 每文件，保留3个备份，7 天过期
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   false,
	}

	level := zapcore.InfoLevel
	if v := os.Getenv("PW_LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	// 控制台风格更易读，也可改为 JSON：zapcore.NewJSONEncoder(encCfg)
	encoder := zapcore.NewConsoleEncoder(encCfg)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(lj), level),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	)

	// 添加调用者信息（文件:行号）
	logger := zap.New(core, zap.AddCaller())
	Log = logger.Sugar()
	return nil
}

// SyncLogger 清理和同步缓冲
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
