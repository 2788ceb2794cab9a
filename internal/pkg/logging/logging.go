package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvLogDir = "TRUST_LOG_DIR"

// New builds the application logger: console output always, plus a JSON
// file sink when TRUST_LOG_DIR points at a writable directory.
func New(dev bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if dev {
		level = zap.DebugLevel
	}

	consoleCfg := zap.NewProductionEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if dev {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	if dir := strings.TrimSpace(os.Getenv(EnvLogDir)); dir != "" {
		if file, err := openLogFile(dir); err == nil {
			fileCfg := zap.NewProductionEncoderConfig()
			fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(file), level))
		}
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "server.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
