package glog

import (
	"fmt"
	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

func StdError(logContent string) {
	logContent = strings.TrimSpace(logContent)
	os.Stderr.WriteString(fmt.Sprintf("[%s]%s\n", time.Now().Format("2006-01-02 15:04:05"), logContent))
}

func StdInfo(logContent string) {
	logContent = strings.TrimSpace(logContent)
	os.Stdout.WriteString(fmt.Sprintf("[%s]%s\n", time.Now().Format("2006-01-02 15:04:05"), logContent))
}

// Config selects where and how the default logger writes.
type Config struct {
	Dir    string
	Mode   string
	MaxAge time.Duration
}

func defaultConfig() Config {

	cfg := Config{
		Mode:   os.Getenv("glog_run_mode"),
		MaxAge: 24 * time.Hour,
	}

	appFilePath, appErr := filepath.Abs(os.Args[0])
	if appErr == nil {
		cfg.Dir = path.Join(filepath.Dir(appFilePath), "log")
	}

	return cfg
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger(zap.NewNop())
	pkgLogger     = NewLogger(zap.NewNop())
)

func init() {

	xLogger, xErr := build(defaultConfig())
	if xErr != nil {
		StdError(xErr.Error())
		return
	}

	replaceDefault(xLogger)
}

// Setup rebuilds the default logger from cfg. On failure the previous logger stays in place.
func Setup(cfg Config) error {

	xLogger, xErr := build(cfg)
	if xErr != nil {
		return xErr
	}

	replaceDefault(xLogger)

	return nil
}

func replaceDefault(z *zap.Logger) {
	defaultMu.Lock()
	defaultLogger = NewLogger(z)
	pkgLogger = NewLogger(z.WithOptions(zap.AddCallerSkip(1)))
	defaultMu.Unlock()

	zap.ReplaceGlobals(z)
}

// Default returns the process logger used by the package-level functions.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func pkg() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return pkgLogger
}

func ensureDir(logFileDir string) error {

	logFileInfo, pathErr := os.Stat(logFileDir)
	if pathErr != nil {
		os.MkdirAll(logFileDir, 0755)
		logFileInfo, pathErr = os.Stat(logFileDir)
		if pathErr != nil {
			return pathErr
		}
	}

	if !logFileInfo.IsDir() {
		return fmt.Errorf("log path=[%v] is not a directory", logFileDir)
	}

	return nil
}

func build(cfg Config) (*zap.Logger, error) {

	if len(cfg.Dir) < 1 {
		return nil, fmt.Errorf("missing log dir")
	}

	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 24 * time.Hour
	}

	dirErr := ensureDir(cfg.Dir)
	if dirErr != nil {
		return nil, dirErr
	}

	logFileFormat := path.Join(cfg.Dir, "app_%Y%m%d.log")

	logHandle, logErr := rotatelogs.New(logFileFormat,
		rotatelogs.WithClock(rotatelogs.Local),
		rotatelogs.WithMaxAge(cfg.MaxAge))
	if logErr != nil {
		return nil, logErr
	}

	logConfig := zap.NewProductionEncoderConfig()
	logConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConfig.EncodeLevel = func(level zapcore.Level, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString("[" + level.CapitalString() + "]")
	}

	logEncoder := zapcore.NewConsoleEncoder(logConfig)

	logInfoLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl == zapcore.InfoLevel
	})

	logWarnLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl == zapcore.WarnLevel
	})

	logErrorLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl == zapcore.ErrorLevel
	})

	var logCore zapcore.Core

	if strings.EqualFold(cfg.Mode, "release") {
		logCore = zapcore.NewTee(
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logInfoLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logWarnLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logErrorLevel),
		)

	} else {
		logCore = zapcore.NewTee(
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logInfoLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logWarnLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(logHandle), logErrorLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(os.Stdout), logInfoLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(os.Stderr), logWarnLevel),
			zapcore.NewCore(logEncoder, zapcore.AddSync(os.Stderr), logErrorLevel),
		)
	}

	return zap.New(logCore, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func Info(args ...interface{}) {
	pkg().Info(args...)
}

func InfoF(format string, args ...interface{}) {
	pkg().InfoF(format, args...)
}

func Warn(args ...interface{}) {
	pkg().Warn(args...)
}

func WarnF(format string, args ...interface{}) {
	pkg().WarnF(format, args...)
}

func Error(args ...interface{}) {
	pkg().Error(args...)
}

func ErrorF(format string, args ...interface{}) {
	pkg().ErrorF(format, args...)
}

func Sync() error {
	return Default().Sync()
}
