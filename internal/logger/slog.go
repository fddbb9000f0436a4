package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogAdapter Адаптер для логгера slog.
type SlogAdapter struct {
	slog   *slog.Logger
	closer io.Closer
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) {
	s.slog.Debug(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Info(msg string, fields ...Field) {
	s.slog.Info(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Error(msg string, fields ...Field) {
	s.slog.Error(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Warn(msg string, fields ...Field) {
	s.slog.Warn(msg, convertFields(fields)...)
}

// Close Освобождение ресурса вывода (актуально при логировании в файл).
func (s *SlogAdapter) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Конвертация Fields в any[].
func convertFields(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}

var (
	Log  Logger
	once sync.Once
)

// InitLogger Инициализация логгера с заданным уровнем и выводом.
// Вывод: "stdout", "stderr" или путь к файлу (файл пишется с ротацией).
func InitLogger(level, output string) {
	once.Do(func() {
		var (
			writer io.Writer
			closer io.Closer
		)

		switch output {
		case "stdout":
			writer = os.Stdout
		case "stderr", "":
			writer = os.Stderr
		default:
			// логирование в файл с ротацией
			rotated := &lumberjack.Logger{
				Filename:   output,
				MaxSize:    10, // мегабайт
				MaxBackups: 3,
				MaxAge:     28, // дней
				Compress:   true,
			}
			writer = rotated
			closer = rotated
		}

		handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: parseLevel(level),
		})

		Log = &SlogAdapter{slog: slog.New(handler), closer: closer}
	})
}

// Разбор уровня логирования, по умолчанию Info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
