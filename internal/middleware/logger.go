package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/trsv-dev/simple-static-file-server/internal/errs"
	"github.com/trsv-dev/simple-static-file-server/internal/logger"
)

// Структура для хранения данных ответа.
type responseData struct {
	status   int
	size     int
	writeErr error
}

// LoggingResponseWriter Структура, которой можно подменить оригинальный http.ResponseWriter
// для получения ответа и записи ответа в лог.
type LoggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (l *LoggingResponseWriter) Write(b []byte) (int, error) {
	// записываем ответ, используя оригинальный http.ResponseWriter
	size, err := l.ResponseWriter.Write(b)
	// захватываем размер
	l.responseData.size += size

	// запоминаем первую ошибку записи - по ней определяется обрыв соединения клиентом
	if err != nil && l.responseData.writeErr == nil {
		l.responseData.writeErr = err
	}

	return size, err
}

func (l *LoggingResponseWriter) WriteHeader(statusCode int) {
	// записываем код статуса, используя оригинальный http.ResponseWriter
	l.ResponseWriter.WriteHeader(statusCode)
	// захватываем код статуса
	l.responseData.status = statusCode
}

func (l *LoggingResponseWriter) Flush() {
	if flusher, ok := l.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LogMiddleware Middleware для логирования всех запросов.
func LogMiddleware(h http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		data := responseData{
			status: 0,
			size:   0,
		}

		lw := LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   &data,
		}

		requestID := uuid.NewString()

		start := time.Now()
		h.ServeHTTP(&lw, r)
		duration := time.Since(start)

		// клиент ушел до конца ответа - по политике подавления это не ошибка
		if errs.IsClientDisconnect(data.writeErr) {
			logger.Log.Debug("Клиент разорвал соединение до конца ответа",
				logger.String("request_id", requestID),
				logger.String("uri", r.RequestURI),
			)
			return
		}

		// прочие ошибки записи ответа не подавляются
		if data.writeErr != nil {
			logger.Log.Error("Ошибка записи ответа",
				logger.String("request_id", requestID),
				logger.String("uri", r.RequestURI),
				logger.String("err", data.writeErr.Error()),
			)
			return
		}

		logger.Log.Debug("Got incoming HTTP request",
			logger.String("request_id", requestID),
			logger.String("uri", r.RequestURI),
			logger.String("method", r.Method),
			logger.String("status", strconv.Itoa(data.status)),
			logger.String("duration", duration.String()),
			logger.String("size", strconv.Itoa(data.size)),
		)
	}

	return http.HandlerFunc(f)
}
