package server

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trsv-dev/simple-static-file-server/internal/api/file_handler"
	"github.com/trsv-dev/simple-static-file-server/internal/errs"
	"github.com/trsv-dev/simple-static-file-server/internal/logger"
	"github.com/trsv-dev/simple-static-file-server/internal/mimetypes"
	"github.com/trsv-dev/simple-static-file-server/internal/router"
)

func init() {
	logger.InitLogger("error", "stdout")
}

// recordingLogger Логгер, запоминающий сообщения, для проверки политики подавления.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (rl *recordingLogger) record(msg string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.messages = append(rl.messages, msg)
}

func (rl *recordingLogger) recorded() []string {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return append([]string(nil), rl.messages...)
}

func (rl *recordingLogger) Debug(msg string, fields ...logger.Field) { rl.record(msg) }
func (rl *recordingLogger) Info(msg string, fields ...logger.Field)  { rl.record(msg) }
func (rl *recordingLogger) Warn(msg string, fields ...logger.Field)  { rl.record(msg) }
func (rl *recordingLogger) Error(msg string, fields ...logger.Field) { rl.record(msg) }

// Поиск свободного порта для тестового сервера.
func freeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	return ln.Addr().String()
}

// Сборка обработчика поверх временного каталога.
func createTestHandler(t *testing.T, files map[string][]byte) http.Handler {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), content, 0o644))
	}

	return router.Router(file_handler.NewFileHandler(root, mimetypes.NewRegistry()))
}

// TestRunServerServesRequests Проверяет запуск сервера и отдачу файла по HTTP.
func TestRunServerServesRequests(t *testing.T) {
	handler := createTestHandler(t, map[string][]byte{
		"index.html": []byte("<h1>hi</h1>"),
	})

	addr := freeAddr(t)

	srv, serverErrorCh, err := RunServer(addr, handler)
	require.NoError(t, err)
	defer srv.Close()

	resp, err := http.Get(fmt.Sprintf("http://%s/index.html", addr))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	// тело байт-в-байт совпадает с содержимым файла
	assert.Equal(t, "<h1>hi</h1>", string(body))

	require.NoError(t, srv.Close())

	// канал ошибок закрывается без ошибок
	_, ok := <-serverErrorCh
	assert.False(t, ok)
}

// TestRunServerBindFailure Проверяет фатальную ошибку старта при занятом порте.
func TestRunServerBindFailure(t *testing.T) {
	// занимаем порт другим слушателем
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	_, _, err = RunServer(occupied.Addr().String(), http.NotFoundHandler())

	require.Error(t, err)

	var errServerStart *errs.ErrServerStart
	assert.ErrorAs(t, err, &errServerStart)
	assert.Equal(t, occupied.Addr().String(), errServerStart.Addr)
}

// TestListenReuseAddr Проверяет повторную привязку адреса сразу после остановки.
func TestListenReuseAddr(t *testing.T) {
	first, err := listen("127.0.0.1:0")
	require.NoError(t, err)

	addr := first.Addr().String()

	// обслуживаем одно соединение и закрываем его со стороны сервера:
	// пара адресов повисает в TIME_WAIT и без SO_REUSEADDR мешала бы перезапуску
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	accepted, err := first.Accept()
	require.NoError(t, err)

	require.NoError(t, accepted.Close())
	require.NoError(t, conn.Close())
	require.NoError(t, first.Close())

	// немедленный перезапуск на том же порте
	second, err := listen(addr)
	require.NoError(t, err)
	defer second.Close()
}

// TestServerSurvivesClientDisconnect Проверяет, что обрыв соединения клиентом
// посреди ответа не останавливает сервер и не мешает следующим запросам.
func TestServerSurvivesClientDisconnect(t *testing.T) {
	big := bytes.Repeat([]byte("0123456789abcdef"), 512*1024) // 8 МБ

	handler := createTestHandler(t, map[string][]byte{
		"big.bin":    big,
		"index.html": []byte("<h1>hi</h1>"),
	})

	addr := freeAddr(t)

	srv, serverErrorCh, err := RunServer(addr, handler)
	require.NoError(t, err)
	defer srv.Close()

	// клиент запрашивает большой файл и уходит, прочитав только начало ответа
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	_, err = fmt.Fprintf(conn, "GET /big.bin HTTP/1.1\r\nHost: %s\r\n\r\n", addr)
	require.NoError(t, err)

	buf := make([]byte, 1024)
	_, err = conn.Read(buf)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// даем серверу время упереться в оборванное соединение
	time.Sleep(100 * time.Millisecond)

	// сервер жив и обслуживает следующий запрос
	resp, err := http.Get(fmt.Sprintf("http://%s/index.html", addr))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>hi</h1>", string(body))

	// в канал ошибок ничего не упало
	select {
	case err, ok := <-serverErrorCh:
		if ok {
			t.Fatalf("сервер сообщил об ошибке: %v", err)
		}
	default:
	}
}

// TestSuppressedErrorWriter Проверяет фильтрацию строк ErrorLog.
func TestSuppressedErrorWriter(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantLogged bool
	}{
		{
			name:       "broken pipe подавляется",
			line:       "http: response write error: broken pipe\n",
			wantLogged: false,
		},
		{
			name:       "connection reset подавляется",
			line:       "read tcp 127.0.0.1:8000->127.0.0.1:53211: connection reset by peer\n",
			wantLogged: false,
		},
		{
			name:       "прочие ошибки уходят в лог",
			line:       "http: panic serving 127.0.0.1:53211: runtime error\n",
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recording := &recordingLogger{}

			// подменяем логгер на время теста
			original := logger.Log
			logger.Log = recording
			defer func() { logger.Log = original }()

			writer := &suppressedErrorWriter{}

			n, err := writer.Write([]byte(tt.line))

			assert.NoError(t, err)
			assert.Equal(t, len(tt.line), n)

			if tt.wantLogged {
				assert.NotEmpty(t, recording.recorded())
			} else {
				assert.Empty(t, recording.recorded())
			}
		})
	}
}
