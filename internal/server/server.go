package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/trsv-dev/simple-static-file-server/internal/errs"
	"github.com/trsv-dev/simple-static-file-server/internal/logger"
)

// NewServer Создание нового сервера.
func NewServer(runAddress string, handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:    runAddress,
		Handler: handler,
		// сюда net/http пишет ошибки обслуживания соединений,
		// обрывы соединения клиентом отфильтровываются
		ErrorLog: log.New(&suppressedErrorWriter{}, "", 0),
	}

	return server
}

// RunServer Привязывает адрес, запускает сервер в горутине и возвращает сам сервер
// и канал ошибок. Ошибка привязки адреса (например, порт занят другим процессом)
// возвращается сразу - это фатальная ошибка старта.
func RunServer(runAddress string, handler http.Handler) (*http.Server, chan error, error) {
	server := NewServer(runAddress, handler)

	listener, err := listen(runAddress)
	if err != nil {
		return nil, nil, errs.NewErrServerStart(runAddress, err)
	}

	// канал ошибок сервера
	serverErrorCh := make(chan error, 1)

	go func() {
		defer close(serverErrorCh)

		logger.Log.Info("Сервер запущен", logger.String("address", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
			// отправляем ошибку в канал ошибок сервера
			serverErrorCh <- err
		}
	}()

	return server, serverErrorCh, nil
}

// Создание слушателя с выставленным SO_REUSEADDR: повторный запуск сразу после
// остановки не должен падать с "address already in use", пока ОС держит
// предыдущий сокет в TIME_WAIT.
func listen(addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddrControl}

	return lc.Listen(context.Background(), "tcp", addr)
}
