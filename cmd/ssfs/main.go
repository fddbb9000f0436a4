package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/trsv-dev/simple-static-file-server/internal/api/file_handler"
	"github.com/trsv-dev/simple-static-file-server/internal/config"
	"github.com/trsv-dev/simple-static-file-server/internal/logger"
	"github.com/trsv-dev/simple-static-file-server/internal/mimetypes"
	"github.com/trsv-dev/simple-static-file-server/internal/router"
	"github.com/trsv-dev/simple-static-file-server/internal/server"
)

// "Сборка" и запуск проекта.
func main() {
	// recover для логирования паник в main
	defer func() {
		if r := recover(); r != nil {
			log.Println("Паника в main:", fmt.Sprintf("%v", r))
		}
	}()

	// загружаем переменные окружения из .env для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if errEnv := godotenv.Load(); errEnv != nil {
			log.Println("Не удалось загрузить .env:", errEnv)
		}
	}

	// инициализация конфигурации сервера
	srvConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalln("Некорректная конфигурация:", err)
	}

	// инициализация логгера с уровнем логирования из конфигурации
	logger.InitLogger(srvConfig.LogLevel, srvConfig.LogOutput)
	// отложенное закрытие ресурса (актуально если используется файл для логирования)
	defer logger.Log.(*logger.SlogAdapter).Close()

	// раздается текущий рабочий каталог процесса
	workDir, err := os.Getwd()
	if err != nil {
		logger.Log.Error("Не удалось определить рабочий каталог", logger.String("err", err.Error()))
		os.Exit(1)
	}

	// реестр MIME-типов формируется один раз до старта сервера,
	// дальше из обработчиков идет только конкурентное чтение
	registry := mimetypes.NewRegistry()

	files := file_handler.NewFileHandler(workDir, registry)

	// создаем сервер и запускаем его
	srv, serverErrorCh, err := server.RunServer(srvConfig.Addr(), router.Router(files))
	if err != nil {
		logger.Log.Error("Не удалось запустить сервер", logger.String("err", err.Error()))
		os.Exit(1)
	}

	color.New(color.FgGreen).Printf("Serving on %s\n", srvConfig.URL())

	// канал системных сигналов
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop) // гарантированно перестанем слушать сигнал при выходе

	// блокируемся тут в ожидании одного из вариантов завершения работы сервера
	select {
	case err, ok := <-serverErrorCh:
		if !ok {
			logger.Log.Info("Канал ошибок сервера закрыт")
			return
		}
		logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
		os.Exit(1)
	case sig := <-stop:
		logger.Log.Info("Получен сигнал остановки приложения", logger.String("sig", sig.String()))
	}

	// контекст для завершения работы сервера
	serverShutdownCtx, serverShutdownCancel := context.WithTimeout(context.Background(), 7*time.Second)
	defer serverShutdownCancel()

	// остановка сервера
	if err = srv.Shutdown(serverShutdownCtx); err != nil {
		logger.Log.Error("Ошибка остановки сервера", logger.String("err", err.Error()))
	} else {
		logger.Log.Info("Сервер остановлен")
	}
}
