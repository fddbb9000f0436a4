package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/trsv-dev/simple-static-file-server/internal/api/file_handler"
	"github.com/trsv-dev/simple-static-file-server/internal/middleware"
)

// Router Роутер.
func Router(files *file_handler.FileHandler) chi.Router {
	router := chi.NewRouter()

	// middleware логгера всех запросов
	router.Use(middleware.LogMiddleware)

	// единственный маршрут - раздача файлов рабочего каталога
	router.Get("/*", files.ServeFiles)
	router.Head("/*", files.ServeFiles)

	return router
}
