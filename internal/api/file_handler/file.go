package file_handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/trsv-dev/simple-static-file-server/internal/mimetypes"
)

// FileHandler обрабатывает HTTP-запросы к файлам раздаваемого каталога.
type FileHandler struct {
	root       string
	types      *mimetypes.Registry
	fileServer http.Handler
}

// NewFileHandler Конструктор FileHandler.
func NewFileHandler(root string, types *mimetypes.Registry) *FileHandler {
	return &FileHandler{
		root:       root,
		types:      types,
		fileServer: http.FileServer(http.Dir(root)),
	}
}

// ServeFiles Отдает файл по пути запроса относительно раздаваемого каталога.
// Разрешение индексных файлов, листинг каталогов, защита от выхода за пределы
// каталога и коды 404/403 наследуются от стандартного http.FileServer.
func (h *FileHandler) ServeFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// тип содержимого выставляем до делегирования: переопределения из реестра
	// должны иметь приоритет над таблицей стандартной библиотеки
	if contentType, ok := h.contentType(r.URL.Path); ok {
		w.Header().Set("Content-Type", contentType)
	}

	h.fileServer.ServeHTTP(w, r)
}

// Определение MIME-типа для пути запроса. Тип известен, только если путь
// указывает на обычный файл: каталоги и несуществующие пути остаются
// стандартному обработчику (листинг, 404).
func (h *FileHandler) contentType(urlPath string) (string, bool) {
	cleaned := path.Clean("/" + urlPath)
	fsPath := filepath.Join(h.root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))

	info, err := os.Stat(fsPath)
	if err != nil || info.IsDir() {
		return "", false
	}

	if mimeType, ok := h.types.TypeByExtension(filepath.Ext(fsPath)); ok {
		return mimeType, true
	}

	return mimetypes.DefaultType, true
}
