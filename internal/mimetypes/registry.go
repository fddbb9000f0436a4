package mimetypes

import (
	"mime"
	"strings"
)

// DefaultType MIME-тип по умолчанию для обычных файлов с неизвестным расширением.
const DefaultType = "application/octet-stream"

// Registry Таблица соответствия расширений файлов MIME-типам.
// Формируется один раз до старта сервера и дальше только читается,
// поэтому безопасна для конкурентного доступа из обработчиков.
type Registry struct {
	overrides map[string]string
}

// NewRegistry Конструктор Registry. Переопределения имеют приоритет над
// системной таблицей: на части платформ .js и .css в ней отсутствуют
// или определяются неверно.
func NewRegistry() *Registry {
	return &Registry{
		overrides: map[string]string{
			".js":  "application/javascript",
			".css": "text/css",
		},
	}
}

// TypeByExtension Возвращает MIME-тип для расширения файла (с точкой).
// Сначала проверяются переопределения, затем системная таблица.
func (reg *Registry) TypeByExtension(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}

	if mimeType, ok := reg.overrides[strings.ToLower(ext)]; ok {
		return mimeType, true
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType, true
	}

	return "", false
}
