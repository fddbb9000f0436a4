package errs

import (
	"errors"
	"strings"
	"syscall"
)

// IsClientDisconnect Проверяет, является ли ошибка обрывом соединения со стороны клиента
// (broken pipe или connection reset by peer). Такие ошибки - нормальное следствие
// ухода клиента до конца ответа, сервер их молча игнорирует.
func IsClientDisconnect(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	// часть ошибок доходит уже в виде текста без обернутой errno
	return IsDisconnectMessage(err.Error())
}

// IsDisconnectMessage Проверяет текст ошибки на признаки обрыва соединения клиентом.
// Используется для фильтрации строк, которые net/http пишет в ErrorLog.
func IsDisconnectMessage(msg string) bool {
	msg = strings.ToLower(msg)

	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}
