package server

import (
	"strings"

	"github.com/trsv-dev/simple-static-file-server/internal/errs"
	"github.com/trsv-dev/simple-static-file-server/internal/logger"
)

// suppressedErrorWriter Приемник для http.Server.ErrorLog: строки об обрыве
// соединения клиентом отбрасываются, остальные уходят в основной логгер.
type suppressedErrorWriter struct{}

func (suppressedErrorWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))

	if errs.IsDisconnectMessage(msg) {
		return len(p), nil
	}

	logger.Log.Error("Ошибка обработки соединения", logger.String("err", msg))

	return len(p), nil
}
