package errs

import "fmt"

// ErrServerStart Кастомная ошибка, сообщающая о невозможности запустить сервер на адресе
// (например, порт уже занят другим процессом).
type ErrServerStart struct {
	Addr string
	Err  error
}

func (ss *ErrServerStart) Error() string {
	return fmt.Sprintf("Не удалось запустить сервер на адресе %s. Ошибка: %v", ss.Addr, ss.Err)
}

func (ss *ErrServerStart) Unwrap() error {
	return ss.Err
}

func NewErrServerStart(addr string, err error) *ErrServerStart {
	return &ErrServerStart{
		Addr: addr,
		Err:  err,
	}
}
