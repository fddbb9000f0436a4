//go:build windows

package server

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Выставление SO_REUSEADDR на сокете слушателя.
func reuseAddrControl(network, address string, conn syscall.RawConn) error {
	var sockErr error

	err := conn.Control(func(fd uintptr) {
		sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}

	return sockErr
}
