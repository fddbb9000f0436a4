//go:build unix

package server

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Выставление SO_REUSEADDR на сокете слушателя.
func reuseAddrControl(network, address string, conn syscall.RawConn) error {
	var sockErr error

	err := conn.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}

	return sockErr
}
