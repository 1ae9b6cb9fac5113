//go:build windows

package server

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// reuseAddrControl is a no-op on Windows: SO_REUSEADDR there lets a second
// process steal a bound port, which would hide the port-in-use failure.
func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}

func isAddrInUse(err error) bool {
	return errors.Is(err, windows.WSAEADDRINUSE)
}
