//go:build !unix && !windows

package server

import (
	"strings"
	"syscall"
)

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}

func isAddrInUse(err error) bool {
	return err != nil && strings.Contains(err.Error(), "address already in use")
}
