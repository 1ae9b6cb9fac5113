// Package netaddr discovers the address other machines on the LAN can use to
// reach this host. The result is for display only.
package netaddr

import (
	"net"
)

const (
	// probeAddress is never contacted: connecting a UDP socket only makes the
	// OS choose the outbound interface, no datagram is sent.
	probeAddress = "8.8.8.8:80"

	// Fallback is returned whenever discovery fails.
	Fallback = "localhost"
)

// LocalIP returns the IP address of the interface the OS would use for
// outbound traffic, or Fallback.
func LocalIP() string {
	return localIPVia("udp4", probeAddress)
}

func localIPVia(network, target string) string {
	conn, err := net.Dial(network, target)
	if err != nil {
		return Fallback
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil || addr.IP.IsUnspecified() {
		return Fallback
	}
	return addr.IP.String()
}
