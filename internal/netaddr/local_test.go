package netaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIPVia_Loopback(t *testing.T) {
	// Port 9 is discard; nothing is sent by connecting a UDP socket anyway.
	assert.Equal(t, "127.0.0.1", localIPVia("udp4", "127.0.0.1:9"))
}

func TestLocalIPVia_FallbackOnDialError(t *testing.T) {
	tests := []struct {
		name    string
		network string
		target  string
	}{
		{"unknown network", "carrier-pigeon", "127.0.0.1:9"},
		{"missing port", "udp4", "127.0.0.1"},
		{"tcp refused", "tcp4", "127.0.0.1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Fallback, localIPVia(tt.network, tt.target))
		})
	}
}

func TestLocalIP_NeverEmpty(t *testing.T) {
	got := LocalIP()
	if got == Fallback {
		return
	}
	assert.NotNil(t, net.ParseIP(got), "expected an IP address or %q, got %q", Fallback, got)
}
