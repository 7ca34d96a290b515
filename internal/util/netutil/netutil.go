// Package netutil provides network probes used by post-provisioning
// validation.
package netutil

import (
	"fmt"
	"net"
	"time"
)

// DefaultProbeTimeout bounds a single post-restart port probe.
const DefaultProbeTimeout = 2 * time.Second

// ProbePort checks once whether a TCP port accepts connections on the
// target IP. Used as a read-only validation; callers treat failures as
// warnings, never as fatal errors.
func ProbePort(ip string, port int, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	address := net.JoinHostPort(ip, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("port %d not reachable on %s: %w", port, ip, err)
	}
	_ = conn.Close()
	return nil
}
