package netutil

import (
	"net"
	"strconv"
	"testing"
	"time"
)

func TestProbePort_Open(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start listener: %v", err)
	}
	defer ln.Close()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("Failed to split host/port: %v", err)
	}
	port, _ := strconv.Atoi(portStr)

	if err := ProbePort("127.0.0.1", port, time.Second); err != nil {
		t.Errorf("Expected open port probe to succeed, got: %v", err)
	}
}

func TestProbePort_Closed(t *testing.T) {
	t.Parallel()
	// Grab a port and close it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start listener: %v", err)
	}
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	ln.Close()

	if err := ProbePort("127.0.0.1", port, 200*time.Millisecond); err == nil {
		t.Error("Expected closed port probe to fail")
	}
}
