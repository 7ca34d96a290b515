// Package host abstracts the live system the provisioner mutates: process
// execution, the filesystem, and privilege queries. The pipeline only ever
// talks to the System interface so it can run against a fake in tests
// instead of a real machine.
package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// System is the capability interface over the host being provisioned.
type System interface {
	// Run executes a command and returns combined stdout+stderr.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunInput executes a command feeding stdin, returning combined output.
	RunInput(ctx context.Context, stdin string, name string, args ...string) (string, error)

	// LookPath reports whether a binary is resolvable in PATH.
	LookPath(name string) (string, error)

	// FileExists reports whether path exists.
	FileExists(path string) bool

	// ReadFile returns the contents of path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path with the given mode.
	WriteFile(path string, data []byte, mode os.FileMode) error

	// CopyFile copies src to dst preserving content byte-for-byte.
	CopyFile(src, dst string) error

	// MkdirAll creates a directory tree.
	MkdirAll(path string, mode os.FileMode) error

	// EffectiveUID returns the effective user id of the process.
	EffectiveUID() int
}

// Real implements System against the local machine.
type Real struct{}

// NewReal returns a System backed by the local machine.
func NewReal() *Real {
	return &Real{}
}

// Run executes a command with context and returns combined output.
func (r *Real) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command %q failed: %w\nOutput: %s",
			name+" "+strings.Join(args, " "), err, string(output))
	}
	return string(output), nil
}

// RunInput executes a command feeding stdin. Password-setting tools such as
// smbpasswd and chpasswd take their secrets this way.
func (r *Real) RunInput(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command %q failed: %w\nOutput: %s",
			name+" "+strings.Join(args, " "), err, string(output))
	}
	return string(output), nil
}

// LookPath resolves a binary in PATH.
func (r *Real) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// FileExists reports whether path exists.
func (r *Real) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile returns the contents of path.
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path with the given mode.
func (r *Real) WriteFile(path string, data []byte, mode os.FileMode) error {
	return os.WriteFile(path, data, mode)
}

// CopyFile copies src to dst, creating or truncating dst.
func (r *Real) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// MkdirAll creates a directory tree.
func (r *Real) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

// EffectiveUID returns the effective user id of the process.
func (r *Real) EffectiveUID() int {
	return os.Geteuid()
}
