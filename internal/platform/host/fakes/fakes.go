// Package fakes provides an in-memory host.System for tests.
package fakes

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Command records one executed command.
type Command struct {
	Name  string
	Args  []string
	Stdin string
}

// String renders the command line without stdin.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeSystem simulates host.System. Files live in an in-memory map and every
// executed command is recorded. Results for specific command lines can be
// scripted with FailWith and RespondWith; unscripted commands succeed with
// empty output.
type FakeSystem struct {
	mu sync.Mutex

	UID      int
	Files    map[string][]byte
	Modes    map[string]os.FileMode
	Commands []Command

	// Binaries not listed here still resolve; entries set to false fail LookPath.
	MissingBinaries map[string]bool

	failures  map[string]error
	failCount map[string]int
	responses map[string]string
}

// NewFakeSystem returns a fake running as root with an empty filesystem.
func NewFakeSystem() *FakeSystem {
	return &FakeSystem{
		UID:             0,
		Files:           make(map[string][]byte),
		Modes:           make(map[string]os.FileMode),
		MissingBinaries: make(map[string]bool),
		failures:        make(map[string]error),
		failCount:       make(map[string]int),
		responses:       make(map[string]string),
	}
}

// FailWith scripts an error for every execution of the given command line.
func (f *FakeSystem) FailWith(commandLine string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[commandLine] = err
	f.failCount[commandLine] = -1
}

// FailNTimes scripts an error for the first n executions of the command line.
func (f *FakeSystem) FailNTimes(commandLine string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[commandLine] = err
	f.failCount[commandLine] = n
}

// RespondWith scripts successful output for the given command line.
func (f *FakeSystem) RespondWith(commandLine, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = output
}

// Ran reports whether a command line was executed.
func (f *FakeSystem) Ran(commandLine string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Commands {
		if c.String() == commandLine {
			return true
		}
	}
	return false
}

// RunCount returns how many times a command line was executed.
func (f *FakeSystem) RunCount(commandLine string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.Commands {
		if c.String() == commandLine {
			count++
		}
	}
	return count
}

// StdinFor returns the stdin fed to the first execution of a command line.
func (f *FakeSystem) StdinFor(commandLine string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Commands {
		if c.String() == commandLine {
			return c.Stdin, true
		}
	}
	return "", false
}

func (f *FakeSystem) exec(stdin, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cmd := Command{Name: name, Args: args, Stdin: stdin}
	f.Commands = append(f.Commands, cmd)
	line := cmd.String()

	if err, ok := f.failures[line]; ok {
		remaining := f.failCount[line]
		if remaining == -1 {
			return "", err
		}
		if remaining > 0 {
			f.failCount[line] = remaining - 1
			return "", err
		}
	}

	return f.responses[line], nil
}

// Run records and executes a scripted command.
func (f *FakeSystem) Run(_ context.Context, name string, args ...string) (string, error) {
	return f.exec("", name, args...)
}

// RunInput records and executes a scripted command with stdin.
func (f *FakeSystem) RunInput(_ context.Context, stdin string, name string, args ...string) (string, error) {
	return f.exec(stdin, name, args...)
}

// LookPath resolves a binary unless scripted as missing.
func (f *FakeSystem) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MissingBinaries[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// FileExists reports whether the in-memory file exists.
func (f *FakeSystem) FileExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Files[path]
	return ok
}

// ReadFile returns the in-memory file content.
func (f *FakeSystem) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", path)
	}
	return data, nil
}

// WriteFile stores the file in memory.
func (f *FakeSystem) WriteFile(path string, data []byte, mode os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[path] = append([]byte(nil), data...)
	f.Modes[path] = mode
	return nil
}

// CopyFile copies an in-memory file.
func (f *FakeSystem) CopyFile(src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Files[src]
	if !ok {
		return fmt.Errorf("open %s: no such file or directory", src)
	}
	f.Files[dst] = append([]byte(nil), data...)
	f.Modes[dst] = f.Modes[src]
	return nil
}

// MkdirAll is a no-op for the in-memory filesystem.
func (f *FakeSystem) MkdirAll(_ string, _ os.FileMode) error {
	return nil
}

// EffectiveUID returns the configured UID.
func (f *FakeSystem) EffectiveUID() int {
	return f.UID
}
