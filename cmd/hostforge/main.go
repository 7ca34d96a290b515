// Package main is the entry point for the hostforge CLI.
//
// hostforge provisions a single Debian host with DNS, web, database, and
// file-share services, and can run a small contact-form mail relay. Runs
// are idempotent: configuration files are regenerated from the same inputs
// and existing files are backed up before being replaced.
//
// Commands: provision, init, doctor, relay, version, completion.
//
// For detailed usage information, run:
//
//	hostforge --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/hostforge/cmd/hostforge/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
