// Package ui renders operator-facing terminal output: section headers,
// warnings, and the final provisioning summary. Color is suppressed when
// stdout is not a terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/hostforge/internal/config"
)

// Printer writes styled output to a destination.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter returns a Printer for stdout with TTY-based color detection.
func NewPrinter() *Printer {
	return &Printer{
		out:   os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewPrinterTo returns a Printer for an arbitrary writer, colorless.
func NewPrinterTo(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) render(style interface{ Render(...string) string }, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

// Title prints a bold heading.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.out, p.render(titleStyle, text))
}

// Section prints a section header.
func (p *Printer) Section(text string) {
	fmt.Fprintln(p.out, p.render(sectionStyle, text))
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(successStyle, fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(warningStyle, "Warning: "+fmt.Sprintf(format, args...)))
}

// Dim prints a de-emphasized line.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(dimStyle, fmt.Sprintf(format, args...)))
}

// Summary prints the final human-readable provisioning summary.
func (p *Printer) Summary(req *config.Request, warnings []string) {
	p.Section("Provisioning complete")
	fmt.Fprintf(p.out, "  Domain:        %s\n", req.Domain)
	fmt.Fprintf(p.out, "  IP address:    %s\n", req.IPAddress)
	fmt.Fprintf(p.out, "  phpMyAdmin:    http://%s/phpmyadmin\n", req.IPAddress)
	fmt.Fprintf(p.out, "  File share:    \\\\%s\\webshare\n", req.IPAddress)
	fmt.Fprintf(p.out, "  Share user:    %s\n", req.SambaUsername)

	if len(warnings) > 0 {
		p.Section(fmt.Sprintf("%d warning(s)", len(warnings)))
		for _, w := range warnings {
			p.Warning("%s", w)
		}
		p.Dim("Service and validation failures are non-fatal; inspect and restart the affected services manually.")
	}
}
