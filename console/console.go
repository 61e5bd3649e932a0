// Package console writes human-readable results for the command-line tools.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes coloured status lines and JSON documents.
type Printer struct {
	out     io.Writer
	noColor bool
	success *color.Color
	info    *color.Color
	warn    *color.Color
	failure *color.Color
}

// NewPrinter returns a Printer writing to out.
// Colour is used only when noColor is false.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		noColor: noColor,
		success: color.New(color.FgGreen, color.Bold),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.success, p.info, p.warn, p.failure} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// NoColor reports whether output to f should be left uncoloured,
// either because NO_COLOR is set or because f is not a terminal.
func NoColor(f *os.File) bool {
	if _, found := os.LookupEnv("NO_COLOR"); found {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// Success prints a line announcing a completed step.
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.success, format, args...)
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.info, format, args...)
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.line(p.warn, format, args...)
}

// Error prints an error line.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.failure, format, args...)
}

func (p *Printer) line(c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// JSON pretty-prints a JSON document.
// An empty document prints as null, invalid JSON is printed verbatim.
func (p *Printer) JSON(data []byte) {
	if len(data) == 0 {
		_, _ = fmt.Fprintln(p.out, "null")
		return
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		_, _ = fmt.Fprintln(p.out, string(data))
		return
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = 2
	formatter.DisabledColor = p.noColor
	pretty, err := formatter.Marshal(obj)
	if err != nil {
		_, _ = fmt.Fprintln(p.out, string(data))
		return
	}
	_, _ = fmt.Fprintln(p.out, string(pretty))
}
