package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/roster"
	"github.com/npillmayer/roster/internal/config"
	"golang.org/x/term"
)

// Console prints command results, coloring the status word if enabled.
type Console struct {
	w      io.Writer
	colors map[error]*color.Color
	ok     *color.Color
}

// NewConsole creates a console writing to w. mode is one of the config color
// modes; in auto mode colors are used if w is a terminal.
func NewConsole(w io.Writer, mode string) *Console {
	c := &Console{
		w:  w,
		ok: color.New(color.FgGreen),
		colors: map[error]*color.Color{
			roster.ErrInvalidInput: color.New(color.FgRed),
			roster.ErrFailure:      color.New(color.FgYellow),
			roster.ErrAllocation:   color.New(color.FgMagenta, color.Bold),
		},
	}
	enable := mode == config.ColorAlways || (mode == config.ColorAuto && isTerminal(w))
	for _, col := range c.all() {
		if enable {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	T().P("console", "color").Debugf("colored output: %v", enable)
	return c
}

func (c *Console) all() []*color.Color {
	all := []*color.Color{c.ok}
	for _, col := range c.colors {
		all = append(all, col)
	}
	return all
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Print outputs a single result line.
func (c *Console) Print(r Result) {
	if r.Err != nil {
		status := roster.Status(r.Err)
		fmt.Fprintf(c.w, "%s: %s\n", r.Op, c.colors[status].Sprint(status.Error()))
		return
	}
	if r.Value == "" {
		fmt.Fprintf(c.w, "%s: %s\n", r.Op, c.ok.Sprint("SUCCESS"))
		return
	}
	fmt.Fprintf(c.w, "%s: %s, %s\n", r.Op, c.ok.Sprint("SUCCESS"), r.Value)
}
