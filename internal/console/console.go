// Package console prints operator diagnostics: the INFO/WARN/ERROR lines
// that explain what the sweeper is doing, kept apart from the report itself.
package console

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Console writes prefixed diagnostic lines to a single writer. It is not
// safe for concurrent use.
type Console struct {
	w           io.Writer
	info        *pterm.PrefixPrinter
	warn        *pterm.PrefixPrinter
	fail        *pterm.PrefixPrinter
	success     *pterm.PrefixPrinter
	interactive bool

	startSpinner func(text string) (spinner, error)
	// live is the running spinner, paused around every printed line.
	live *spinnerStatus
}

// spinner is the part of *pterm.SpinnerPrinter a Status drives.
type spinner interface {
	UpdateText(text string)
	Stop() error
}

// New returns a Console that writes to w. Progress spinners are disabled.
func New(w io.Writer) *Console {
	return &Console{
		w:       w,
		info:    pterm.Info.WithWriter(w),
		warn:    pterm.Warning.WithPrefix(pterm.Prefix{Text: "WARN", Style: pterm.Warning.Prefix.Style}).WithWriter(w),
		fail:    pterm.Error.WithWriter(w),
		success: pterm.Success.WithWriter(w),
		startSpinner: func(text string) (spinner, error) {
			sp, err := pterm.DefaultSpinner.WithWriter(w).WithRemoveWhenDone(true).Start(text)
			if err != nil {
				return nil, err
			}
			return sp, nil
		},
	}
}

// NewTerminal returns a Console on stdout. Spinners are enabled only when
// stdout is a terminal.
func NewTerminal() *Console {
	c := New(os.Stdout)
	c.interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return c
}

// DisableStyling switches every printer to plain "LEVEL: message" output
// and turns off colour globally.
func DisableStyling() {
	pterm.DisableStyling()
	color.NoColor = true
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer { return c.w }

func (c *Console) Info(format string, a ...any)    { c.print(c.info, format, a...) }
func (c *Console) Warn(format string, a ...any)    { c.print(c.warn, format, a...) }
func (c *Console) Error(format string, a ...any)   { c.print(c.fail, format, a...) }
func (c *Console) Success(format string, a ...any) { c.print(c.success, format, a...) }

// print writes one line. A live spinner is removed first and restarted
// with its last text afterwards so the line is not overwritten.
func (c *Console) print(p *pterm.PrefixPrinter, format string, a ...any) {
	s := c.live
	if s == nil {
		p.Printfln(format, a...)
		return
	}

	_ = s.sp.Stop()
	p.Printfln(format, a...)

	sp, err := c.startSpinner(s.text)
	if err != nil {
		c.live = nil
		return
	}
	s.sp = sp
}

// Status is a transient progress indicator.
type Status interface {
	Update(text string)
	Stop()
}

// Status starts a spinner showing text. On a non-interactive console it
// returns a Status that does nothing.
func (c *Console) Status(text string) Status {
	if !c.interactive {
		return noopStatus{}
	}
	sp, err := c.startSpinner(text)
	if err != nil {
		return noopStatus{}
	}
	s := &spinnerStatus{c: c, sp: sp, text: text}
	c.live = s
	return s
}

type spinnerStatus struct {
	c    *Console
	sp   spinner
	text string
}

func (s *spinnerStatus) Update(text string) {
	s.text = text
	s.sp.UpdateText(text)
}

func (s *spinnerStatus) Stop() {
	_ = s.sp.Stop()
	if s.c.live == s {
		s.c.live = nil
	}
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}
