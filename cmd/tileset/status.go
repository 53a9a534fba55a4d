package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/tileset"
)

// status writes human readable progress lines. Numbers are printed with
// thousands separators.
type status struct {
	w io.Writer
	p *message.Printer

	info  func(format string, a ...interface{}) string
	warn  func(format string, a ...interface{}) string
	err   func(format string, a ...interface{}) string
	faint func(format string, a ...interface{}) string
}

func newStatus(w io.Writer) *status {
	return &status{
		w:     w,
		p:     message.NewPrinter(language.English),
		info:  color.New(color.FgGreen).SprintfFunc(),
		warn:  color.New(color.FgYellow).SprintfFunc(),
		err:   color.New(color.FgRed).SprintfFunc(),
		faint: color.New(color.Faint).SprintfFunc(),
	}
}

// Info prints a success line.
func (s *status) Info(format string, a ...interface{}) {
	fmt.Fprintln(s.w, s.info("%s", s.p.Sprintf(format, a...)))
}

// Warn prints a warning line.
func (s *status) Warn(format string, a ...interface{}) {
	fmt.Fprintln(s.w, s.warn("warning: %s", s.p.Sprintf(format, a...)))
}

// Error prints an error line.
func (s *status) Error(format string, a ...interface{}) {
	fmt.Fprintln(s.w, s.err("error: %s", s.p.Sprintf(format, a...)))
}

// Progress rewrites the current line with a detector snapshot.
func (s *status) Progress(p tileset.Progress) {
	line := s.p.Sprintf("scanning %d/%d tiles (%.1f%%), %d unique",
		p.Processed, p.Total, p.Percentage*100, p.Unique)
	fmt.Fprint(s.w, "\r"+s.faint("%s", line))
}

// EndProgress terminates the progress line.
func (s *status) EndProgress() {
	fmt.Fprintln(s.w)
}
