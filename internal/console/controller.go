// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package console runs the interactive login session on a line-oriented
// terminal.
//
// A Controller owns its input stream, output streams, random source and the
// loaded catalogs. Nothing is read from package globals, so tests drive a
// whole session with a scripted reader and a seeded captcha generator.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/holomush/holologin/internal/captcha"
	"github.com/holomush/holologin/internal/i18n"
	"github.com/holomush/holologin/internal/observability"
)

// CodeInputClosed marks errors caused by the input stream ending or failing.
const CodeInputClosed = "CONSOLE_INPUT_CLOSED"

// ErrInputClosed is returned, wrapped, when no further line can be read.
var ErrInputClosed = errors.New("console input closed")

// Menu choices.
const (
	ChoiceVietnamese = 1
	ChoiceEnglish    = 2
	ChoiceExit       = 3
)

const tracerName = "github.com/holomush/holologin/internal/console"

// Options configures a Controller. In, Out, Bundle and Captcha are required.
type Options struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	Bundle     *i18n.Bundle
	MenuLocale language.Tag
	Captcha    *captcha.Generator

	// MessageNewlines is written after every login-flow message.
	MessageNewlines int

	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// Controller is the interactive session controller.
type Controller struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	menu       *i18n.Catalog
	vietnamese *i18n.Catalog
	english    *i18n.Catalog

	captcha    *captcha.Generator
	terminator string

	metrics *observability.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	closed bool
}

// New creates a Controller. Returns an error if a required option is missing
// or the bundle lacks a needed catalog.
func New(opts Options) (*Controller, error) {
	if opts.In == nil {
		return nil, oops.Errorf("input stream is required")
	}
	if opts.Out == nil {
		return nil, oops.Errorf("output stream is required")
	}
	if opts.Bundle == nil {
		return nil, oops.Errorf("catalog bundle is required")
	}
	if opts.Captcha == nil {
		return nil, oops.Errorf("captcha generator is required")
	}
	if opts.MessageNewlines < 0 {
		return nil, oops.Errorf("message newlines cannot be negative")
	}

	errOut := opts.ErrOut
	if errOut == nil {
		errOut = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	menuLocale := opts.MenuLocale
	if menuLocale == language.Und {
		menuLocale = i18n.English
	}

	menu, err := opts.Bundle.Catalog(menuLocale)
	if err != nil {
		return nil, err
	}
	vi, err := opts.Bundle.Catalog(i18n.Vietnamese)
	if err != nil {
		return nil, err
	}
	en, err := opts.Bundle.Catalog(i18n.English)
	if err != nil {
		return nil, err
	}

	return &Controller{
		in:         opts.In,
		reader:     bufio.NewReader(opts.In),
		out:        opts.Out,
		errOut:     errOut,
		menu:       menu,
		vietnamese: vi,
		english:    en,
		captcha:    opts.Captcha,
		terminator: strings.Repeat("\n", opts.MessageNewlines),
		metrics:    opts.Metrics,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// readLine returns the next line with surrounding whitespace removed. A
// final line without a trailing newline is still returned.
func (c *Controller) readLine() (string, error) {
	if c.closed {
		return "", oops.Code(CodeInputClosed).Wrapf(ErrInputClosed, "read after close")
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", oops.Code(CodeInputClosed).
			With("cause", err.Error()).
			Wrapf(ErrInputClosed, "read line")
	}
	return strings.TrimSpace(line), nil
}

// closeInput releases the input stream. Only the exit path calls it.
func (c *Controller) closeInput() {
	if c.closed {
		return
	}
	c.closed = true
	if closer, ok := c.in.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.logger.Debug("error closing input", "error", err)
		}
	}
}

// write sends s to the output stream. Console output is best effort; a
// broken terminal surfaces as a read failure on the next prompt.
func (c *Controller) write(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		c.logger.Debug("error writing output", "error", err)
	}
}

// displayMessage writes the catalog text for key with no trailing newline.
func (c *Controller) displayMessage(cat *i18n.Catalog, key i18n.Key) {
	c.write(cat.Text(key))
}

// displayLine writes the catalog text for key followed by the configured
// message terminator.
func (c *Controller) displayLine(cat *i18n.Catalog, key i18n.Key) {
	c.displayMessage(cat, key)
	c.write(c.terminator)
}

// errorf writes a line to the error stream.
func (c *Controller) errorf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.errOut, format+"\n", args...); err != nil {
		c.logger.Debug("error writing error output", "error", err)
	}
}
