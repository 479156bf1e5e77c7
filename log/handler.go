// Copyright (c) 2026 The Warden developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Format selects how records are rendered.
type Format int

const (
	// FormatTerminal is the aligned human readable form, optionally colored.
	FormatTerminal Format = iota
	// FormatJSON writes one JSON object per record.
	FormatJSON
	// FormatLogfmt writes key=value pairs.
	FormatLogfmt
)

var formatNames = map[string]Format{
	"terminal": FormatTerminal,
	"json":     FormatJSON,
	"logfmt":   FormatLogfmt,
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Errorf("unknown log format %q", name)
	}
	return f, nil
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// NewHandler builds a handler writing to wr in the given format. Records below
// lvl are dropped; a nil lvl lets everything through. useColor only affects
// FormatTerminal.
func NewHandler(wr io.Writer, format Format, lvl *slog.LevelVar, useColor bool) slog.Handler {
	lvl = orAll(lvl)
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(wr, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: replacer(false),
		})
	case FormatLogfmt:
		return slog.NewTextHandler(wr, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: replacer(true),
		})
	default:
		return NewTerminalHandler(wr, lvl, useColor)
	}
}

func orAll(lvl *slog.LevelVar) *slog.LevelVar {
	if lvl != nil {
		return lvl
	}
	lvl = new(slog.LevelVar)
	lvl.Set(levelMaxVerbosity)
	return lvl
}

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler { return discard{} }

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

// TerminalHandler renders records for an interactive console:
//
//	INFO [10-14|09:12:44.120] rewards calculated       epoch=7 nodes=3
type TerminalHandler struct {
	out   *terminalOutput
	lvl   *slog.LevelVar
	attrs []slog.Attr
	group string
}

// terminalOutput is shared by a handler and all handlers derived from it,
// so that concurrent records never interleave and key padding stays stable.
type terminalOutput struct {
	mu       sync.Mutex
	wr       io.Writer
	useColor bool
	buf      []byte
	// longest value seen per key, capped at termCtxMaxPadding
	fieldPadding map[string]int
}

// NewTerminalHandler returns a TerminalHandler. A nil lvl logs every level.
func NewTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		out: &terminalOutput{
			wr:           wr,
			useColor:     useColor,
			fieldPadding: make(map[string]int),
		},
		lvl: orAll(lvl),
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	o := h.out
	o.mu.Lock()
	defer o.mu.Unlock()

	buf := h.format(o.buf, r, o.useColor)
	_, err := o.wr.Write(buf)
	o.buf = buf[:0]
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		merged = append(merged, h.qualify(a))
	}
	return &TerminalHandler{out: h.out, lvl: h.lvl, attrs: merged, group: h.group}
}

// WithGroup prefixes the keys of subsequent attributes with name and a dot.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &TerminalHandler{out: h.out, lvl: h.lvl, attrs: h.attrs, group: h.group + name + "."}
}

// ResetFieldPadding forgets the value widths seen so far.
func (h *TerminalHandler) ResetFieldPadding() {
	h.out.mu.Lock()
	h.out.fieldPadding = make(map[string]int)
	h.out.mu.Unlock()
}

func (h *TerminalHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + a.Key
	}
	return a
}

// replacer returns the ReplaceAttr hook shared by the JSON and logfmt handlers.
// Keys are shortened to t/lvl and amounts render as decimal strings.
func replacer(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey:
			if a.Value.Kind() != slog.KindTime {
				break
			}
			if logfmt {
				return slog.String("t", a.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: a.Value}
		case slog.LevelKey:
			if l, ok := a.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}
		if a.Value.Kind() != slog.KindAny {
			return a
		}
		if s, ok := stringify(a.Value.Any(), logfmt); ok {
			a.Value = slog.StringValue(s)
		}
		return a
	}
}

func stringify(v any, logfmt bool) (string, bool) {
	switch v := v.(type) {
	case time.Time:
		if logfmt {
			return v.Format(timeFormat), true
		}
		return "", false
	case *big.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.String(), true
	case *uint256.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.Dec(), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "<nil>", true
		}
		return v.String(), true
	}
	return "", false
}
