package lib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[37m"
	colorBold   = "\033[1m"
)

// ColorHandler is a slog.Handler that writes compact ANSI-colored lines for
// interactive terminals.
type ColorHandler struct {
	writer io.Writer
	opts   *slog.HandlerOptions
	attrs  []string // pre-formatted key=value pairs bound via WithAttrs
	prefix string   // dotted group prefix from WithGroup
}

func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColorHandler{
		writer: w,
		opts:   opts,
	}
}

func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	levelColor := h.getLevelColor(r.Level)
	levelText := h.getLevelText(r.Level)

	timestamp := r.Time.Format("15:04:05")

	attrs := append([]string{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.formatAttr(a))
		return true
	})

	var attrsText string
	if len(attrs) > 0 {
		attrsText = " " + colorGray + strings.Join(attrs, " ") + colorReset
	}

	message := fmt.Sprintf("%s[%s]%s %s%s %s%s%s\n",
		colorGray, timestamp, colorReset,
		levelColor, levelText, colorReset,
		r.Message, attrsText)

	_, err := h.writer.Write([]byte(message))
	return err
}

// WithAttrs binds the attrs to every record the returned handler writes.
// They are formatted once, under the group prefix active at bind time.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append([]string{}, h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.formatAttr(a))
	}
	return &h2
}

// WithGroup qualifies subsequent attr keys with a dotted prefix.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *ColorHandler) formatAttr(a slog.Attr) string {
	return fmt.Sprintf("%s%s=%v", h.prefix, a.Key, a.Value)
}

func (h *ColorHandler) getLevelColor(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return colorBlue
	case slog.LevelInfo:
		return colorReset
	case slog.LevelWarn:
		return colorYellow
	case slog.LevelError:
		return colorRed + colorBold
	default:
		return colorReset
	}
}

func (h *ColorHandler) getLevelText(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERRO"
	default:
		return level.String()
	}
}
