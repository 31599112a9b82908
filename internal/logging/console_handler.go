package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// consoleHandler writes one human-readable line per record:
//
//	2026-01-02 15:04:05.000 INFO [component] video#lookup (stage) - message [file:line] k=v
//
// The component, video, lookup and stage fields form the subject and are not
// repeated as key=value pairs.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	addSource bool

	fields []field
	groups []string
}

type field struct {
	key   string
	value slog.Value
}

// subject holds the identity fields lifted out of the key=value list.
type subject struct {
	component, videoID, lookupID, stage string
}

const lookupIDWidth = 8

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := make([]field, 0, len(h.fields)+record.NumAttrs())
	fields = append(fields, h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})
	subj, rest := splitSubject(lastWins(fields))

	var b strings.Builder
	b.WriteString(consoleTime(record.Time))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))
	if subj.component != "" {
		b.WriteString(" [" + subj.component + "]")
	}
	if s := subj.String(); s != "" {
		b.WriteString(" " + s)
	}
	b.WriteString(" - ")
	if msg := strings.TrimSpace(record.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			b.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	for _, f := range rest {
		b.WriteString(" " + f.key + "=" + fieldValue(f.value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.fields = make([]field, 0, len(h.fields)+len(attrs))
	clone.fields = append(clone.fields, h.fields...)
	for _, attr := range attrs {
		clone.fields = appendField(clone.fields, h.groups, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// String renders "video#lookup (stage)", dropping absent parts.
func (s subject) String() string {
	var b strings.Builder
	b.WriteString(s.videoID)
	if id := s.lookupID; id != "" && s.videoID != "" {
		if len(id) > lookupIDWidth {
			id = id[:lookupIDWidth]
		}
		b.WriteString("#" + id)
	}
	if s.stage != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(" + s.stage + ")")
	}
	return b.String()
}

func splitSubject(fields []field) (subject, []field) {
	var subj subject
	rest := fields[:0:0]
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			subj.component = strings.TrimSpace(plainValue(f.value))
		case FieldVideoID:
			subj.videoID = strings.TrimSpace(plainValue(f.value))
		case FieldLookupID:
			subj.lookupID = strings.TrimSpace(plainValue(f.value))
		case FieldStage:
			subj.stage = strings.TrimSpace(plainValue(f.value))
		default:
			rest = append(rest, f)
		}
	}
	return subj, rest
}

// lastWins keeps the first position of each key with its latest value.
func lastWins(fields []field) []field {
	if len(fields) < 2 {
		return fields
	}
	index := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if i, ok := index[f.key]; ok {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

// appendField flattens groups into dotted keys.
func appendField(dst []field, groups []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		prefix := groups
		if attr.Key != "" {
			prefix = append(append([]string{}, groups...), attr.Key)
		}
		for _, member := range value.Group() {
			dst = appendField(dst, prefix, member)
		}
		return dst
	}
	if attr.Key == "" {
		return dst
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(dst, field{key: key, value: value})
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
