package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// DefaultRingSize is how many records the Log panel can show.
const DefaultRingSize = 200

// Ring is a slog.Handler that keeps the last few records as formatted lines.
type Ring struct {
	store *ringStore
	level slog.Leveler
	attrs []slog.Attr
	group string
}

type ringStore struct {
	mu     sync.Mutex
	lines  []string
	next   int
	full   bool
	notify func()
}

// NewRing returns a handler holding up to size lines. size <= 0 uses
// DefaultRingSize.
func NewRing(size int, level slog.Leveler) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &Ring{store: &ringStore{lines: make([]string, size)}, level: level}
}

// SetNotify registers fn to run after each appended line. fn is called from
// whichever goroutine logged and must not log itself.
func (r *Ring) SetNotify(fn func()) {
	r.store.mu.Lock()
	r.store.notify = fn
	r.store.mu.Unlock()
}

// Lines returns the stored lines, oldest first.
func (r *Ring) Lines() []string {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.full {
		return append([]string(nil), s.lines[:s.next]...)
	}
	out := make([]string, 0, len(s.lines))
	out = append(out, s.lines[s.next:]...)
	return append(out, s.lines[:s.next]...)
}

// Tail returns at most n of the newest lines, oldest first.
func (r *Ring) Tail(n int) []string {
	lines := r.Lines()
	if n >= 0 && len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

func (r *Ring) Enabled(_ context.Context, l slog.Level) bool {
	return l >= r.level.Level()
}

func (r *Ring) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(rec.Time.Format("15:04:05"))
	sb.WriteByte(' ')
	sb.WriteString(rec.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(rec.Message)
	for _, a := range r.attrs {
		writeAttr(&sb, "", a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, r.group, a)
		return true
	})

	s := r.store
	s.mu.Lock()
	s.lines[s.next] = sb.String()
	s.next++
	if s.next == len(s.lines) {
		s.next = 0
		s.full = true
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *r
	next.attrs = append(append([]slog.Attr(nil), r.attrs...), qualify(r.group, attrs)...)
	return &next
}

func (r *Ring) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	next := *r
	if r.group != "" {
		next.group = r.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

func qualify(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: group + "." + a.Key, Value: a.Value}
	}
	return out
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, sub := range a.Value.Group() {
			writeAttr(sb, key, sub)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		if strings.ContainsAny(v, " =\"") || v == "" {
			sb.WriteString(fmt.Sprintf("%q", v))
			return
		}
		sb.WriteString(v)
		return
	}
	sb.WriteString(a.Value.String())
}
