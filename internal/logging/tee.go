package logging

import (
	"context"
	"log/slog"
)

// teeHandler forwards every record to the console handler and, when the
// record clears its level gate, to the database handler as well. The console
// handler keeps receiving records even if the database sink fails.
type teeHandler struct {
	console slog.Handler
	db      slog.Handler
}

func Tee(console, db slog.Handler) slog.Handler {
	return &teeHandler{console: console, db: db}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.console.Enabled(ctx, level) || t.db.Enabled(ctx, level)
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if t.console.Enabled(ctx, record.Level) {
		err = t.console.Handle(ctx, record)
	}
	if t.db.Enabled(ctx, record.Level) {
		if dbErr := t.db.Handle(ctx, record); err == nil {
			err = dbErr
		}
	}
	return err
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{console: t.console.WithAttrs(attrs), db: t.db.WithAttrs(attrs)}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{console: t.console.WithGroup(name), db: t.db.WithGroup(name)}
}
