package logging

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

// ResultWriter appends probe results as JSON lines to a rotating file.
// One line per probe per tick, whatever the notification outcome was.
type ResultWriter struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
}

func NewResultWriter(path string) (*ResultWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 10,
		MaxAge:     14, // days
		Compress:   true,
	}
	return &ResultWriter{w: w, enc: json.NewEncoder(w)}, nil
}

func (l *ResultWriter) Append(ctx context.Context, r *domain.ProbeResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(r)
}

func (l *ResultWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
