package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger escribe el log de auditoría de errores: una línea JSON por error,
// en archivos append-only rotados por fecha (logs/YYYY-MM-DD.log).
// Un fallo del sink de log nunca enmascara el error real: se imprime a stderr y se descarta.
type Logger struct {
	mu      sync.Mutex
	dir     string
	service string
	now     func() time.Time
}

// Entry campos de una entrada de auditoría.
type Entry struct {
	HTTPMethod string
	APIURL     string
	ErrorCode  string
	Message    string
	StatusCode int
}

// New construye el logger de auditoría. El directorio se crea si no existe.
func New(dir, service string) *Logger {
	return &Logger{dir: dir, service: service, now: time.Now}
}

// Record añade una entrada al archivo del día. Nunca retorna error:
// si no se puede escribir, se reporta por stderr y se continúa.
func (l *Logger) Record(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().UTC()
	path := filepath.Join(l.dir, ts.Format("2006-01-02")+".log")

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL LOGGING ERROR: no se pudo crear %s: %v\n", l.dir, err)
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL LOGGING ERROR: no se pudo escribir a %s: %v\n", path, err)
		return
	}
	defer f.Close()

	level := zerolog.ErrorLevel
	if e.StatusCode >= 500 {
		level = zerolog.FatalLevel // equivalente a CRITICAL; no termina el proceso
	}
	zl := zerolog.New(f)
	zl.WithLevel(level).
		Time("timestamp", ts).
		Str("service", l.service).
		Str("http_method", e.HTTPMethod).
		Str("api_url", e.APIURL).
		Str("error_code", e.ErrorCode).
		Msg(e.Message)
}
