package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для use case'ов, handler'ов и middleware.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type stdLogger struct {
	l *log.Logger
}

// Default возвращает логгер на базе стандартного log с выводом key=value.
func Default() Logger {
	return &stdLogger{l: log.Default()}
}

// New оборачивает переданный *log.Logger.
func New(l *log.Logger) Logger {
	return &stdLogger{l: l}
}

func (s *stdLogger) Info(msg string, fields map[string]any) {
	s.l.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (s *stdLogger) Warn(msg string, fields map[string]any) {
	s.l.Printf("WARN: %s%s", msg, formatFields(fields))
}

func (s *stdLogger) Error(msg string, fields map[string]any) {
	s.l.Printf("ERROR: %s%s", msg, formatFields(fields))
}

// formatFields выводит поля в порядке ключей, чтобы строки логов были стабильны.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

type nopLogger struct{}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
