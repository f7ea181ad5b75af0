package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ParseLevel converts a logging.level value into a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging.level %q: %w", s, err)
	}
	return level, nil
}
