package zerolog

import (
	"github.com/bulib/bucache"
	"github.com/rs/zerolog"
)

var _ bucache.Logger = Logger{}

type Logger struct{ L zerolog.Logger }

func (z Logger) Debug(msg string, f bucache.Fields) {
	z.L.Debug().Fields(map[string]any(f)).Msg(msg)
}
func (z Logger) Info(msg string, f bucache.Fields) {
	z.L.Info().Fields(map[string]any(f)).Msg(msg)
}
func (z Logger) Warn(msg string, f bucache.Fields) {
	z.L.Warn().Fields(map[string]any(f)).Msg(msg)
}
func (z Logger) Error(msg string, f bucache.Fields) {
	z.L.Error().Fields(map[string]any(f)).Msg(msg)
}
