package gorecord

import (
	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger installs the logger used for debug events (dropped assignments,
// document loads). The default discards everything.
func SetLogger(l zerolog.Logger) { logger = l }

// Logger returns the current logger so companion packages log consistently.
func Logger() *zerolog.Logger { return &logger }
