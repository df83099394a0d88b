package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"ashfall/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu     sync.RWMutex
	globalWriter io.Writer = os.Stdout
)

// Init configures the global zerolog logger. When cfg.File is set, log
// output goes to a size-limited file instead of stdout.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var sink io.Writer = os.Stdout
	if cfg.File != "" {
		if w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB); err == nil {
			sink = w
		}
	}
	writerMu.Lock()
	globalWriter = sink
	writerMu.Unlock()

	output := sink
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: sink}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer returns the sink configured by Init, for handing to the HTTP
// request logger so both streams land in the same place.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return globalWriter
}
