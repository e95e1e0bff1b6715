package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps use "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a command and the pipeline stages it passes through.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	stage  string
	lap    time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, lap: now}
}

// enter closes the current stage, logging its duration at debug level, and
// starts timing name.
func (p *progress) enter(name string) {
	p.closeStage()
	p.stage = name
	p.lap = time.Now()
}

func (p *progress) closeStage() {
	if p.stage == "" {
		return
	}
	p.logger.Debug("stage finished", "stage", p.stage, "elapsed", time.Since(p.lap).Round(time.Millisecond))
	p.stage = ""
}

// done logs msg with the total elapsed time, e.g. "Solved 0 → 25 (1.234s)".
func (p *progress) done(msg string) {
	p.closeStage()
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
