// Package app wires the status-line pipeline: one metadata query, one
// formatting pass, one line on stdout.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/genricoloni/spotbar/internal/domain"
	"go.uber.org/zap"
)

// App orchestrates a single status-line invocation
type App struct {
	logger    *zap.Logger
	querier   domain.Querier
	formatter domain.Formatter
	out       io.Writer
}

// NewApp creates the orchestrator for one invocation
func NewApp(
	logger *zap.Logger,
	querier domain.Querier,
	formatter domain.Formatter,
	out io.Writer,
) *App {
	return &App{
		logger:    logger,
		querier:   querier,
		formatter: formatter,
		out:       out,
	}
}

// Run performs the query-format-print pass. Query failures are logged
// and degraded to empty output: a status block erroring out is worse
// than a status block going silent, so Run only fails on write errors.
func (a *App) Run(ctx context.Context) error {
	meta, err := a.querier.NowPlaying(ctx)
	if err != nil {
		a.logger.Warn("Metadata query failed, showing nothing", zap.Error(err))
		meta = nil
	}

	line, ok := a.formatter.Format(meta)
	if !ok {
		a.logger.Debug("Nothing playing, block stays empty")
		return nil
	}

	if _, err := fmt.Fprintln(a.out, line); err != nil {
		return fmt.Errorf("failed to write status line: %w", err)
	}
	return nil
}
