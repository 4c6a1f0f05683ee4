package clock

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/utilmcp/timekit/config"
)

// NewClock creates the appropriate time source based on the configuration
func NewClock(logger *zap.Logger, cfg *config.Config) (Clock, error) {
	switch cfg.Time.Source {
	case "system":
		return SystemClock{}, nil
	case "fixed":
		t, err := time.Parse(time.RFC3339, cfg.Time.FixedTime)
		if err != nil {
			return nil, fmt.Errorf("invalid time.fixed_time: %w", err)
		}
		logger.Warn("serving a fixed time source, all time reads are pinned",
			zap.Time("fixed_time", t))
		return NewFixedClock(t), nil
	default:
		return nil, fmt.Errorf("unsupported time source: %s", cfg.Time.Source)
	}
}
