package engine

import (
	"time"

	"go.uber.org/zap"
)

// RandomFirstPlayer lets the engine RNG pick who opens.
const RandomFirstPlayer = -1

// Config holds the tunable parameters for one game.
type Config struct {
	// Seed drives every random choice: shuffle, bonus tokens, first player.
	Seed int64
	// FirstPlayer is the opening seat, or RandomFirstPlayer.
	FirstPlayer int
	// Logger receives structured engine logs. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns a config with a time-based seed, a random opener
// and a no-op logger.
func DefaultConfig() Config {
	return Config{
		Seed:        time.Now().UnixNano(),
		FirstPlayer: RandomFirstPlayer,
		Logger:      zap.NewNop(),
	}
}
