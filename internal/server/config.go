package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/snapshot-lab-mcp/internal/imaging"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel = "SNAPSHOT_MCP_LOG_LEVEL"
	EnvWidth    = "SNAPSHOT_MCP_WIDTH"
	EnvHeight   = "SNAPSHOT_MCP_HEIGHT"
)

// Config holds the server settings.
type Config struct {
	// SnapshotWidth and SnapshotHeight are the working resolution every
	// snapshot is resized to.
	SnapshotWidth  int
	SnapshotHeight int

	// Debug enables debug-level logging.
	Debug bool
}

// DefaultConfig returns the 160×120 working resolution with info logging.
func DefaultConfig() Config {
	return Config{
		SnapshotWidth:  imaging.SnapshotWidth,
		SnapshotHeight: imaging.SnapshotHeight,
	}
}

// ConfigFromEnv builds a Config from environment variables, starting from
// DefaultConfig. getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	cfg.Debug = strings.EqualFold(strings.TrimSpace(getenv(EnvLogLevel)), "debug")

	var err error
	if cfg.SnapshotWidth, err = positiveInt(getenv, EnvWidth, cfg.SnapshotWidth); err != nil {
		return cfg, err
	}
	if cfg.SnapshotHeight, err = positiveInt(getenv, EnvHeight, cfg.SnapshotHeight); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v <= 0 {
		return def, fmt.Errorf("invalid %s %d: must be positive", key, v)
	}
	return v, nil
}
