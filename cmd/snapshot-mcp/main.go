package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/snapshot-lab-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("snapshot-lab-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("snapshot-lab-mcp - MCP server for snapshot filtering and face privacy compositing")
			fmt.Println()
			fmt.Println("Usage: snapshot-lab-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug    Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=160          Snapshot width in pixels\n", server.EnvWidth)
			fmt.Printf("  %s=120         Snapshot height in pixels\n", server.EnvHeight)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := server.ConfigFromEnv(os.Getenv)
	logger := initLogger(cfg.Debug)
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
		"width":   cfg.SnapshotWidth,
		"height":  cfg.SnapshotHeight,
	}).Debug("Snapshot MCP server starting")

	server.ServerVersion = Version
	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}

// initLogger logs to stderr, since stdout carries the MCP protocol.
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
