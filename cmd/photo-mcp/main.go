package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/photo-tools-mcp/internal/config"
	"github.com/ironsheep/photo-tools-mcp/internal/server"
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
			fmt.Printf("photo-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("photo-tools-mcp - MCP server for photo editing and shape mosaics")
			fmt.Println()
			fmt.Println("Usage: photo-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PHOTO_MCP_CONFIG=/path/config.yaml    Load settings from a YAML file")
			fmt.Println("  PHOTO_MCP_LOG_LEVEL=debug             Log level (debug, info, warn, error)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Log to stderr (stdout is for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	logger.Info("photo MCP server starting",
		"version", Version, "built", BuildTime, "commit", GitCommit,
		"tile_size", cfg.Mosaic.TileSize, "canvas_size", cfg.Mosaic.CanvasSize)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
