package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-transform/internal/config"
	"github.com/ironsheep/image-transform/internal/server"
	"github.com/ironsheep/image-transform/internal/transform"
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
			fmt.Printf("image-transform %s (%s backend)\n", Version, backendName)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-transform - MCP server for image resizing, cropping and compositing")
			fmt.Println()
			fmt.Println("Usage: image-transform [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_TRANSFORM_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  IMAGE_TRANSFORM_CONCURRENCY=<n>       Backend worker threads (0 = default)")
			fmt.Println("  IMAGE_TRANSFORM_BACKGROUND=#rrggbb    Default padding/flatten colour")
			fmt.Println("  IMAGE_TRANSFORM_STRIP=true|false      Strip metadata by default")
			fmt.Println("  IMAGE_TRANSFORM_INTERLACE=true|false  Interlaced output by default")
			fmt.Println("  IMAGE_TRANSFORM_PAD_ALPHA=always|preserve")
			fmt.Println("                                        Fill padding alpha policy")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Image Transform Server v%s (built %s, commit %s, %s backend)", Version, BuildTime, GitCommit, backendName)
	}

	ctx, err := transform.Init("image-transform", cfg.Concurrency, newBackend(cfg),
		transform.WithLogger(log.Default()),
		transform.WithBackground(cfg.Background),
		transform.WithPadAlpha(cfg.PadAlpha),
		transform.WithDebug(cfg.Debug()),
	)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}

	srv := server.New(ctx, Version)
	runErr := srv.Run()

	if err := srv.Close(); err != nil {
		log.Printf("Failed to release images: %v", err)
	}
	if err := ctx.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if runErr != nil {
		log.Fatalf("Server error: %v", runErr)
	}
}
