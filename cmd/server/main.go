// Package main provides the grid resampling HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	httpHandler "go.ngs.io/regrid/internal/http"
	"go.ngs.io/regrid/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("regrid version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")

	log.Printf("Starting regrid server...")
	log.Printf("Port: %s", port)

	// Initialize use case.
	exportUC := usecase.NewExportUseCase()

	// Setup router.
	router := httpHandler.SetupRouter(exportUC)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/grids")
	log.Printf("  - GET /v1/grids/:variant")
	log.Printf("  - GET /v1/grids/:variant/nearest")
	log.Printf("  - POST /v1/resample")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Regrid Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  server [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  server")
	fmt.Println()
	fmt.Println("  # Start server on custom port")
	fmt.Println("  PORT=3000 server")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET  /health                     Health check")
	fmt.Println("  GET  /v1/grids                   List supported grid variants")
	fmt.Println("  GET  /v1/grids/:variant          Describe a grid variant")
	fmt.Println("  GET  /v1/grids/:variant/nearest  Locate the nearest grid point")
	fmt.Println("  POST /v1/resample                Resample a field onto a regular grid")
	fmt.Println()
}
