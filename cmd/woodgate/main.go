package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/search"
)

const version = "1.0.0"

type cliOptions struct {
	transport string
	host      string
	port      int
	logLevel  string
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	opts := parseFlags(cfg)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(strings.ToLower(opts.logLevel)); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	launcher, err := browser.NewLauncher(ctx, cfg.Headless, cfg.BrowserTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("browser init")
	}
	defer launcher.Close()

	svc := search.NewService(cfg, launcher, log.With().Str("comp", "service").Logger())

	mcpServer := server.NewMCPServer(
		"woodgate",
		version,
		server.WithToolCapabilities(true),
	)
	mcpServer.AddTool(createSearchTool(), handleSearch(cfg, svc, log.With().Str("tool", "search").Logger()))
	mcpServer.AddTool(createGetAlertsTool(), handleGetAlerts(svc, log.With().Str("tool", "get_alerts").Logger()))
	mcpServer.AddTool(createGetDocumentTool(), handleGetDocument(svc, log.With().Str("tool", "get_document").Logger()))
	mcpServer.AddTool(createListProductsTool(), handleListProducts())
	mcpServer.AddTool(createListDocumentTypesTool(), handleListDocumentTypes())

	switch opts.transport {
	case "sse":
		addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
		log.Info().Str("addr", addr).Msg("starting woodgate MCP server (sse)")
		sse := server.NewSSEServer(mcpServer)
		if err := sse.Start(addr); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	default:
		log.Info().Msg("starting woodgate MCP server (stdio)")
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	}
}

func parseFlags(cfg config.Config) cliOptions {
	transport := flag.String("transport", "stdio", "MCP transport: stdio or sse")
	host := flag.String("host", cfg.Host, "Listen host for the sse transport")
	port := flag.Int("port", cfg.Port, "Listen port for the sse transport")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()
	return cliOptions{
		transport: strings.ToLower(strings.TrimSpace(*transport)),
		host:      *host,
		port:      *port,
		logLevel:  *logLevel,
	}
}
