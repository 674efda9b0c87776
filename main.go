package main

import (
	"context"
	"os"

	"fluxmcp/internal/inject"
	"fluxmcp/internal/log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

func main() {
	logger := log.New(os.Stderr)
	ctx := log.NewContext(context.Background(), logger)

	injector := inject.Setup(ctx)
	defer func() { _ = injector.Shutdown() }()

	srv, err := do.Invoke[*server.MCPServer](injector)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	logger.Info("flux-schnell mcp server ready")
	if err := server.ServeStdio(srv, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return log.NewContext(ctx, logger)
	})); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}
