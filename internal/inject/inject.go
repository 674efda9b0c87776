package inject

import (
	"context"
	"fmt"
	"net/http"

	"fluxmcp/internal/config"
	"fluxmcp/internal/log"
	"fluxmcp/internal/replicate"
	"fluxmcp/internal/tool"

	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

const (
	serverName    = "flux-schnell"
	serverVersion = "1.0.0"
)

func Setup(ctx context.Context) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	})

	do.ProvideValue[*http.Client](injector, http.DefaultClient)
	do.Provide[config.Config](injector, func(i *do.Injector) (config.Config, error) {
		return config.Load()
	})
	do.Provide[replicate.Client](injector, replicate.NewHTTPClient)
	do.Provide[*tool.Handler](injector, tool.NewHandler)

	do.Provide[*server.MCPServer](injector, func(i *do.Injector) (*server.MCPServer, error) {
		handler, err := do.Invoke[*tool.Handler](i)
		if err != nil {
			return nil, err
		}
		s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))
		handler.Register(s)
		return s, nil
	})

	return injector
}
