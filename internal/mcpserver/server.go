// Package mcpserver exposes the book wizard as MCP tools over streamable
// HTTP, so agents can drive a wizard session programmatically.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bookwright/bookwright/internal/logger"
	srv "github.com/bookwright/bookwright/internal/server"
)

// Server manages the embedded MCP HTTP server. Tools operate directly on
// the wizard processor, sharing the session store with the REST surface.
type Server struct {
	proc       *srv.Processor
	mcpServer  *server.MCPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server around proc. Start must be called before use.
func New(proc *srv.Processor) *Server {
	return &Server{proc: proc}
}

// Start registers the tools and serves MCP on a random localhost port.
// Returns the bound port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"bookwright-tools",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("mcpserver: serve error: %v", err)
		}
	}()

	logger.Debug("mcpserver: ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	s.mcpServer = nil
	return nil
}

// URL returns the MCP endpoint URL.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
