package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookwright/bookwright/internal/config"
	"github.com/bookwright/bookwright/internal/logger"
	"github.com/bookwright/bookwright/internal/mcpserver"
	"github.com/bookwright/bookwright/internal/natsbus"
	srv "github.com/bookwright/bookwright/internal/server"
	"github.com/bookwright/bookwright/internal/store"
	"github.com/bookwright/bookwright/internal/suggest"
	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	listen  string
	dataDir string
	store   string
	mcp     bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the book wizard server",
	Long: `Run the book wizard HTTP server.

The server exposes the wizard REST API used by the interactive client. Session
state lives in embedded NATS JetStream by default (--store memory keeps it
in-process only). With an LLM API key configured, step options are ranked by
the model; otherwise a static shortlist is used. --mcp additionally exposes
the wizard as MCP tools over streamable HTTP.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", "", "Listen address (default: :8055)")
	serveCmd.Flags().StringVar(&serveFlags.dataDir, "data-dir", "", "Data directory for NATS storage")
	serveCmd.Flags().StringVar(&serveFlags.store, "store", "", "Session store: nats or memory (default: nats)")
	serveCmd.Flags().BoolVar(&serveFlags.mcp, "mcp", false, "Also expose the wizard as MCP tools")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyLoggerConfig(cfg)

	if serveFlags.listen != "" {
		cfg.ListenAddr = serveFlags.listen
	}
	if serveFlags.dataDir != "" {
		cfg.DataDir = serveFlags.dataDir
	}
	if serveFlags.store != "" {
		cfg.Store = serveFlags.store
	}
	if serveFlags.mcp {
		cfg.MCP = true
	}

	ctx := cmd.Context()

	var (
		st   store.Store
		opts []srv.ProcessorOption
		ns   *natsserver.Server
		nc   *nats.Conn
	)

	switch cfg.Store {
	case "nats":
		ns, err = natsbus.StartEmbedded(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("starting embedded NATS: %w", err)
		}
		nc, err = natsbus.ConnectInProcess(ns)
		if err != nil {
			ns.Shutdown()
			return fmt.Errorf("connecting to embedded NATS: %w", err)
		}
		js, err := natsbus.CreateJetStream(nc)
		if err != nil {
			_ = natsbus.Shutdown(nc, ns)
			return fmt.Errorf("creating JetStream context: %w", err)
		}
		if _, err := natsbus.SetupStream(ctx, js); err != nil {
			_ = natsbus.Shutdown(nc, ns)
			return fmt.Errorf("setting up event stream: %w", err)
		}
		kv, err := store.NewKV(ctx, js)
		if err != nil {
			_ = natsbus.Shutdown(nc, ns)
			return fmt.Errorf("creating session store: %w", err)
		}
		st = kv
		opts = append(opts, srv.WithPublisher(natsbus.NewPublisher(js)))
	case "memory":
		st = store.NewMemory()
	default:
		return fmt.Errorf("unknown store %q (expected nats or memory)", cfg.Store)
	}

	if cfg.LLMAPIKey != "" {
		var llmOpts []suggest.OpenAIOption
		if cfg.LLMModel != "" {
			llmOpts = append(llmOpts, suggest.WithModel(cfg.LLMModel))
		}
		if cfg.LLMBaseURL != "" {
			llmOpts = append(llmOpts, suggest.WithBaseURL(cfg.LLMBaseURL))
		}
		opts = append(opts, srv.WithSuggester(suggest.NewOpenAI(cfg.LLMAPIKey, llmOpts...)))
		logger.Info("Option ranking: %s", cfg.LLMModel)
	} else {
		logger.Info("No LLM API key configured, using static option ranking")
	}

	proc := srv.NewProcessor(st, opts...)
	router := srv.NewRouter(proc)

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	var mcp *mcpserver.Server
	if cfg.MCP {
		mcp = mcpserver.New(proc)
		port, err := mcp.Start(ctx)
		if err != nil {
			return fmt.Errorf("starting MCP server: %w", err)
		}
		fmt.Printf("MCP server listening on http://127.0.0.1:%d/mcp\n", port)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	fmt.Printf("bookwright server listening on %s\n", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		shutdown(httpSrv, mcp, nc, ns)
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
		fmt.Println("\nShutting down gracefully...")
	case <-ctx.Done():
	}

	shutdown(httpSrv, mcp, nc, ns)
	return nil
}

func shutdown(httpSrv *http.Server, mcp *mcpserver.Server, nc *nats.Conn, ns *natsserver.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown: %v", err)
	}
	if mcp != nil {
		if err := mcp.Stop(); err != nil {
			logger.Error("MCP shutdown: %v", err)
		}
	}
	if ns != nil {
		if err := natsbus.Shutdown(nc, ns); err != nil {
			logger.Error("NATS shutdown: %v", err)
		}
	}
}
