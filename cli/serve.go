package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"poshchat/controllers"
	"poshchat/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat page and the /api/chat relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(v, cfgFile)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, os.Stdout, nil)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.Server.Mode)

	chat, err := controllers.NewChatController(a.chat, a.logger)
	if err != nil {
		return err
	}
	router := routes.SetupRouter(routes.Deps{
		Chat:         chat,
		Logger:       a.logger,
		Registry:     a.registry,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", server.Addr, "transport", cfg.Provider.Transport, "model", cfg.Provider.Model)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
