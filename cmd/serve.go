package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router"
)

// serveCommand サーバー起動コマンド
func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve caleidenticon API",
		Run: func(_ *cobra.Command, _ []string) {
			logger := getLogger()
			defer logger.Sync()

			logger.Info(fmt.Sprintf("caleidenticon %s (revision %s)", Version, Revision))

			fs, err := c.getFileStorage()
			if err != nil {
				logger.Fatal("failed to setup file storage", zap.Error(err))
			}
			logger.Info("file storage ready", zap.String("type", c.Storage.Type))

			e, err := router.Setup(c.getRouterConfig(fs, logger))
			if err != nil {
				logger.Fatal("failed to setup router", zap.Error(err))
			}
			server := &Server{L: logger, Router: e}

			go func() {
				if err := server.Start(fmt.Sprintf(":%d", c.Port)); err != nil {
					logger.Info("shutting down the server")
				}
			}()

			logger.Info("caleidenticon started", zap.Int("port", c.Port))
			waitSIGINT()
			logger.Info("caleidenticon shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("abnormal shutdown", zap.Error(err))
			}
			logger.Info("caleidenticon shutdown")
		},
	}
}

// Server APIサーバー
type Server struct {
	L      *zap.Logger
	Router *echo.Echo
}

// Start サーバーを起動します
func (s *Server) Start(address string) error {
	if err := s.Router.Start(address); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown サーバーを停止します
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Router.Shutdown(ctx)
	s.L.Info("Router shutdown")
	return err
}

func waitSIGINT() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}
