package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/dca-agent/internal/adapters/http"
	"github.com/PabloGalante/dca-agent/internal/adapters/queue"
	wsadapter "github.com/PabloGalante/dca-agent/internal/adapters/websocket"
	"github.com/PabloGalante/dca-agent/internal/app/broadcast"
	"github.com/PabloGalante/dca-agent/internal/config"
	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := observability.Init(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	svc := newServices(time.Now())
	hub := broadcast.NewHub()

	notifiers := []domain.ChatNotifier{hub}
	var relay *queue.ChatRelay
	if cfg.KafkaEnabled() {
		log.Info("relaying chat updates to kafka",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.Topic,
		)
		relay = queue.NewChatRelay(queue.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		notifiers = append(notifiers, relay)
	}

	chat := svc.conversation(notifiers...)
	gateway := wsadapter.NewGateway(hub, chat, cfg.AllowedOrigins)

	handler := httpadapter.NewServer(httpadapter.Options{
		Chat:           chat,
		Strategies:     svc.strategies,
		Hub:            hub,
		Gateway:        gateway,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("DCA agent listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown.
	gateway.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	if relay != nil {
		if err := relay.Close(); err != nil {
			log.Error("kafka relay close failed", "error", err)
		}
	}

	log.Info("stopped")
	return nil
}
