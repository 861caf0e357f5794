package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kazz187/blueprint/internal/azdo"
	"github.com/kazz187/blueprint/internal/clone"
	"github.com/kazz187/blueprint/internal/clone/repositoryimpl"
	"github.com/kazz187/blueprint/internal/config"
	"github.com/kazz187/blueprint/pkg/clog"
	"github.com/kazz187/blueprint/pkg/poll"
	"github.com/kazz187/blueprint/pkg/storage"

	server "github.com/kazz187/blueprint/internal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	// Setup Azure DevOps gateways and the replication coordinator
	client := azdo.NewClient(env.OrgURL, env.Token)
	pollCfg := poll.Config{Interval: env.PollInterval, Timeout: env.PollTimeout}
	coordinator := clone.NewCoordinator(
		client,
		clone.NewCorrelator(client),
		clone.NewTeamReplicator(client, client),
		clone.NewRepoReplicator(client, client, client.Token(), env.RepoConcurrency),
		pollCfg,
	)

	operationRepo := repositoryimpl.NewYAMLRepository(store)
	cloneServer := clone.NewServer(coordinator, operationRepo)

	srv := server.NewServer(env, cloneServer)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	// Give active connections and background clone runs time to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	cloneServer.Wait()
}
