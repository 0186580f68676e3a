// Command titlesentryd runs the title-verification HTTP service,
// wiring the pgx-backed repository (optionally fronted by a Redis
// cache), the verification core, and the audit sink behind a fiber
// server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurorareg/titlesentry/pkg/api"
	"github.com/aurorareg/titlesentry/pkg/audit"
	"github.com/aurorareg/titlesentry/pkg/cache"
	"github.com/aurorareg/titlesentry/pkg/config"
	"github.com/aurorareg/titlesentry/pkg/index"
	"github.com/aurorareg/titlesentry/pkg/storage"
	"github.com/aurorareg/titlesentry/pkg/verify"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dsn := os.Getenv("TITLESENTRY_DATABASE_URL")
	if dsn == "" {
		return errRequiredEnv("TITLESENTRY_DATABASE_URL")
	}

	store, err := storage.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	var repo verify.TitleRepository = store
	if redisAddr := os.Getenv("TITLESENTRY_REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		repo = cache.New(client, store, 5*time.Minute)
	}

	cfg := config.NewDefaultConfig()
	core, err := verify.NewCore(ctx, repo, cfg)
	if err != nil {
		return err
	}

	if !cfg.DisableEmbeddings {
		if serviceURL := os.Getenv("TITLESENTRY_EMBEDDING_SERVICE_URL"); serviceURL != "" {
			indexPath := os.Getenv("TITLESENTRY_EMBEDDING_INDEX_PATH")
			if indexPath == "" {
				indexPath = "./data/embeddings.chromem"
			}
			semanticStore, err := index.Open(indexPath, index.NewRemoteEmbeddingFunc(serviceURL))
			if err != nil {
				return fmt.Errorf("opening semantic embedding store: %w", err)
			}
			core.SetSemanticProvider(semanticStore)
		}
	}

	auditSink := audit.New(config.AuditSigningKey(), os.Stdout, os.Getenv("TITLESENTRY_AUDIT_WEBHOOK_URL"))

	server := api.New(core, auditSink)

	addr := os.Getenv("TITLESENTRY_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	}
}

type errRequiredEnv string

func (e errRequiredEnv) Error() string {
	return "missing required environment variable: " + string(e)
}
