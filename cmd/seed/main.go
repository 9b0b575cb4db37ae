package main

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/config"
	"github.com/mintfeed/mintfeed/internal/content"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/models"
	"github.com/mintfeed/mintfeed/internal/queue"
	"github.com/mintfeed/mintfeed/internal/scanner"
)

// Seeds a collection with demo profiles, posts, and replies so a fresh
// deployment has something to render. Each persona mints under its own
// generated wallet identity.
func main() {
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		seed(5, 4, 2)
	case "test":
		seed(2, 1, 1)
	default:
		fmt.Println("Usage: seed [dev|test]")
		fmt.Println("  dev  - Seed a demo collection with realistic content")
		fmt.Println("  test - Seed a minimal collection")
		os.Exit(1)
	}
}

func seed(personas, postsPer, repliesPer int) {
	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel, "seed.log"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	ledgerClient, err := ledger.NewRPCClient(cfg.Ledger.RPCEndpoint)
	if err != nil {
		logger.Log.Fatal("Failed to initialize ledger client", zap.Error(err))
	}

	store := cache.New()
	requestQueue := queue.New(cfg.Ledger.QueueMinGap, cfg.Ledger.QueueCooldown)
	collectionScanner := scanner.New(ledgerClient, requestQueue, store, scanner.Config{
		Timeout: cfg.Ledger.ScanTimeout,
		TTL:     cfg.Cache.ListTTL,
		Limit:   cfg.Ledger.ScanLimit,
	})

	ctx := context.Background()
	var postIDs []string

	for i := 0; i < personas; i++ {
		identity := newIdentity()
		svc, err := content.New(content.Config{
			Collection: cfg.Ledger.CollectionAddress,
			ListTTL:    cfg.Cache.ListTTL,
			ProfileTTL: cfg.Cache.ProfileTTL,
		}, collectionScanner, store, ledgerClient, nil, identity)
		if err != nil {
			logger.Log.Fatal("Failed to build content service", zap.Error(err))
		}

		username := gofakeit.Username()
		if _, err := svc.Create(ctx, content.CreateRequest{
			Kind:     models.KindProfile,
			Username: username,
			Bio:      gofakeit.Sentence(8),
		}, nil); err != nil {
			logger.Log.Fatal("Profile mint failed", zap.Error(err))
		}
		logger.Log.Info("Seeded profile",
			zap.String("username", username),
			zap.String("address", identity.Address()),
		)

		for p := 0; p < postsPer; p++ {
			entity, err := svc.Create(ctx, content.CreateRequest{
				Kind:    models.KindPost,
				Content: clip(gofakeit.HipsterSentence(10), models.MaxContentLength),
			}, nil)
			if err != nil {
				logger.Log.Fatal("Post mint failed", zap.Error(err))
			}
			postIDs = append(postIDs, entity.EntityID())
		}

		for r := 0; r < repliesPer && len(postIDs) > 0; r++ {
			parent := postIDs[gofakeit.Number(0, len(postIDs)-1)]
			if _, err := svc.Create(ctx, content.CreateRequest{
				Kind:       models.KindReply,
				Content:    clip(gofakeit.HipsterSentence(8), models.MaxContentLength),
				ParentPost: parent,
			}, nil); err != nil {
				logger.Log.Fatal("Reply mint failed", zap.Error(err))
			}
		}
	}

	logger.Log.Info("Seeding complete",
		zap.Int("personas", personas),
		zap.Int("posts", len(postIDs)),
	)
}

func newIdentity() *ledger.KeypairIdentity {
	seed := make([]byte, 32)
	if _, err := cryptorand.Read(seed); err != nil {
		log.Fatalf("Failed to generate identity seed: %v", err)
	}
	identity, err := ledger.NewKeypairIdentity(seed)
	if err != nil {
		log.Fatalf("Failed to build identity: %v", err)
	}
	return identity
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
