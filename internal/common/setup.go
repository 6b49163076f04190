package common

import (
	"context"
	"log"
	"strings"

	"creditline-client-go/internal/credit"
	"creditline-client-go/internal/journal"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/node"
	"creditline-client-go/internal/orchestrator"
	"creditline-client-go/internal/txbuild"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	NodeService    *node.Service
	JournalService *journal.Service
	Reader         *credit.Reader
	Builder        *txbuild.Builder
	Orchestrator   *orchestrator.Orchestrator
	Deployment     *models.Deployment
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	zap.L().Info("Loading deployment descriptor",
		zap.String("file", cfg.Credit.DeploymentFile),
		zap.String("network", cfg.Credit.Network))
	dep, err := LoadDeployment(cfg.Credit.DeploymentFile, cfg.Credit.Network)
	if err != nil {
		return nil, err
	}

	nodeService, err := node.NewService(cfg.Node)
	if err != nil {
		return nil, err
	}

	journalService, err := journal.NewService(ctx, cfg.Journal)
	if err != nil {
		return nil, err
	}

	reader := credit.NewReader(nodeService, *dep)
	builder := txbuild.NewBuilder(*dep)
	orch := orchestrator.New(reader, nodeService, builder, journalService, cfg.Credit.MinStake)

	return &Services{
		NodeService:    nodeService,
		JournalService: journalService,
		Reader:         reader,
		Builder:        builder,
		Orchestrator:   orch,
		Deployment:     dep,
	}, nil
}

// InitializeReadOnly wires just the node client and reader, skipping the
// journal. Useful for dashboard and history views.
func InitializeReadOnly(cfg *models.Config) (*node.Service, *credit.Reader, *models.Deployment, error) {
	dep, err := LoadDeployment(cfg.Credit.DeploymentFile, cfg.Credit.Network)
	if err != nil {
		return nil, nil, nil, err
	}

	nodeService, err := node.NewService(cfg.Node)
	if err != nil {
		return nil, nil, nil, err
	}

	return nodeService, credit.NewReader(nodeService, *dep), dep, nil
}

func (cs *Services) Close() {
	if cs.JournalService != nil {
		cs.JournalService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
