package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NodeConfig holds connection settings for the ledger node and signing bridge.
type NodeConfig struct {
	BaseURL        string
	SignerURL      string
	RequestTimeout time.Duration
}

// JournalConfig holds settings for the local sqlite operation journal.
type JournalConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// CreditConfig holds client-side credit-line policy parameters.
type CreditConfig struct {
	MinStake       decimal.Decimal
	AnnualRateBps  int64
	GracePeriod    time.Duration
	DeploymentFile string
	Network        string
}

type Config struct {
	Node    NodeConfig
	Journal JournalConfig
	Credit  CreditConfig
}
