/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"creditline-client-go/internal/models"

	"github.com/shopspring/decimal"
)

func Load() (*models.Config, error) {
	requestTimeout, err := getEnvDuration("NODE_REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	gracePeriod, err := getEnvDuration("INTEREST_GRACE_PERIOD", 720*time.Hour)
	if err != nil {
		return nil, err
	}

	minStake, err := getEnvDecimal("MIN_STAKE", decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}

	return &models.Config{
		Node: models.NodeConfig{
			BaseURL:        getEnvString("NODE_URL", "http://localhost:8080"),
			SignerURL:      getEnvString("SIGNER_URL", "http://localhost:8081"),
			RequestTimeout: requestTimeout,
		},
		Journal: models.JournalConfig{
			Path:            getEnvString("JOURNAL_PATH", "operations.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Credit: models.CreditConfig{
			MinStake:       minStake,
			AnnualRateBps:  int64(getEnvInt("ANNUAL_RATE_BPS", 1500)),
			GracePeriod:    gracePeriod,
			DeploymentFile: getEnvString("DEPLOYMENT_FILE", "deployment.yaml"),
			Network:        getEnvString("NETWORK", "testnet"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	if value := os.Getenv(key); value != "" {
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount for %s: %q (%w)", key, value, err)
		}
		return amount, nil
	}
	return defaultValue, nil
}
