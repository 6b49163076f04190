package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/models"

	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy the full chain client surface.
var _ chain.Client = (*Service)(nil)

// Service talks to the ledger node's REST API for read-only queries and the
// event log, and forwards built payloads to the signing bridge for
// state-changing calls. It holds no session state beyond the HTTP client.
type Service struct {
	httpClient *http.Client
	baseURL    string
	signerURL  string
}

func NewService(cfg models.NodeConfig) (*Service, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("node config requires BaseURL")
	}
	if cfg.SignerURL == "" {
		return nil, fmt.Errorf("node config requires SignerURL")
	}

	zap.L().Info("Initializing ledger node client",
		zap.String("base_url", cfg.BaseURL),
		zap.String("signer_url", cfg.SignerURL))

	return &Service{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		signerURL:  strings.TrimRight(cfg.SignerURL, "/"),
	}, nil
}

// apiError is the node's structured error body.
type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	VMStatus  string `json:"vm_error_code,omitempty"`
}

// postJSON issues a POST and decodes the response into out (with UseNumber
// so on-chain integers never pass through float64).
func (s *Service) postJSON(ctx context.Context, url string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("unable to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("unable to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return s.decodeError(resp)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("unable to decode response from %s: %w", url, err)
	}
	return nil
}

func (s *Service) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("unable to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return s.decodeError(resp)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("unable to decode response from %s: %w", url, err)
	}
	return nil
}

// decodeError maps a node error body onto the shared sentinel errors.
// Not-found conditions (missing resource, module, or view function) become
// chain.ErrResourceNotFound so readers can distinguish "never initialized"
// from transient failures. Everything else keeps the node's message intact,
// including any machine-checkable abort code for Classify.
func (s *Service) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		if isNotFoundCode(apiErr.ErrorCode) || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", chain.ErrResourceNotFound, apiErr.Message)
		}
		if apiErr.VMStatus != "" {
			return fmt.Errorf("node error (%d): %s [%s]", resp.StatusCode, apiErr.Message, apiErr.VMStatus)
		}
		return fmt.Errorf("node error (%d): %s", resp.StatusCode, apiErr.Message)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", chain.ErrResourceNotFound, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("node error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func isNotFoundCode(code string) bool {
	switch code {
	case "resource_not_found", "module_not_found", "function_not_found", "account_not_found":
		return true
	}
	return false
}
