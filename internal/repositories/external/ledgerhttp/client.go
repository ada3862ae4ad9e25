// Package ledgerhttp implements the ledger registry boundary over the
// registry's JSON HTTP API.
package ledgerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	portsrepo "github.com/openlandreg/land_registry_app/internal/core/ports/repositories"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a ledger registry client. baseURL points at the registry
// root, e.g. "https://ledger.example.org".
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure Client implements portsrepo.LedgerRegistry
var _ portsrepo.LedgerRegistry = (*Client)(nil)

type writeRequest struct {
	Key    string `json:"key"`
	Digest string `json:"digest"`
}

type writeResponse struct {
	Receipt string `json:"receipt"`
}

type readResponse struct {
	Digest string `json:"digest"`
}

func (c *Client) Write(ctx context.Context, key, digest string) (string, error) {
	body, err := json.Marshal(writeRequest{Key: key, Digest: digest})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ledger write request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/entries", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build ledger write request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures are retryable from the caller's point of view.
		return "", fmt.Errorf("%w: %s", apperrors.ErrLedgerUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading ledger response: %s", apperrors.ErrLedgerUnavailable, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusConflict:
		return "", fmt.Errorf("%w: key %s", apperrors.ErrAlreadyRegistered, key)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: ledger returned status %d", apperrors.ErrLedgerUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("ledger write failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out writeResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode ledger write response: %w", err)
	}
	if out.Receipt == "" {
		return "", fmt.Errorf("ledger write response carried no receipt for key %s", key)
	}
	return out.Receipt, nil
}

func (c *Client) Read(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/entries/"+key, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build ledger read request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrLedgerUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading ledger response: %s", apperrors.ErrLedgerUnavailable, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: ledger holds no entry for key %s", apperrors.ErrNotFound, key)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: ledger returned status %d", apperrors.ErrLedgerUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("ledger read failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out readResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode ledger read response: %w", err)
	}
	return out.Digest, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
