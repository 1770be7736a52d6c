package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gateway stores a frozen snapshot. A nil error is the acknowledgement.
type Gateway interface {
	Submit(ctx context.Context, snap Snapshot) error
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, snap Snapshot) error

func (f GatewayFunc) Submit(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// HTTPGateway posts snapshots to the bill service.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type gatewayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (g *HTTPGateway) Submit(ctx context.Context, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return &GatewayError{Err: fmt.Errorf("encode snapshot: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/ra-bills", bytes.NewReader(body))
	if err != nil {
		return &GatewayError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var out gatewayResponse
	decodeErr := json.Unmarshal(raw, &out)

	// A 2xx is an acknowledgement unless the body is an envelope that says
	// otherwise. An empty or unreadable body does not undo the status.
	accepted := resp.StatusCode >= 200 && resp.StatusCode < 300
	if accepted && (decodeErr != nil || out.Success) {
		return nil
	}

	gerr := &GatewayError{StatusCode: resp.StatusCode, Message: out.Message}
	if gerr.Message == "" && accepted {
		gerr.Message = "bill not acknowledged"
	}
	if gerr.Message == "" {
		gerr.Message = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusConflict {
		gerr.Err = ErrDuplicateBill
	} else {
		gerr.Err = errors.New(gerr.Message)
	}
	return gerr
}
