package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is the boundary to the generative text endpoint. The reply is raw
// text with no validity guarantee; the service parses it defensively.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Content string `json:"content"`
}

type httpClient struct {
	endpoint string
	apiKey   string
	hc       *http.Client
	logger   *zap.Logger
}

func NewHTTPClient(endpoint, apiKey string, timeout time.Duration, logger ...*zap.Logger) Client {
	l := zap.L().Named("advisor.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advisor.client")
	}
	return &httpClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: timeout},
		logger:   l,
	}
}

func (c *httpClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Warn("generate call failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("generate call rejected",
			zap.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("advisor endpoint answered %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// Some endpoints answer plain text instead of the JSON wrapper.
		return string(raw), nil
	}
	return out.Content, nil
}
