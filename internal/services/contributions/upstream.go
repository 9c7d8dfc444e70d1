package contributions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/models"
)

// maxBodyBytes caps the upstream response; a year of records is well below it.
const maxBodyBytes = 4 << 20

// UpstreamClient reads records from the contributions API at
// GET {host}/api/v1/{username}?v={token}.
type UpstreamClient struct {
	host       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewUpstreamClient creates a new instance of UpstreamClient.
func NewUpstreamClient(host string, logger *zap.Logger) *UpstreamClient {
	return &UpstreamClient{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// FetchContributions implements Provider.
func (c *UpstreamClient) FetchContributions(ctx context.Context, username, token string) ([]models.ContributionRecord, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s?v=%s", c.host, url.PathEscape(username), url.QueryEscape(token))
	c.logger.Debug("upstream request", zap.String("username", username), zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTPリクエストの作成に失敗しました: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTPリクエストの送信に失敗しました: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: レスポンスボディの読み込みに失敗しました: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}

	var payload models.ContributionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: JSONレスポンスのパースに失敗しました: %v", ErrUpstream, err)
	}

	c.logger.Info("upstream contributions fetched",
		zap.String("username", username),
		zap.Int("records", len(payload.Contributions)))
	return payload.Contributions, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
