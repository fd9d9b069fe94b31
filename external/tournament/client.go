package tournament

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/aegisleagues/league-data/internal/platform/logging"
	"github.com/aegisleagues/league-data/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.tournaments.aegisleagues.gg/v1"
	defaultCodeCount    = 1
	maxResponseBytes    = 1 << 20
	defaultHTTPTimeout  = 20 * time.Second
	defaultTeamSize     = 5
	defaultPickType     = "TOURNAMENT_DRAFT"
	defaultMapType      = "SUMMONERS_RIFT"
	defaultSpectatorVis = "ALL"
)

var errTournamentTransient = crerr.New("tournament provider transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client talks to the tournament-code provider. Transient failures are
// retried with a linear backoff and the retry count is surfaced to callers,
// which record it on the season document.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	maxRetries  int
	backoffUnit time.Duration
	logger      *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		token:       strings.TrimSpace(cfg.Token),
		maxRetries:  maxRetries,
		backoffUnit: time.Second,
		logger:      logger,
	}
}

type createTournamentRequest struct {
	Name string `json:"name"`
}

type createTournamentResponse struct {
	TournamentID int64 `json:"tournamentId"`
}

// CreateTournamentID registers a provider-side tournament and returns its id.
func (c *Client) CreateTournamentID(ctx context.Context, shortName string) (int64, error) {
	shortName = strings.TrimSpace(shortName)
	if shortName == "" {
		return 0, crerr.New("tournament short name is empty")
	}

	var out createTournamentResponse
	_, err := c.postJSON(ctx, "/tournaments", createTournamentRequest{Name: shortName}, &out)
	if err != nil {
		return 0, fmt.Errorf("create tournament %q: %w", shortName, err)
	}
	if out.TournamentID <= 0 {
		return 0, crerr.Newf("provider returned tournament id %d", out.TournamentID)
	}
	return out.TournamentID, nil
}

type generateCodesRequest struct {
	Count        int          `json:"count"`
	TeamSize     int          `json:"teamSize"`
	PickType     string       `json:"pickType"`
	MapType      string       `json:"mapType"`
	SpectatorVis string       `json:"spectators"`
	Metadata     codeMetadata `json:"metadata"`
}

type codeMetadata struct {
	Week      string `json:"week"`
	ShortName string `json:"shortName"`
	Team1     string `json:"team1,omitempty"`
	Team2     string `json:"team2,omitempty"`
}

type generateCodesResponse struct {
	Codes []string `json:"codes"`
}

// GenerateCodes mints join codes for one matchup, or a backup batch when the
// request carries no team pair.
func (c *Client) GenerateCodes(ctx context.Context, req usecase.CodeRequest) (usecase.CodeBatch, error) {
	if req.TournamentID <= 0 {
		return usecase.CodeBatch{}, crerr.Newf("tournament id %d is invalid", req.TournamentID)
	}

	count := req.Count
	if count <= 0 {
		count = defaultCodeCount
	}

	body := generateCodesRequest{
		Count:        count,
		TeamSize:     defaultTeamSize,
		PickType:     defaultPickType,
		MapType:      defaultMapType,
		SpectatorVis: defaultSpectatorVis,
		Metadata: codeMetadata{
			Week:      req.Week,
			ShortName: req.ShortName,
			Team1:     req.Team1,
			Team2:     req.Team2,
		},
	}

	path := "/tournaments/" + strconv.FormatInt(req.TournamentID, 10) + "/codes"
	var out generateCodesResponse
	timesRetried, err := c.postJSON(ctx, path, body, &out)
	if err != nil {
		return usecase.CodeBatch{}, fmt.Errorf("generate codes tournament_id=%d: %w", req.TournamentID, err)
	}
	if len(out.Codes) == 0 {
		return usecase.CodeBatch{}, crerr.New("provider returned no codes")
	}
	return usecase.CodeBatch{Codes: out.Codes, TimesRetried: timesRetried}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) (int, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode provider payload: %w", err)
	}
	_, _ = buf.Write(encoded)

	fullURL := c.baseURL + path
	raw, timesRetried, err := c.executeRequest(ctx, fullURL, buf.Bytes())
	if err != nil {
		return timesRetried, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return timesRetried, fmt.Errorf("decode provider payload: %w", err)
	}
	return timesRetried, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body []byte) ([]byte, int, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, attempt, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("x-api-token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTournamentTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTournamentTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, attempt, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTournamentTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, attempt, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.backoffUnit
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, attempt, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "tournament provider request failed", "url", fullURL, "error", lastErr)
	return nil, c.maxRetries, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const max = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > max {
		return body[:max] + "...(truncated)"
	}
	return body
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
