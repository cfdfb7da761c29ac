package renthub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"renthub/internal/adapters/observability"
	"renthub/internal/domain"
)

const (
	service = "renthub-api"

	searchPath   = "/api/search"
	listingsPath = "/api/rentals"

	DefaultTimeout       = 30 * time.Second
	DefaultListingsLimit = 50

	maxErrorBody = 64 << 10
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, timeout time.Duration, rps int) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, errors.New("renthub: base URL is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type searchResponse struct {
	Results []domain.Listing `json:"results"`
}

type listingsResponse struct {
	Data []domain.Listing `json:"data"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Search posts the query to the search endpoint. A missing results list is
// returned as an empty slice.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, requestErr(errors.Wrap(err, "encode search query"))
	}
	var out searchResponse
	if err := c.do(ctx, "search", http.MethodPost, c.base+searchPath, body, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		return []domain.Listing{}, nil
	}
	return out.Results, nil
}

// Listings fetches the latest listings without filters.
func (c *Client) Listings(ctx context.Context, limit int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = DefaultListingsLimit
	}
	u := c.base + listingsPath + "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	var out listingsResponse
	if err := c.do(ctx, "listings", http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []domain.Listing{}, nil
	}
	return out.Data, nil
}

// do performs one rate-limited call and decodes a 2xx JSON body into out.
// Every failure comes back as *Error. No retries.
func (c *Client) do(ctx context.Context, endpoint, method, u string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return requestErr(errors.Wrapf(err, "build %s request", endpoint))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "renthub/1.0")

	if err := c.rl.Wait(ctx); err != nil {
		return requestErr(errors.Wrap(err, "rate limiter"))
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		log.Error().Err(err).Str("endpoint", endpoint).Msg("network error")
		return &Error{Kind: KindNetwork, msg: MsgNetwork, cause: errors.WithStack(err)}
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		e := serverErr(resp.StatusCode, b)
		log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", strings.TrimSpace(string(b))).
			Msg("api error")
		return e
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("undecodable response")
		return &Error{Kind: KindUnexpected, Status: resp.StatusCode, msg: MsgUnexpected,
			cause: errors.Wrapf(err, "decode %s response", endpoint)}
	}
	return nil
}

func requestErr(cause error) *Error {
	log.Error().Err(cause).Msg("request error")
	return &Error{Kind: KindRequest, msg: fmt.Sprintf(MsgRequestFmt, errors.UnwrapAll(cause).Error()), cause: cause}
}

// serverErr prefers the backend's own error text and falls back to the status.
func serverErr(status int, body []byte) *Error {
	msg := fmt.Sprintf(MsgServerFmt, status)
	var ae apiError
	if json.Unmarshal(body, &ae) == nil && strings.TrimSpace(ae.Error) != "" {
		msg = ae.Error
	}
	return &Error{Kind: KindServer, Status: status, msg: msg, cause: errors.Newf("remote %d", status)}
}
