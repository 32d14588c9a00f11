// Package population fetches city population counts from the countriesnow API
// and loads saved copies of them from disk.
package population

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YashJagani/citypop/internal/series"
	"github.com/google/uuid"
)

// DefaultBaseURL is the public countriesnow API root.
const DefaultBaseURL = "https://countriesnow.space/api/v0.1"

const citiesPath = "/countries/population/cities"

type Client struct {
	httpClient *http.Client
	baseURL    string
	newID      func() string
}

// Count is one populationCounts record. Year and Value stay raw; the
// normalizer owns parsing.
type Count struct {
	series.RawEntry
	Sex         string `json:"sex,omitempty"`
	Reliability string `json:"reliabilty,omitempty"`
}

// UnmarshalJSON decodes the raw year/value pair alongside the metadata.
func (c *Count) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &c.RawEntry); err != nil {
		return err
	}
	var meta struct {
		Sex         string `json:"sex"`
		Reliability string `json:"reliabilty"`
	}
	// metadata is best-effort; some dumps carry other types here
	_ = json.Unmarshal(b, &meta)
	c.Sex = meta.Sex
	c.Reliability = meta.Reliability
	return nil
}

// CityPopulation is the decoded API payload for one city.
type CityPopulation struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Counts    []Count `json:"populationCounts"`
	RequestID string  `json:"-"`
}

// Entries returns the raw year/value pairs in response order.
func (p *CityPopulation) Entries() []series.RawEntry {
	out := make([]series.RawEntry, len(p.Counts))
	for i, c := range p.Counts {
		out[i] = c.RawEntry
	}
	return out
}

type cityRequest struct {
	City string `json:"city"`
}

type cityResponse struct {
	Error bool            `json:"error"`
	Msg   string          `json:"msg"`
	Data  *CityPopulation `json:"data"`
}

// NewClient returns a client for the public API.
func NewClient(httpTimeout time.Duration) *Client {
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		baseURL:    DefaultBaseURL,
		newID:      uuid.NewString,
	}
}

// NewClientWithBaseURL points the client at another host, such as a mirror
// configured through api_base_url.
func NewClientWithBaseURL(httpTimeout time.Duration, baseURL string) *Client {
	c := NewClient(httpTimeout)
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// CityPopulation fetches the population counts for city. The request is
// made once; failures are returned as typed errors and never retried.
func (c *Client) CityPopulation(ctx context.Context, city string) (*CityPopulation, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.New("city cannot be empty")
	}
	payload, err := json.Marshal(cityRequest{City: city})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + citiesPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqID := c.newID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", reqID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isUnreachable(err) {
			return nil, &UnreachableError{Host: hostOf(endpoint), Err: err}
		}
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var out cityResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: reqID}
		if decodeErr == nil {
			apiErr.Message = out.Msg
		} else {
			apiErr.Message = snippet(body)
		}
		return nil, classifyAPIError(apiErr, city)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Error {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Msg, RequestID: reqID}
	}
	if out.Data == nil || out.Data.Counts == nil {
		return nil, &NoDataError{City: city, RequestID: reqID}
	}
	out.Data.RequestID = reqID
	if out.Data.City == "" {
		out.Data.City = city
	}
	return out.Data, nil
}

// classifyAPIError maps a generic APIError to a typed error.
func classifyAPIError(apiErr *APIError, city string) error {
	sc := apiErr.StatusCode
	switch {
	case sc == http.StatusNotFound:
		return &CityNotFoundError{APIError: apiErr, City: city}
	case sc >= 400 && sc <= 499:
		return &BadRequestError{APIError: apiErr}
	case sc >= 500 && sc <= 599:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}

// isUnreachable reports dial and DNS failures. Errors after the connection
// was established (reads, resets) do not count.
func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
