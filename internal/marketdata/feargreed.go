package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"DipSentry/internal/model"
)

// FearGreedClient fetches the current Fear & Greed index from the
// alternative.me public API. Live mode only; backtests read the persisted
// series instead.
type FearGreedClient struct {
	Client  *http.Client
	BaseURL string
}

// NewFearGreedClient creates a client with optional proxy support.
func NewFearGreedClient(proxyURL string) *FearGreedClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FearGreedClient{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://api.alternative.me/fng/",
	}
}

// fngResponse is the alternative.me response envelope. Values arrive as
// strings.
type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
		Timestamp      string `json:"timestamp"`
	} `json:"data"`
}

// Current fetches the latest index reading.
func (c *FearGreedClient) Current() (model.FearGreedIndex, error) {
	resp, err := c.Client.Get(c.BaseURL)
	if err != nil {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed fngResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed decode: %w", err)
	}
	if len(parsed.Data) == 0 {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed: empty response")
	}

	entry := parsed.Data[0]
	value, err := strconv.Atoi(entry.Value)
	if err != nil {
		return model.FearGreedIndex{}, fmt.Errorf("fear & greed: bad value %q", entry.Value)
	}
	ts := time.Now().UTC()
	if unix, err := strconv.ParseInt(entry.Timestamp, 10, 64); err == nil {
		ts = time.Unix(unix, 0).UTC()
	}
	return model.FearGreedIndex{
		Value:          value,
		Classification: entry.Classification,
		Timestamp:      ts,
	}, nil
}
