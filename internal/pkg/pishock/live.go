package pishock

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hazyview/pishock-go/internal/pkg/logging"
)

// PublicAPIBase is the production PiShock endpoint (no trailing slash).
const PublicAPIBase = "https://do.pishock.com/api"

// Live talks to a real PiShock API server.
type Live struct {
	baseURL   string
	appName   string
	username  string
	apiKey    string
	shareCode string
	timeout   time.Duration
}

func NewLive(appName, username, apiKey, shareCode string) *Live {
	return &Live{
		baseURL:   PublicAPIBase,
		appName:   appName,
		username:  username,
		apiKey:    apiKey,
		shareCode: shareCode,
	}
}

// WithBaseURL points the client at a different API server, mainly for
// tests against a local mock.
func (c *Live) WithBaseURL(u string) *Live {
	nc := *c
	nc.baseURL = strings.TrimSuffix(u, "/")
	return &nc
}

func (c *Live) WithTimeout(d time.Duration) API {
	nc := *c
	nc.timeout = d
	return &nc
}

type operateRequest struct {
	Op        int    `json:"Op"`
	Intensity int    `json:"Intensity"`
	Duration  int    `json:"Duration"`
	Code      string `json:"Code"`
	APIKey    string `json:"Apikey"`
	Name      string `json:"Name"`
	Username  string `json:"Username"`
}

func (c *Live) Operate(ctx context.Context, op OpCode, intensity int, duration time.Duration) error {
	req := operateRequest{
		Op:        int(op),
		Intensity: intensity,
		Duration:  apiDuration(duration),
		Code:      c.shareCode,
		APIKey:    c.apiKey,
		Name:      c.appName,
		Username:  c.username,
	}

	logging.Logger(ctx).Debugf("sending request to PiShock API: op %d, intensity %d, duration %d, code %s", req.Op, req.Intensity, req.Duration, req.Code)

	_, body, err := c.post(ctx, "/apioperate/", req)
	if err != nil {
		return err
	}

	return operateResponseError(string(body))
}

type infoRequest struct {
	APIKey   string `json:"Apikey"`
	Username string `json:"Username"`
	Code     string `json:"Code"`
}

type infoResponse struct {
	ClientID     int64  `json:"clientId"`
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Paused       bool   `json:"paused"`
	MaxIntensity int    `json:"maxIntensity"`
	MaxDuration  int64  `json:"maxDuration"`
	Online       bool   `json:"online"`
}

func (c *Live) GetShockerInfo(ctx context.Context) (*ShockerInfo, error) {
	req := infoRequest{
		APIKey:   c.apiKey,
		Username: c.username,
		Code:     c.shareCode,
	}

	logging.Logger(ctx).Debugf("requesting shocker metadata from PiShock API: username %s, code %s", req.Username, req.Code)

	status, body, err := c.post(ctx, "/GetShockerInfo", req)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, ErrShareCodeNotFound
	}

	var resp infoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UnknownError{Detail: err.Error()}
	}

	return &ShockerInfo{
		ClientID:     resp.ClientID,
		ShockerID:    resp.ID,
		Name:         resp.Name,
		Paused:       resp.Paused,
		Online:       resp.Online,
		MaxIntensity: resp.MaxIntensity,
		MaxDuration:  time.Duration(resp.MaxDuration) * time.Second,
	}, nil
}

func (c *Live) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	url := c.baseURL + path

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, errors.Wrap(err, "encoding request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &ConnectionError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	logging.Logger(ctx).Debugf("response from PiShock API: %s", resp.Status)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &ConnectionError{URL: url, Err: err}
	}

	return resp.StatusCode, body, nil
}

// The API expects the duration in whole seconds when it has a whole-second
// component, and in milliseconds otherwise. The two ranges are not
// numerically comparable without this conversion.
func apiDuration(d time.Duration) int {
	if secs := int(d / time.Second); secs > 0 {
		return secs
	}
	return int(d / time.Millisecond)
}
