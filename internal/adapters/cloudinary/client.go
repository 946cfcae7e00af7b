// internal/adapters/cloudinary/client.go
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
)

var (
	ErrUnauthorized = errors.New("cloudinary: unauthorized")
	ErrRateLimited  = errors.New("cloudinary: rate limited")
)

type Client struct {
	base   string
	cloud  string
	key    string
	secret string
	hc     *http.Client
	rl     *rate.Limiter
	now    func() time.Time
}

func New(base, cloud, key, secret string, rps int) (*Client, error) {
	if cloud == "" {
		return nil, fmt.Errorf("cloud name is required")
	}
	if key == "" || secret == "" {
		return nil, fmt.Errorf("API key and secret are required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		cloud:  cloud,
		key:    key,
		secret: secret,
		hc:     &http.Client{Timeout: 60 * time.Second},
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
		now:    time.Now,
	}, nil
}

type uploadResult struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends one data URL to the image upload endpoint and returns the hosted URL.
// Failures are not retried.
func (c *Client) Upload(ctx context.Context, dataURL string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	ts := strconv.FormatInt(c.now().Unix(), 10)
	form := url.Values{}
	form.Set("file", dataURL)
	form.Set("api_key", c.key)
	form.Set("timestamp", ts)
	form.Set("signature", sign(map[string]string{"timestamp": ts}, c.secret))

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.base, c.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-booking/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("cloudinary", "image/upload", 0, time.Since(start))
		observability.ObserveExternalError("cloudinary", "image/upload", err)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("cloudinary", "image/upload", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var out uploadResult
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("cloudinary: decode upload response: %w", err)
		}
		if out.URL == "" {
			return "", errors.New("cloudinary: upload response has no url")
		}
		return out.URL, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrUnauthorized

	case http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrRateLimited

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var out uploadResult
		if json.Unmarshal(b, &out) == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sign builds the request signature: params sorted by name, joined as k=v with
// '&', with the API secret appended, SHA-1 hex encoded.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + secret))
	return hex.EncodeToString(sum[:])
}
