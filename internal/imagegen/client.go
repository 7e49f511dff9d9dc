// Package imagegen renders outfit visualisations through a hosted text-to-image model.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnavailable covers every failure: generation is best effort.
var ErrUnavailable = errors.New("image generation unavailable")

const maxImageSize = 10 << 20

type Image struct {
	Data        []byte
	ContentType string
}

// Client posts {"inputs": prompt} to a Hugging Face style inference endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient builds a client. token may be empty; the endpoint is then called unauthenticated.
func NewClient(httpClient *http.Client, endpoint, token string) *Client {
	return &Client{httpClient: httpClient, endpoint: endpoint, token: token}
}

func (c *Client) Generate(ctx context.Context, prompt string) (Image, error) {
	body, _ := json.Marshal(map[string]string{"inputs": prompt})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty body", ErrUnavailable)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: ct}, nil
}
