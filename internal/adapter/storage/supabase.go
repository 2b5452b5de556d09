package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ad-board/internal/config/configs"
)

// Client talks to the Supabase Storage REST API. It implements
// port.BlobStorage: bucket bootstrap, object upload/delete and public URL
// derivation. All business rules live in the usecase layer; every non-2xx
// response surfaces as an error carrying the backend's message.
type Client struct {
	baseURL string
	key     string
	bucket  string
	http    *http.Client
}

// NewClient returns a storage client for the configured project and bucket.
func NewClient(cfg configs.Storage) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceKey,
		bucket:  cfg.Bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.key)
	return c.http.Do(req)
}

// EnsureBucket creates the bucket as public if it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/storage/v1/bucket", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("list buckets: HTTP %d: %s", resp.StatusCode, body)
	}

	var buckets []struct {
		Name string `json:"name"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&buckets); err != nil {
		return fmt.Errorf("decode bucket list: %w", err)
	}
	for _, b := range buckets {
		if b.Name == c.bucket {
			return nil
		}
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"id":     c.bucket,
		"name":   c.bucket,
		"public": true,
	})
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storage/v1/bucket", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err = c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create bucket %s: HTTP %d: %s", c.bucket, resp.StatusCode, body)
	}
	return nil
}

// Upload stores data under path with the given content type.
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload %s: HTTP %d: %s", path, resp.StatusCode, body)
	}
	return nil
}

// PublicURL returns the public retrieval URL for path. The bucket is
// public, so no signing is involved.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// Delete removes the object at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete %s: HTTP %d: %s", path, resp.StatusCode, body)
	}
	return nil
}
