package imagestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader uploads image bytes under a key and returns the hosted URL.
// Satisfied by any conforming external image host.
type Uploader interface {
	Upload(data []byte, key string) (string, error)
}

// Config holds image host API configuration
type Config struct {
	BaseURL string
	APIKey  string
	Folder  string
}

// Client talks to the external image hosting API
type Client struct {
	config Config
	http   *http.Client
}

// uploadResponse represents the image host upload response
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// New creates a new image store client
func New(config Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Upload sends image bytes to the image host and returns the hosted URL.
// The key becomes the public ID, so re-uploading under the same key
// replaces the previous image.
func (c *Client) Upload(data []byte, key string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", key)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("public_id", key); err != nil {
		return "", err
	}
	if c.config.Folder != "" {
		if err := writer.WriteField("folder", c.config.Folder); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.config.BaseURL+"/image/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host error: %s", string(respBody))
	}

	var result uploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	return result.SecureURL, nil
}
