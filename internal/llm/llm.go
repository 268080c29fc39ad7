package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// ErrGeneration indicates the generation service returned a non-success status.
var ErrGeneration = errors.New("generation request failed")

// ErrProtocol indicates the generation service returned an undecodable payload.
var ErrProtocol = errors.New("malformed generation response")

// File is a context file attached to a generation request. Content is
// base64-encoded on the wire.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Client talks to an Ollama-style /api/generate endpoint.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates a generation client. Empty arguments fall back to the
// PERFBOT_ENDPOINT and PERFBOT_MODEL environment variables, then to a
// local Ollama default.
func NewClient(endpoint, model string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("PERFBOT_ENDPOINT")
	}
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if model == "" {
		model = os.Getenv("PERFBOT_MODEL")
	}
	if model == "" {
		model = "deepseek-r1:70b"
	}
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Files  []File `json:"files,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends a prompt (plus optional context files) and returns the raw
// response text. A single attempt, no retries.
func (c *Client) Generate(ctx context.Context, prompt string, files []File) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Files:  files,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("%w: status %d: %s", ErrGeneration, resp.StatusCode, string(bodyBytes))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return result.Response, nil
}

// EncodeFile reads a file from disk and returns it base64-encoded for
// attachment to a request. Missing files yield a zero File and false.
func EncodeFile(path string) (File, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, false
	}
	return File{
		Name:    path,
		Content: base64.StdEncoding.EncodeToString(data),
	}, true
}

var codeFenceRe = regexp.MustCompile("(?m)^```[a-zA-Z0-9]*[ \t]*$")

// StripFences removes markdown code-fence delimiter lines (a triple-backtick
// marker, optionally followed by a language tag) and surrounding whitespace.
func StripFences(text string) string {
	text = codeFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
