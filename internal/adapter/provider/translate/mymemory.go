package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMyMemoryURL is the public MyMemory API.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net"

// MyMemory calls GET /get?q=...&langpair=en|xx on the MyMemory API.
type MyMemory struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

// NewMyMemory creates a MyMemory translator. email is optional and raises the
// anonymous daily quota when set.
func NewMyMemory(baseURL, email string) *MyMemory {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	return &MyMemory{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		httpClient: &http.Client{},
	}
}

// Name implements Translator.
func (m *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus json.RawMessage `json:"responseStatus"`
}

// Translate translates an English word into target.
func (m *MyMemory) Translate(ctx context.Context, word, target string) (string, error) {
	q := url.Values{}
	q.Set("q", word)
	q.Set("langpair", sourceLanguage+"|"+target)
	if m.email != "" {
		q.Set("de", m.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("mymemory: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: unexpected status %d", resp.StatusCode)
	}

	var out myMemoryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("mymemory: decode json: %w", err)
	}

	// responseStatus is a number on success and a string on quota errors.
	if status := strings.Trim(string(out.ResponseStatus), `"`); status != "" && status != "200" {
		return "", fmt.Errorf("mymemory: response status %s", status)
	}
	return strings.TrimSpace(out.ResponseData.TranslatedText), nil
}
