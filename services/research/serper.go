// Package research holds the web tools the researcher agent reasons with.
package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultSerperEndpoint = "https://google.serper.dev/search"

var ErrNoSearchKey = errors.New("serper: missing API key")

// SerperTool searches the web through the Serper API.
type SerperTool struct {
	APIKey     string
	Endpoint   string
	NumResults int
	Client     *http.Client
	Cache      Cache
	Logger     *zap.Logger
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type serperResponse struct {
	AnswerBox *struct {
		Title   string `json:"title"`
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answerBox"`
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

func NewSerperTool(apiKey string, numResults int) *SerperTool {
	return &SerperTool{
		APIKey:     apiKey,
		Endpoint:   DefaultSerperEndpoint,
		NumResults: numResults,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *SerperTool) Name() string { return "serper_search" }

func (t *SerperTool) Description() string {
	return "Searches the internet with Google through Serper. " +
		"Input is a plain search query, e.g. \"best hotel deals in Lisbon booking.com\". " +
		"Returns titles, links and snippets of the top results."
}

func (t *SerperTool) Call(ctx context.Context, input string) (string, error) {
	query := strings.Trim(strings.TrimSpace(input), "\"")
	if query == "" {
		return "The search query was empty. Provide a query.", nil
	}
	if t.APIKey == "" {
		return "", ErrNoSearchKey
	}
	logger := t.logger()

	key := cacheKey(t.Name(), query, strconv.Itoa(t.NumResults))
	if t.Cache != nil {
		if cached, ok, err := t.Cache.Get(ctx, key); err != nil {
			logger.Warn("search cache read failed", zap.Error(err))
		} else if ok {
			logger.Debug("search cache hit", zap.String("query", query))
			return cached, nil
		}
	}

	result, err := t.search(ctx, query)
	if err != nil {
		return "", err
	}
	logger.Info("web search", zap.String("query", query))

	if t.Cache != nil {
		if err := t.Cache.Set(ctx, key, result); err != nil {
			logger.Warn("search cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func (t *SerperTool) search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(serperRequest{Q: query, Num: t.NumResults})
	if err != nil {
		return "", err
	}
	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = DefaultSerperEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-KEY", t.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("serper returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decoding serper response failed: %w", err)
	}
	return formatSerper(query, sr), nil
}

func formatSerper(query string, sr serperResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for %q:\n", query)
	if sr.AnswerBox != nil {
		answer := sr.AnswerBox.Answer
		if answer == "" {
			answer = sr.AnswerBox.Snippet
		}
		if answer != "" {
			fmt.Fprintf(&sb, "Answer: %s\n---\n", answer)
		}
	}
	if len(sr.Organic) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}
	for _, r := range sr.Organic {
		fmt.Fprintf(&sb, "Title: %s\nLink: %s\nSnippet: %s\n---\n", r.Title, r.Link, r.Snippet)
	}
	return sb.String()
}

func (t *SerperTool) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}
