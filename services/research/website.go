package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	defaultMaxPageBytes = 2 << 20
	defaultChunkWords   = 120
	defaultChunkOverlap = 20
	defaultTopChunks    = 4
)

// WebsiteTool answers a question from the text of a single web page.
type WebsiteTool struct {
	Client       *http.Client
	MaxPageBytes int64
	ChunkWords   int
	TopChunks    int
	Logger       *zap.Logger
}

type websiteInput struct {
	Website     string `json:"website"`
	SearchQuery string `json:"search_query"`
}

func NewWebsiteTool() *WebsiteTool {
	return &WebsiteTool{Client: &http.Client{Timeout: 20 * time.Second}}
}

func (t *WebsiteTool) Name() string { return "website_search" }

func (t *WebsiteTool) Description() string {
	return "Reads a web page and returns the passages most relevant to a question. " +
		"Input is JSON {\"website\": \"https://...\", \"search_query\": \"...\"} " +
		"or the URL followed by the question."
}

func (t *WebsiteTool) Call(ctx context.Context, input string) (string, error) {
	in := parseWebsiteInput(input)
	if in.Website == "" {
		return "No website URL was given. Provide a full http(s) URL followed by the question.", nil
	}
	u, err := url.Parse(in.Website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("%q is not a valid http(s) URL.", in.Website), nil
	}

	title, text, err := t.fetch(ctx, u.String())
	if err != nil {
		// The agent can recover from a bad page by choosing another one.
		t.logger().Warn("website fetch failed", zap.String("url", u.String()), zap.Error(err))
		return fmt.Sprintf("Could not read %s: %v", u.String(), err), nil
	}

	chunks := ChunkWords(text, t.chunkWords(), defaultChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Sprintf("%s has no readable text.", u.String()), nil
	}
	top := RankChunks(chunks, in.SearchQuery, t.topChunks())

	var sb strings.Builder
	fmt.Fprintf(&sb, "Relevant content from %s", u.String())
	if title != "" {
		fmt.Fprintf(&sb, " (%s)", title)
	}
	sb.WriteString(":\n")
	for _, c := range top {
		sb.WriteString(c)
		sb.WriteString("\n---\n")
	}
	return sb.String(), nil
}

func parseWebsiteInput(input string) websiteInput {
	input = strings.TrimSpace(input)
	var in websiteInput
	if strings.HasPrefix(input, "{") && json.Unmarshal([]byte(input), &in) == nil {
		in.Website = strings.TrimSpace(in.Website)
		return in
	}
	fields := strings.Fields(strings.Trim(input, "\""))
	for i, f := range fields {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			rest := append(append([]string{}, fields[:i]...), fields[i+1:]...)
			return websiteInput{Website: strings.TrimRight(f, ",;"), SearchQuery: strings.Join(rest, " ")}
		}
	}
	return websiteInput{SearchQuery: input}
}

func (t *WebsiteTool) fetch(ctx context.Context, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; tripplanner/1.0)")
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("status %d", resp.StatusCode)
	}

	limit := t.MaxPageBytes
	if limit <= 0 {
		limit = defaultMaxPageBytes
	}
	body := io.LimitReader(resp.Body, limit)

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", "", err
		}
		return "", string(raw), nil
	}
	return ExtractText(body)
}

// ExtractText returns the page title and its visible text.
func ExtractText(r io.Reader) (string, string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var (
		title string
		parts []string
		walk  func(*html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "svg", "template", "iframe":
				return
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, strings.Join(parts, "\n"), nil
}

// ChunkWords splits text into windows of size words overlapping by overlap words.
func ChunkWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = defaultChunkWords
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	var chunks []string
	for start := 0; start < len(words); start += size - overlap {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 3 {
			terms = append(terms, f)
		}
	}
	return terms
}

// RankChunks keeps the k chunks with the most query-term hits, in page order.
// With no matching terms the first k chunks are kept.
func RankChunks(chunks []string, query string, k int) []string {
	if k <= 0 || k > len(chunks) {
		k = len(chunks)
	}
	terms := queryTerms(query)

	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, len(chunks))
	for i, c := range chunks {
		lower := strings.ToLower(c)
		s := 0
		for _, term := range terms {
			s += strings.Count(lower, term)
		}
		ranked[i] = scored{idx: i, score: s}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	keep := ranked[:k]
	sort.Slice(keep, func(a, b int) bool { return keep[a].idx < keep[b].idx })
	out := make([]string, 0, k)
	for _, s := range keep {
		out = append(out, chunks[s.idx])
	}
	return out
}

func (t *WebsiteTool) chunkWords() int {
	if t.ChunkWords > 0 {
		return t.ChunkWords
	}
	return defaultChunkWords
}

func (t *WebsiteTool) topChunks() int {
	if t.TopChunks > 0 {
		return t.TopChunks
	}
	return defaultTopChunks
}

func (t *WebsiteTool) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}
