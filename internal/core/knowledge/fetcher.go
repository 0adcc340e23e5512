package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// maxContentBytes caps how much of a fetched page is stored. The prompt
// assembler passes knowledge through unmodified, so runaway pages would
// otherwise blow up every prompt for the business.
const maxContentBytes = 64 * 1024

var (
	tagPattern        = regexp.MustCompile(`(?s)<(script|style)[^>]*>.*?</(script|style)>|<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Fetcher pulls the text content of website-type knowledge items.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the page and reduces it to plain text: tags stripped,
// whitespace collapsed, truncated to the storage cap.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "xeoai-knowledge-bot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status fetching %s: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBytes*4))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}

	text := tagPattern.ReplaceAllString(string(body), " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > maxContentBytes {
		text = text[:maxContentBytes]
	}

	return text, nil
}
