// Package metadata reads a page's title and description so bookmarks
// added without them can be filled in.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultTimeout = 3 * time.Second
	maxPageBytes   = 2 << 20
	userAgent      = "Mozilla/5.0 (compatible; index/1.0)"
)

type Page struct {
	Title       string
	Description string
}

type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: client, timeout: timeout}
}

// Fetch downloads url and extracts <title> and the description meta tag
// (falling back to og:title / og:description).
func (f *Fetcher) Fetch(ctx context.Context, url string) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return Parse(io.LimitReader(resp.Body, maxPageBytes))
}

// Parse extracts page metadata from HTML.
func Parse(r io.Reader) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := Page{
		Title:       clean(doc.Find("title").First().Text()),
		Description: clean(metaContent(doc, `meta[name="description"]`)),
	}
	if page.Title == "" {
		page.Title = clean(metaContent(doc, `meta[property="og:title"]`))
	}
	if page.Description == "" {
		page.Description = clean(metaContent(doc, `meta[property="og:description"]`))
	}
	return page, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return v
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
