// Package scrape turns a listing page into a product record. It is a
// collaborator of the evaluation core, not part of it: fetch and parse
// failures surface here as typed errors before any compliance logic runs.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/fetch"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

var (
	// ErrFetch marks network or HTTP failures while downloading the page.
	ErrFetch = errors.New("scrape: fetch failed")
	// ErrParse marks pages that could not be read as a product listing.
	ErrParse = errors.New("scrape: parse failed")
)

var (
	priceRe  = regexp.MustCompile(`(?i)(?:₹|rs\.?\s?|inr\s?)\s*([\d,]+(?:\.\d{1,2})?)`)
	sellerRe = regexp.MustCompile(`(?i)sold by\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9 .&'\-]{1,60})`)
	labelRe  = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z /]{1,40})\s*[:\-]\s*(.+)$`)
)

// Scraper downloads and parses product listings.
type Scraper struct {
	Client *fetch.Client
}

// Fetch downloads the raw listing HTML. The returned bytes are also fed to
// the dark-pattern detector, so the page is downloaded exactly once per scan.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, _, err := s.Client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	return body, nil
}

// Parse extracts a product record from listing HTML. Fields the page does not
// disclose stay empty; only an unreadable document is an error.
func Parse(url string, page []byte) (model.Product, error) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil || root == nil {
		return model.Product{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	p := model.Product{URL: url}
	p.Title = pageTitle(root)
	p.Description = metaContent(root, "name", "description")
	if p.Description == "" {
		p.Description = metaContent(root, "property", "og:description")
	}

	text := collectText(root)
	p.Price = findPrice(root, text)
	p.Seller = findSeller(text)
	p.TechnicalDetails = technicalDetails(root)
	p.Returns = sentenceWith(text, "return")
	p.Delivery = sentenceWith(text, "delivery")
	p.Warranty = sentenceWith(text, "warranty")
	return p, nil
}

// pageTitle prefers og:title over <title>, which marketplaces pad with
// boilerplate.
func pageTitle(root *html.Node) string {
	if t := metaContent(root, "property", "og:title"); t != "" {
		return t
	}
	if el := findFirst(root, "title"); el != nil && el.FirstChild != nil {
		return strings.TrimSpace(el.FirstChild.Data)
	}
	return ""
}

func findPrice(root *html.Node, text string) string {
	for _, key := range []string{"product:price:amount", "og:price:amount"} {
		if v := metaContent(root, "property", key); v != "" {
			return v
		}
	}
	if v := metaContent(root, "itemprop", "price"); v != "" {
		return v
	}
	if m := priceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func findSeller(text string) string {
	if m := sellerRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// technicalDetails collects label/value rows from detail tables and bullet
// lists into the |-delimited blob the heuristic extractor consumes.
func technicalDetails(root *html.Node) string {
	var segments []string
	seen := map[string]struct{}{}

	addRow := func(label, value string) {
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			return
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		segments = append(segments, label+": "+value)
	}

	walk(root, func(n *html.Node) {
		switch strings.ToLower(n.Data) {
		case "tr":
			cells := childElements(n, "th", "td")
			if len(cells) >= 2 {
				addRow(nodeText(cells[0]), nodeText(cells[1]))
			}
		case "li":
			if m := labelRe.FindStringSubmatch(nodeText(n)); m != nil {
				addRow(m[1], m[2])
			}
		}
	})
	return strings.Join(segments, " | ")
}

// sentenceWith returns the first sentence of the page text mentioning the
// keyword, trimmed to a single line.
func sentenceWith(text, keyword string) string {
	for _, line := range strings.Split(text, "\n") {
		for _, sentence := range strings.Split(line, ".") {
			if strings.Contains(strings.ToLower(sentence), keyword) {
				s := strings.TrimSpace(sentence)
				if s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// --- DOM helpers ---

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func metaContent(root *html.Node, attrKey, attrVal string) string {
	var res string
	walk(root, func(n *html.Node) {
		if res != "" || !strings.EqualFold(n.Data, "meta") {
			return
		}
		var matched bool
		var content string
		for _, a := range n.Attr {
			if strings.EqualFold(a.Key, attrKey) && strings.EqualFold(a.Val, attrVal) {
				matched = true
			}
			if strings.EqualFold(a.Key, "content") {
				content = a.Val
			}
		}
		if matched {
			res = strings.TrimSpace(content)
		}
	})
	return res
}

// walk visits every element node in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func childElements(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, tag := range tags {
			if strings.EqualFold(c.Data, tag) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		if cur.Type == html.ElementNode {
			switch strings.ToLower(cur.Data) {
			case "script", "style", "noscript":
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// collectText flattens the page body to line-oriented text, skipping obvious
// boilerplate containers.
func collectText(root *html.Node) string {
	body := findFirst(root, "body")
	if body == nil {
		return ""
	}
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
				return
			case "p", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "br", "div":
				b.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(strings.ReplaceAll(n.Data, "\t", " "))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(body)

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.Join(strings.Fields(line), " "); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
