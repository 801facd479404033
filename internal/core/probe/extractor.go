package probe

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func (r *Runner) extractHeaders(html string) map[string]HeadingGroup {
	result := make(map[string]HeadingGroup, len(headingTags))
	for _, tag := range headingTags {
		result[tag] = HeadingGroup{Values: []string{}}
	}
	doc := parseDocument(html)
	if doc == nil {
		return result
	}

	for _, tag := range headingTags {
		group := result[tag]
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			group.Values = append(group.Values, strings.TrimSpace(sel.Text()))
			group.Count++
		})
		result[tag] = group
	}
	return result
}

func (r *Runner) extractImages(html, baseURL string) ImageAudit {
	audit := ImageAudit{Images: []Image{}}
	doc := parseDocument(html)
	if doc == nil {
		return audit
	}

	seen := map[string]bool{}
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := firstAttr(sel, "src", "data-src", "src-set")
		if src == "" {
			return
		}
		resolved := resolveURL(baseURL, src)
		if resolved == "" {
			return
		}

		alt := sel.AttrOr("alt", "")
		title := sel.AttrOr("title", "")
		audit.Summary.Total++
		if alt == "" {
			audit.Summary.MissingAlt++
		}
		if title == "" {
			audit.Summary.MissingTitle++
		}

		if seen[resolved] {
			audit.Summary.Duplicates++
			return
		}
		seen[resolved] = true
		audit.Images = append(audit.Images, Image{URL: resolved, Alt: alt, Title: title})
	})
	return audit
}

// extractLinks buckets every unique resolvable link on the page by its
// live HTTP status, stopping at maxLinks probes.
func (r *Runner) extractLinks(ctx context.Context, html, baseURL string, maxLinks int) map[int][]string {
	buckets := map[int][]string{}
	doc := parseDocument(html)
	if doc == nil {
		return buckets
	}

	visited := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(visited) >= maxLinks {
			return false
		}
		resolved := resolveURL(baseURL, sel.AttrOr("href", ""))
		if resolved == "" || visited[resolved] {
			return true
		}
		visited[resolved] = true
		status := r.statusCode(ctx, resolved)
		buckets[status] = append(buckets[status], resolved)
		return true
	})
	return buckets
}

func parseDocument(html string) *goquery.Document {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if value, ok := sel.Attr(name); ok && value != "" {
			return value
		}
	}
	return ""
}
