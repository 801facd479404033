package probe

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
)

// extractSitemap tries the site URL itself and then /sitemap.xml,
// following sitemapindex files recursively. The first candidate that
// yields entries wins.
func (r *Runner) extractSitemap(ctx context.Context, siteURL string) Sitemap {
	candidates := []string{
		siteURL,
		strings.TrimRight(siteURL, "/") + "/sitemap.xml",
	}

	visited := map[string]bool{}
	var entries []SitemapEntry
	id := 0
	for _, candidate := range candidates {
		r.parseSitemap(ctx, candidate, visited, &entries, &id)
		if len(entries) > 0 {
			break
		}
	}

	if len(entries) == 0 {
		return Sitemap{Error: "No valid sitemap found"}
	}
	return Sitemap{Entries: entries}
}

type sitemapXML struct {
	XMLName  xml.Name
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
	URLs []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"url"`
}

func (r *Runner) parseSitemap(ctx context.Context, target string, visited map[string]bool, entries *[]SitemapEntry, id *int) {
	if visited[target] {
		return
	}
	visited[target] = true

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	var doc sitemapXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return
	}

	switch doc.XMLName.Local {
	case "sitemapindex":
		for _, child := range doc.Sitemaps {
			r.parseSitemap(ctx, strings.TrimSpace(child.Loc), visited, entries, id)
		}
	case "urlset":
		for _, entry := range doc.URLs {
			*entries = append(*entries, SitemapEntry{
				ID:           *id,
				URL:          strings.TrimSpace(entry.Loc),
				LastModified: strings.TrimSpace(entry.LastMod),
			})
			*id++
		}
	}
}
