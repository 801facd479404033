package probe

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// crawlInternalLinks walks same-domain pages breadth-first up to the page
// cap and returns the resulting link graph, with paths as node labels.
func (r *Runner) crawlInternalLinks(ctx context.Context, rootURL string, maximum int) LinkGraph {
	root, err := url.Parse(rootURL)
	if err != nil || root.Host == "" {
		return LinkGraph{Error: "Invalid root URL", Nodes: []GraphNode{}, Edges: []GraphEdge{}}
	}
	domain := root.Hostname()

	queue := []string{rootURL}
	queued := map[string]bool{rootURL: true}
	visited := map[string]bool{}
	edges := []GraphEdge{}
	pagesCrawled := 0

	for len(queue) > 0 && len(visited) < maximum {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		pagesCrawled++

		page := r.fetchPage(ctx, current)
		doc := parseDocument(page.HTML)
		if doc == nil {
			continue
		}

		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			resolved := resolveURL(current, sel.AttrOr("href", ""))
			if resolved == "" {
				return
			}
			link, err := url.Parse(resolved)
			if err != nil || link.Hostname() != domain {
				return
			}

			edges = append(edges, GraphEdge{From: urlPath(current), To: urlPath(resolved)})

			if !visited[resolved] && !queued[resolved] && len(visited)+len(queue) < maximum {
				queue = append(queue, resolved)
				queued[resolved] = true
			}
		})
	}

	degrees := map[string]int{}
	order := []string{}
	for _, edge := range edges {
		for _, node := range []string{edge.From, edge.To} {
			if _, seen := degrees[node]; !seen {
				order = append(order, node)
			}
			degrees[node]++
		}
	}

	nodes := make([]GraphNode, 0, len(order))
	for _, node := range order {
		nodes = append(nodes, GraphNode{URL: node, Degree: degrees[node]})
	}

	return LinkGraph{
		Nodes: nodes,
		Edges: edges,
		Summary: GraphSummary{
			PagesCrawled: pagesCrawled,
			UniqueNodes:  len(nodes),
		},
	}
}
