package probe

// Results bundles every deep-probe output for one site. Probes degrade
// independently: a failed section carries its Error field and the rest of
// the struct stays usable.
type Results struct {
	Lighthouse         Lighthouse         `json:"lighthouse"`
	Security           SecurityScan       `json:"security"`
	Extractor          Extraction         `json:"extractor"`
	Sitemap            Sitemap            `json:"sitemap"`
	InternalLinks      LinkGraph          `json:"internal_links"`
	Keywords           []Keyword          `json:"keywords"`
	Summary            string             `json:"summary,omitempty"`
	Page               Page               `json:"page"`
	DomainRegistration DomainRegistration `json:"domain_registration"`
}

// Lighthouse holds one performance report per strategy preset.
type Lighthouse struct {
	Mobile  PerformanceReport `json:"mobile"`
	Desktop PerformanceReport `json:"desktop"`
}

// PerformanceReport is the normalized shape shared by the PageSpeed
// Insights API and a local lighthouse run.
type PerformanceReport struct {
	Preset    string              `json:"preset,omitempty"`
	Source    string              `json:"source,omitempty"`
	Scores    *PerformanceScores  `json:"scores,omitempty"`
	Metrics   *PerformanceMetrics `json:"metrics,omitempty"`
	FetchedAt string              `json:"fetched_at,omitempty"`
	Error     string              `json:"error,omitempty"`
	Output    string              `json:"output,omitempty"`
}

// PerformanceScores are category scores in the 0..1 range.
type PerformanceScores struct {
	Performance   *float64 `json:"performance"`
	Accessibility *float64 `json:"accessibility"`
	BestPractices *float64 `json:"best_practices"`
	SEO           *float64 `json:"seo"`
	PWA           *float64 `json:"pwa"`
}

// PerformanceMetrics are lab timings in milliseconds, except CLS which is
// unitless.
type PerformanceMetrics struct {
	FirstContentfulPaintMs   *float64 `json:"first_contentful_paint_ms"`
	LargestContentfulPaintMs *float64 `json:"largest_contentful_paint_ms"`
	SpeedIndexMs             *float64 `json:"speed_index_ms"`
	TotalBlockingTimeMs      *float64 `json:"total_blocking_time_ms"`
	TimeToInteractiveMs      *float64 `json:"time_to_interactive_ms"`
	CumulativeLayoutShift    *float64 `json:"cumulative_layout_shift"`
}

// SecurityScan is the flattened HTTP Observatory result.
type SecurityScan struct {
	Score           *int             `json:"score,omitempty"`
	Grade           string           `json:"grade,omitempty"`
	StatusCode      *int             `json:"status_code,omitempty"`
	TestsFailed     *int             `json:"tests_failed,omitempty"`
	TestsPassed     *int             `json:"tests_passed,omitempty"`
	TestsQuantity   *int             `json:"tests_quantity,omitempty"`
	ResponseHeaders []HeaderValue    `json:"response_headers,omitempty"`
	Tests           []ObservatoryRow `json:"tests,omitempty"`
	FetchedAt       string           `json:"fetched_at,omitempty"`
	Error           string           `json:"error,omitempty"`
	Output          string           `json:"output,omitempty"`
}

// HeaderValue preserves response-header order in the report.
type HeaderValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ObservatoryRow is one observatory test outcome.
type ObservatoryRow struct {
	Name             string `json:"name"`
	Pass             *bool  `json:"pass"`
	Result           string `json:"result,omitempty"`
	Expectation      string `json:"expectation,omitempty"`
	ScoreDescription string `json:"score_description,omitempty"`
}

// Extraction groups the on-page structural probes.
type Extraction struct {
	Headers map[string]HeadingGroup `json:"headers"`
	Images  ImageAudit              `json:"images"`
	Links   map[int][]string        `json:"links"`
}

// HeadingGroup counts one heading level and keeps its text values.
type HeadingGroup struct {
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

// ImageAudit lists deduplicated images plus accessibility counters.
type ImageAudit struct {
	Images  []Image      `json:"images"`
	Summary ImageSummary `json:"summary"`
}

// Image is one deduplicated on-page image.
type Image struct {
	URL   string `json:"url"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// ImageSummary aggregates image issues across the page.
type ImageSummary struct {
	MissingTitle int `json:"missing_title"`
	MissingAlt   int `json:"missing_alt"`
	Duplicates   int `json:"duplicates"`
	Total        int `json:"total"`
}

// Sitemap is the recursively flattened sitemap contents.
type Sitemap struct {
	Entries []SitemapEntry `json:"entries,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// SitemapEntry is one URL from a urlset, numbered in discovery order.
type SitemapEntry struct {
	ID           int    `json:"id"`
	URL          string `json:"url"`
	LastModified string `json:"last_modified,omitempty"`
}

// LinkGraph is the bounded same-domain crawl result.
type LinkGraph struct {
	Nodes   []GraphNode  `json:"nodes"`
	Edges   []GraphEdge  `json:"edges"`
	Summary GraphSummary `json:"summary"`
	Error   string       `json:"error,omitempty"`
}

// GraphNode is a crawled path with its combined in/out degree.
type GraphNode struct {
	URL    string `json:"url"`
	Degree int    `json:"degree"`
}

// GraphEdge is one internal link between two paths.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphSummary reports crawl totals.
type GraphSummary struct {
	PagesCrawled int `json:"pages_crawled"`
	UniqueNodes  int `json:"unique_nodes"`
}

// Keyword is one scored n-gram from the visible page text.
type Keyword struct {
	ID    int    `json:"id"`
	Ngram string `json:"ngram"`
	Score int    `json:"score"`
}

// Page is the raw fetch that fed the structural probes.
type Page struct {
	StatusCode int    `json:"status_code"`
	URL        string `json:"url"`
	HTML       string `json:"html"`
	Error      string `json:"error,omitempty"`
}

// DomainRegistration summarizes the RDAP record for the site's domain.
type DomainRegistration struct {
	Domain     string   `json:"domain,omitempty"`
	Registrar  string   `json:"registrar,omitempty"`
	Status     []string `json:"status,omitempty"`
	Expiration string   `json:"expiration,omitempty"`
	Error      string   `json:"error,omitempty"`
}
