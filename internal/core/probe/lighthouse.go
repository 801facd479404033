package probe

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os/exec"

	"go.uber.org/zap"
)

const psiEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// performance prefers the PageSpeed Insights API and falls back to a
// local lighthouse binary when no API key is configured or the API call
// fails.
func (r *Runner) performance(ctx context.Context, target, preset string) PerformanceReport {
	if report, ok := r.pageSpeedAPI(ctx, target, preset); ok {
		return report
	}
	return r.lighthouseBinary(ctx, target, preset)
}

func (r *Runner) pageSpeedAPI(ctx context.Context, target, strategy string) (PerformanceReport, bool) {
	if r.PSIKey == "" {
		return PerformanceReport{}, false
	}

	endpoint := r.PSIBaseURL
	if endpoint == "" {
		endpoint = psiEndpoint
	}

	params := url.Values{}
	params.Set("url", target)
	params.Set("strategy", strategy) // PSI expects lowercase "mobile" or "desktop"
	params.Set("category", "performance")
	params.Set("key", r.PSIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return PerformanceReport{}, false
	}

	client := &http.Client{Timeout: toolTimeout, Transport: insecureTransport()}
	resp, err := client.Do(req)
	if err != nil {
		r.Logger.Debug("psi request failed", zap.String("strategy", strategy), zap.Error(err))
		return PerformanceReport{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PerformanceReport{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PerformanceReport{}, false
	}

	var payload struct {
		LighthouseResult *lighthouseJSON `json:"lighthouseResult"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.LighthouseResult == nil {
		return PerformanceReport{}, false
	}

	report := payload.LighthouseResult.report(strategy)
	report.Source = "psi_api"
	report.FetchedAt = r.timestamp()
	return report, true
}

func (r *Runner) lighthouseBinary(ctx context.Context, target, preset string) PerformanceReport {
	args := []string{
		"--chrome-flags=--headless --no-sandbox --disable-dev-shm-usage",
		target,
		"--output=json",
		"--output-path=stdout",
	}
	if preset == "desktop" {
		args = append(args, "--preset=desktop")
	}

	runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	stdout, stderr, err := r.exec()(runCtx, "lighthouse", args...)
	if err != nil {
		output := string(stderr)
		if output == "" {
			output = string(stdout)
		}
		return PerformanceReport{Error: "Lighthouse failed", Output: output}
	}

	var decoded lighthouseJSON
	if err := json.Unmarshal(stdout, &decoded); err != nil {
		return PerformanceReport{Error: "Unable to parse lighthouse output"}
	}

	report := decoded.report(preset)
	report.FetchedAt = r.timestamp()
	return report
}

func (r *Runner) exec() CommandRunner {
	if r.Exec != nil {
		return r.Exec
	}
	return execCommand
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// lighthouseJSON is the subset of a lighthouse report the audit keeps,
// shared by the PSI API response and local binary output.
type lighthouseJSON struct {
	Categories map[string]struct {
		Score *float64 `json:"score"`
	} `json:"categories"`
	Audits map[string]struct {
		NumericValue *float64 `json:"numericValue"`
	} `json:"audits"`
}

func (l *lighthouseJSON) report(preset string) PerformanceReport {
	category := func(key string) *float64 {
		if entry, ok := l.Categories[key]; ok {
			return entry.Score
		}
		return nil
	}
	audit := func(key string) *float64 {
		if entry, ok := l.Audits[key]; ok {
			return entry.NumericValue
		}
		return nil
	}

	return PerformanceReport{
		Preset: preset,
		Scores: &PerformanceScores{
			Performance:   category("performance"),
			Accessibility: category("accessibility"),
			BestPractices: category("best-practices"),
			SEO:           category("seo"),
			PWA:           category("pwa"),
		},
		Metrics: &PerformanceMetrics{
			FirstContentfulPaintMs:   audit("first-contentful-paint"),
			LargestContentfulPaintMs: audit("largest-contentful-paint"),
			SpeedIndexMs:             audit("speed-index"),
			TotalBlockingTimeMs:      audit("total-blocking-time"),
			TimeToInteractiveMs:      audit("interactive"),
			CumulativeLayoutShift:    audit("cumulative-layout-shift"),
		},
	}
}

func insecureTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}
