package probe

import (
	"context"
	"encoding/json"
)

// securityScan shells out to httpobs-cli and flattens the observatory
// report. Any failure keeps the audit alive and records the tool output.
func (r *Runner) securityScan(ctx context.Context, target string) SecurityScan {
	runCtx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	stdout, stderr, err := r.exec()(runCtx, "httpobs-cli", "-d", target)
	if err != nil {
		output := string(stderr)
		if output == "" {
			output = string(stdout)
		}
		return SecurityScan{Error: "HTTP Observatory failed", Output: output}
	}

	var raw struct {
		Scan struct {
			Score           *int              `json:"score"`
			Grade           string            `json:"grade"`
			StatusCode      *int              `json:"status_code"`
			TestsFailed     *int              `json:"tests_failed"`
			TestsPassed     *int              `json:"tests_passed"`
			TestsQuantity   *int              `json:"tests_quantity"`
			ResponseHeaders map[string]string `json:"response_headers"`
		} `json:"scan"`
		Tests []struct {
			Name             string `json:"name"`
			Pass             *bool  `json:"pass"`
			Result           string `json:"result"`
			Expectation      string `json:"expectation"`
			ScoreDescription string `json:"score_description"`
		} `json:"tests"`
	}
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return SecurityScan{Error: "Unable to parse HTTP Observatory output"}
	}

	scan := SecurityScan{
		Score:         raw.Scan.Score,
		Grade:         raw.Scan.Grade,
		StatusCode:    raw.Scan.StatusCode,
		TestsFailed:   raw.Scan.TestsFailed,
		TestsPassed:   raw.Scan.TestsPassed,
		TestsQuantity: raw.Scan.TestsQuantity,
		FetchedAt:     r.timestamp(),
	}
	for name, value := range raw.Scan.ResponseHeaders {
		scan.ResponseHeaders = append(scan.ResponseHeaders, HeaderValue{Name: name, Value: value})
	}
	for _, test := range raw.Tests {
		scan.Tests = append(scan.Tests, ObservatoryRow{
			Name:             test.Name,
			Pass:             test.Pass,
			Result:           test.Result,
			Expectation:      test.Expectation,
			ScoreDescription: test.ScoreDescription,
		})
	}
	return scan
}
