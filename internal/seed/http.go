package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/okian/hrm/pkg/logger"
)

// ImportResult mirrors the POST /import response.
type ImportResult struct {
	Added       int      `json:"added"`
	Skipped     int      `json:"skipped"`
	Diagnostics []string `json:"diagnostics"`
}

// Import posts the seed file at path to baseURL + "/import".
func Import(ctx context.Context, baseURL, path string, timeout time.Duration) (ImportResult, error) {
	var out ImportResult

	file, err := os.Open(path)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrImport, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close seed file", logger.Error(err))
		}
	}()

	url := strings.TrimRight(baseURL, "/") + "/import"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, file)
	if err != nil {
		return out, fmt.Errorf("%w: failed to create request: %w", ErrImport, err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrImport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("%w: status %d", ErrImport, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: failed to decode response: %w", ErrImport, err)
	}
	return out, nil
}
