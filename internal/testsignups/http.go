package testsignups

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request. The signup endpoints carry all input in
// the URL, so no body is sent.
func (c *HTTPClient) Post(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Delete performs a DELETE request
func (c *HTTPClient) Delete(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// signupURL builds the signup endpoint URL for an activity and email.
func signupURL(baseURL, activity, email string) string {
	return baseURL + "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
}

// unregisterURL builds the unregister endpoint URL for an activity and email.
func unregisterURL(baseURL, activity, email string) string {
	return baseURL + "/activities/" + url.PathEscape(activity) + "/unregister?email=" + url.QueryEscape(email)
}

// submitSignups submits signups concurrently using worker pools. The
// returned slice holds one outcome per signup, aligned by index.
func submitSignups(ctx context.Context, config *Config, signups []Signup, stats *Stats) ([]string, error) {
	log.Printf("📤 Submitting %d signups with %d workers...", len(signups), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Counters for statistics
	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	// Per-signup outcomes, written by index so workers never collide
	outcomes := make([]string, len(signups))

	// Progress reporting
	var lastReportNanos int64
	reportInterval := 1 * time.Second

	// Create worker pool
	signupChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range signupChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSignup(ctx, client, config.BaseURL, signups[index])
					outcomes[index] = result

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case outcomeSuccess:
						atomic.AddInt64(&successful, 1)
					case outcomeDuplicate:
						atomic.AddInt64(&duplicate, 1)
					case outcomeFailed:
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					now := time.Now().UnixNano()
					last := atomic.LoadInt64(&lastReportNanos)
					if now-last >= int64(reportInterval) && atomic.CompareAndSwapInt64(&lastReportNanos, last, now) {
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(signups), succ, dup, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, duplicate: %d, failed: %d)",
								total, len(signups), succ, dup, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send signup indices to workers
	go func() {
		defer close(signupChan)
		for i := range signups {
			select {
			case <-ctx.Done():
				return
			case signupChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SignupsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SignupsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SignupsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SignupsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Signup submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.SignupsSuccessful, stats.SignupsDuplicate, stats.SignupsFailed)

	return outcomes, nil
}

// submitSingleSignup submits a single signup and returns the result
func submitSingleSignup(ctx context.Context, client *HTTPClient, baseURL string, signup Signup) string {
	resp, err := client.Post(ctx, signupURL(baseURL, signup.Activity, signup.Email))
	if err != nil {
		return outcomeFailed
	}

	// Read response body
	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusOK:
		// OK - student added to the roster
		var msg MessageResponse
		if err := unmarshalJSON(body, &msg); err == nil && msg.Message != "" {
			return outcomeSuccess
		}
		return outcomeSuccess // Assume success for 200 even if parsing fails
	case StatusBadRequest:
		// Bad request - either a duplicate signup or a rejected one
		var detail DetailResponse
		if err := unmarshalJSON(body, &detail); err == nil && strings.Contains(detail.Detail, "already registered") {
			return outcomeDuplicate
		}
		return outcomeFailed
	default:
		// Error
		return outcomeFailed
	}
}
