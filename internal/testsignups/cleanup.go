package testsignups

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// removeSignups unregisters every successful test signup so the rosters
// return to their pre-test state.
func removeSignups(ctx context.Context, config *Config, signups []Signup, outcomes []string, stats *Stats) error {
	// Collect the signups that actually landed
	indices := make([]int, 0, len(signups))
	for i := range signups {
		if outcomes[i] == outcomeSuccess {
			indices = append(indices, i)
		}
	}

	if len(indices) == 0 {
		log.Println("🧹 No signups to remove")
		return nil
	}

	log.Printf("🧹 Removing %d test signups with %d workers...", len(indices), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		removed int64
		failed  int64
	)

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					if err := removeSingleSignup(ctx, client, config.BaseURL, signups[index]); err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to remove %s from %q: %v",
								signups[index].Email, signups[index].Activity, err)
						}
					} else {
						atomic.AddInt64(&removed, 1)
					}
				}
			}
		}(i)
	}

	// Send signup indices to workers
	go func() {
		defer close(indexChan)
		for _, index := range indices {
			select {
			case <-ctx.Done():
				return
			case indexChan <- index:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.CleanupsPerformed = int(atomic.LoadInt64(&removed))
	stats.CleanupsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Cleanup completed:
   Removed: %d
   Failed: %d
`, stats.CleanupsPerformed, stats.CleanupsFailed)

	return nil
}

// removeSingleSignup unregisters a single signup.
func removeSingleSignup(ctx context.Context, client *HTTPClient, baseURL string, signup Signup) error {
	resp, err := client.Delete(ctx, unregisterURL(baseURL, signup.Activity, signup.Email))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
