package testsignups

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// Constants for signup distribution across the catalog.
const (
	distributionBuckets = 4
	caseFirstInCatalog  = 0
	caseSecondInCatalog = 1
)

// randomIndex returns a random int in [0, n) using crypto/rand.
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// chooseActivity picks an activity with a skewed distribution so the
// front of the catalog fills up quickly while other clubs stay quiet.
func chooseActivity(names []string) string {
	bucket, _ := rand.Int(rand.Reader, big.NewInt(distributionBuckets))
	switch bucket.Int64() {
	case caseFirstInCatalog:
		return names[0]
	case caseSecondInCatalog:
		return names[minInt(1, len(names)-1)]
	default:
		// Uniform across the whole catalog
		return names[randomIndex(len(names))]
	}
}

// generateSignups creates the specified number of signups with unique
// student emails spread across the given activities.
func generateSignups(ctx context.Context, config *Config, names []string, stats *Stats) ([]Signup, error) {
	logger.Get().Info(ctx, "generating signups with unique student emails",
		logger.Int("numSignups", config.NumSignups),
		logger.Int("activities", len(names)))

	signups := make([]Signup, config.NumSignups)

	// Pre-allocate emails to ensure uniqueness
	emails := make([]string, config.NumSignups)
	for i := 0; i < config.NumSignups; i++ {
		emails[i] = uuid.New().String() + "@mergington.edu"
	}

	// Generate signups concurrently
	type signupResult struct {
		index  int
		signup Signup
		err    error
	}

	resultChan := make(chan signupResult, config.NumSignups)

	// Use worker pool for signup generation
	workerCount := minInt(config.Workers, config.NumSignups)
	signupsPerWorker := config.NumSignups / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * signupsPerWorker
		end := start + signupsPerWorker
		if worker == workerCount-1 {
			end = config.NumSignups // Last worker gets remaining signups
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- signupResult{index: i, err: ctx.Err()}
					return
				default:
					signup := Signup{
						Activity: chooseActivity(names),
						Email:    emails[i],
					}
					resultChan <- signupResult{index: i, signup: signup, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumSignups; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during signup generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate signup %d: %w", result.index, result.err)
			}
			signups[result.index] = result.signup
		}
	}

	stats.SignupsGenerated = len(signups)
	logger.Get().Info(ctx, "generated signups successfully", logger.Int("count", len(signups)))

	return signups, nil
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
