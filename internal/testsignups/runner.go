package testsignups

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete signup test.
func Run(ctx context.Context, config *Config) error {
	if config.NumSignups <= 0 {
		return fmt.Errorf("number of signups must be positive, got %d", config.NumSignups)
	}
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive, got %d", config.Workers)
	}

	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting activity signup test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("signups", config.NumSignups),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.String("logFile", config.LogFile),
		logger.Any("cleanup", config.Cleanup),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the activity catalog
	catalog, err := getCatalog(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("catalog retrieval failed: %w", err)
	}
	names := activityNames(catalog)

	// Step 3: Generate signups
	signups, err := generateSignups(ctx, config, names, stats)
	if err != nil {
		return fmt.Errorf("signup generation failed: %w", err)
	}

	// Step 4: Submit signups concurrently
	outcomes, err := submitSignups(ctx, config, signups, stats)
	if err != nil {
		return fmt.Errorf("signup submission failed: %w", err)
	}

	// Step 5: Let in-flight requests land
	logger.Get().Info(ctx, "waiting for rosters to settle")
	time.Sleep(RosterSettleDelay)

	// Step 6: Fetch the rosters again
	after, err := fetchActivities(ctx, config)
	if err != nil {
		return fmt.Errorf("roster retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(config, signups, outcomes, after, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save signups to file
	if err := saveSignupsToFile(ctx, config, signups); err != nil {
		logger.Get().Warn(ctx, "failed to save signups to file", logger.Error(err))
	}

	// Step 9: Restore the rosters
	if config.Cleanup {
		if err := removeSignups(ctx, config, signups, outcomes, stats); err != nil {
			return fmt.Errorf("signup cleanup failed: %w", err)
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSignupsToFile saves the generated signups to a JSON file.
func saveSignupsToFile(ctx context.Context, config *Config, signups []Signup) error {
	if len(signups) == 0 {
		return fmt.Errorf("no signups to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_signups_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write signups to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, signup := range signups {
		jsonData, err := marshalJSON(signup)
		if err != nil {
			return fmt.Errorf("failed to marshal signup %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write signup %d: %w", i, err)
		}

		// Add comma except for last signup
		if i < len(signups)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "signups saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, signupsPerSecond float64

	if stats.SignupsSubmitted > 0 {
		successRate = float64(stats.SignupsSuccessful) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		signupsPerSecond = float64(stats.SignupsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("signupsGenerated", stats.SignupsGenerated),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsSuccessful", stats.SignupsSuccessful),
		logger.Int("signupsDuplicate", stats.SignupsDuplicate),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("activitiesSeen", stats.ActivitiesSeen),
		logger.Int("signupsVerified", stats.SignupsVerified),
		logger.Int("signupsMissing", stats.SignupsMissing),
		logger.Int("cleanupsPerformed", stats.CleanupsPerformed),
		logger.Int("cleanupsFailed", stats.CleanupsFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("signupsPerSecond", signupsPerSecond))
}
