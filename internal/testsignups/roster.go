package testsignups

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// fetchActivities retrieves the activity catalog keyed by name.
func fetchActivities(ctx context.Context, config *Config) (map[string]Activity, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/activities"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var catalog map[string]Activity
	if err := unmarshalJSON(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return catalog, nil
}

// activityNames returns the catalog keys in a stable order so signup
// distribution is repeatable across runs.
func activityNames(catalog map[string]Activity) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getCatalog fetches the catalog and logs a one-line summary.
func getCatalog(ctx context.Context, config *Config, stats *Stats) (map[string]Activity, error) {
	log.Println("📋 Fetching activity catalog...")

	catalog, err := fetchActivities(ctx, config)
	if err != nil {
		return nil, err
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("service returned an empty activity catalog")
	}

	stats.ActivitiesSeen = len(catalog)
	log.Printf("✅ Retrieved %d activities", len(catalog))

	return catalog, nil
}
