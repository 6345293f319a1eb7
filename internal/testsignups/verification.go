package testsignups

import (
	"fmt"
	"log"
	"sort"
)

// verifyResults checks that every successful signup shows up on the
// activity roster the service reports.
func verifyResults(config *Config, signups []Signup, outcomes []string, after map[string]Activity, stats *Stats) error {
	log.Println("🔍 Verifying rosters...")

	if len(after) == 0 {
		return fmt.Errorf("no activities to verify")
	}

	verified := 0
	missing := 0

	for i, signup := range signups {
		if outcomes[i] != outcomeSuccess {
			continue
		}

		activity, ok := after[signup.Activity]
		if !ok {
			missing++
			if config.Verbose {
				log.Printf("⚠️  Activity %q disappeared from the catalog", signup.Activity)
			}
			continue
		}

		if containsEmail(activity.Participants, signup.Email) {
			verified++
		} else {
			missing++
			if config.Verbose {
				log.Printf("⚠️  %s not found on the %q roster", signup.Email, signup.Activity)
			}
		}
	}

	stats.SignupsVerified = verified
	stats.SignupsMissing = missing

	if missing > 0 {
		log.Printf("⚠️  Roster verification found %d missing signups", missing)
	} else {
		log.Println("✅ All successful signups present on rosters")
	}

	// Display enrollment summary
	displayEnrollment(after, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// containsEmail reports whether the roster holds the given email.
func containsEmail(participants []string, email string) bool {
	for _, p := range participants {
		if p == email {
			return true
		}
	}
	return false
}

// enrollmentEntry pairs an activity name with its roster size.
type enrollmentEntry struct {
	Name     string
	Enrolled int
	Capacity int
}

// displayEnrollment shows the busiest activities after the test run.
func displayEnrollment(after map[string]Activity, verbose bool) {
	entries := make([]enrollmentEntry, 0, len(after))
	for name, activity := range after {
		entries = append(entries, enrollmentEntry{
			Name:     name,
			Enrolled: len(activity.Participants),
			Capacity: activity.MaxParticipants,
		})
	}

	// Sort by enrollment (descending), name as tiebreaker
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Enrolled != entries[j].Enrolled {
			return entries[i].Enrolled > entries[j].Enrolled
		}
		return entries[i].Name < entries[j].Name
	})

	topN := 10
	if len(entries) < topN {
		topN = len(entries)
	}

	log.Printf("🏫 Top %d activities by enrollment:", topN)
	for i := 0; i < topN; i++ {
		entry := entries[i]
		log.Printf("   %d. %s - %d enrolled (capacity %d)", i+1, entry.Name, entry.Enrolled, entry.Capacity)
	}

	if verbose {
		// Show some statistics
		if len(entries) > 0 {
			avgFill := calculateAverageFill(entries)
			maxFill := entries[0].Enrolled
			minFill := entries[len(entries)-1].Enrolled

			log.Printf(`📊 Enrollment statistics:
   Average: %.1f
   Maximum: %d
   Minimum: %d
`, avgFill, maxFill, minFill)
		}
	}
}

// calculateAverageFill calculates the average roster size.
func calculateAverageFill(entries []enrollmentEntry) float64 {
	if len(entries) == 0 {
		return 0
	}

	sum := 0
	for _, entry := range entries {
		sum += entry.Enrolled
	}

	return float64(sum) / float64(len(entries))
}
