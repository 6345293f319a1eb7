package testsignups

import "time"

// Config holds configuration for the signup test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumSignups int           // Number of signups to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for signups
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
	Cleanup    bool          // Unregister successful signups afterwards
}

// Signup represents a single signup to be submitted
type Signup struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// Activity mirrors the roster entry returned by the service
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse represents a successful mutation response
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse represents an error response
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Submission outcome labels.
const (
	outcomeSuccess   = "success"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// Stats holds test statistics
type Stats struct {
	SignupsGenerated  int
	SignupsSubmitted  int
	SignupsSuccessful int
	SignupsDuplicate  int
	SignupsFailed     int
	ActivitiesSeen    int
	SignupsVerified   int
	SignupsMissing    int
	CleanupsPerformed int
	CleanupsFailed    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
