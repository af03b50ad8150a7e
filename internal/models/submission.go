package models

import "time"

// Submission is a validated waitlist signup. It lives for a single request and is never stored.
type Submission struct {
	ID         string
	Email      string
	ReceivedAt time.Time
}
