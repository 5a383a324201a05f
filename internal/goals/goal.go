package goals

import "time"

// Goal is a race (or training) goal the readiness analysis is run
// against. TargetDistance is free text like "10k" or "half marathon",
// TargetTime like "1:45:00"; both optional.
type Goal struct {
	ID             int       `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	TargetDate     time.Time `json:"targetDate"`
	TargetDistance string    `json:"targetDistance"`
	TargetTime     string    `json:"targetTime"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DaysUntil returns the whole days between now and the goal's target
// date, negative when the target date has passed.
func (g Goal) DaysUntil(now time.Time) int {
	return int(g.TargetDate.Truncate(24 * time.Hour).Sub(now.Truncate(24*time.Hour)).Hours() / 24)
}
