package domain

import "fmt"

// WorkMode is the posting's on-site arrangement.
type WorkMode string

const (
	ModeRemote WorkMode = "Remote"
	ModeHybrid WorkMode = "Hybrid"
	ModeOnsite WorkMode = "Onsite"
)

func ParseWorkMode(s string) (WorkMode, error) {
	m := WorkMode(s)
	switch m {
	case ModeRemote, ModeHybrid, ModeOnsite:
		return m, nil
	}
	return "", fmt.Errorf("unknown work mode %q", s)
}

// ExperienceBand mirrors the bands the catalog sources publish.
type ExperienceBand string

const (
	ExpFresher    ExperienceBand = "Fresher"
	ExpZeroToOne  ExperienceBand = "0-1 Years"
	ExpOneToThree ExperienceBand = "1-3 Years"
	ExpThreeFive  ExperienceBand = "3-5 Years"
)

func ParseExperienceBand(s string) (ExperienceBand, error) {
	b := ExperienceBand(s)
	switch b {
	case ExpFresher, ExpZeroToOne, ExpOneToThree, ExpThreeFive:
		return b, nil
	}
	return "", fmt.Errorf("unknown experience band %q", s)
}

// JobPosting is one catalog entry. Created once at catalog load, never mutated.
type JobPosting struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Company       string         `json:"company"`
	Location      string         `json:"location"`
	Mode          WorkMode       `json:"mode"`
	Experience    ExperienceBand `json:"experience"`
	SalaryRange   string         `json:"salaryRange"`
	Description   string         `json:"description"`
	Skills        []string       `json:"skills"`
	Source        string         `json:"source"`
	PostedDaysAgo int            `json:"postedDaysAgo"`
	ApplyURL      string         `json:"applyUrl"`
}

// ScoredPosting pairs a posting with the score it earned against one
// Preferences snapshot. Recomputed on demand, never stored on its own.
type ScoredPosting struct {
	JobPosting
	Score int    `json:"score"`
	Band  string `json:"band"`
}

// ScoreBand buckets a score the same way the dashboard colors it.
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	}
	return "weak"
}
