package rank

import "jobtrack-engine/internal/domain"

type Scorer interface {
	Score(job domain.JobPosting, prefs domain.Preferences) int
}
