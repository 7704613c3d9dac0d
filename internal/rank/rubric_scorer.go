package rank

import (
	"strings"

	"jobtrack-engine/internal/domain"
)

// Rubric weights. Every criterion is evaluated independently and the sum is
// capped at MaxScore; empty preference fields simply contribute nothing.
const (
	weightTitleKeyword = 25
	weightDescKeyword  = 15
	weightLocation     = 15
	weightMode         = 10
	weightExperience   = 10
	weightSkillOverlap = 15
	weightFreshness    = 5
	weightSource       = 5

	MaxScore = 100

	freshDaysMax = 2
	bonusSource  = "LinkedIn"
)

// RubricScorer is the fixed additive rubric. It is pure: same inputs always
// produce the same score, and no input shape can make it fail.
type RubricScorer struct{}

func (RubricScorer) Score(job domain.JobPosting, prefs domain.Preferences) int {
	score := 0

	titleLower := strings.ToLower(job.Title)
	if anyKeywordIn(titleLower, prefs.RoleKeywords) {
		score += weightTitleKeyword
	}

	descLower := strings.ToLower(job.Description)
	if anyKeywordIn(descLower, prefs.RoleKeywords) {
		score += weightDescKeyword
	}

	// Bidirectional containment: "Bangalore" matches "Bangalore, India" in
	// either direction. Intentionally case-sensitive, unlike keywords.
	for _, loc := range prefs.PreferredLocations {
		if strings.Contains(job.Location, loc) || strings.Contains(loc, job.Location) {
			score += weightLocation
			break
		}
	}

	for _, m := range prefs.PreferredModes {
		if m == job.Mode {
			score += weightMode
			break
		}
	}

	if prefs.ExperienceLevel != "" && job.Experience == prefs.ExperienceLevel {
		score += weightExperience
	}

	if skillOverlap(job.Skills, prefs.Skills) {
		score += weightSkillOverlap
	}

	if job.PostedDaysAgo <= freshDaysMax {
		score += weightFreshness
	}

	if job.Source == bonusSource {
		score += weightSource
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

func anyKeywordIn(textLower string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(textLower, kw) {
			return true
		}
	}
	return false
}

// skillOverlap requires an exact token match after normalization, unlike the
// substring matching above. Keeps skill hits precise ("reac" must not match
// "react").
func skillOverlap(jobSkills, userSkills []string) bool {
	if len(jobSkills) == 0 || len(userSkills) == 0 {
		return false
	}
	set := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		set[strings.ToLower(s)] = true
	}
	for _, s := range userSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if set[s] {
			return true
		}
	}
	return false
}

// ScoreAll scores every posting in catalog order.
func ScoreAll(sc Scorer, catalog []domain.JobPosting, prefs domain.Preferences) []domain.ScoredPosting {
	out := make([]domain.ScoredPosting, 0, len(catalog))
	for _, job := range catalog {
		n := sc.Score(job, prefs)
		out = append(out, domain.ScoredPosting{
			JobPosting: job,
			Score:      n,
			Band:       domain.ScoreBand(n),
		})
	}
	return out
}
