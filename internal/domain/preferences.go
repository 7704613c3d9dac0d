package domain

import (
	"fmt"
	"strings"
)

// Preferences is the user's matching criteria. Saved wholesale, never patched.
type Preferences struct {
	RoleKeywords       []string       `json:"roleKeywords"`
	PreferredLocations []string       `json:"preferredLocations"`
	PreferredModes     []WorkMode     `json:"preferredModes"`
	ExperienceLevel    ExperienceBand `json:"experienceLevel"` // empty = unset
	Skills             []string       `json:"skills"`
	MinMatchScore      int            `json:"minMatchScore"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		RoleKeywords:       []string{},
		PreferredLocations: []string{},
		PreferredModes:     []WorkMode{},
		Skills:             []string{},
		MinMatchScore:      40,
	}
}

// IsZero reports whether the record still carries only defaults, i.e. the
// user has not configured anything yet.
func (p Preferences) IsZero() bool {
	return len(p.RoleKeywords) == 0 &&
		len(p.PreferredLocations) == 0 &&
		len(p.PreferredModes) == 0 &&
		p.ExperienceLevel == "" &&
		len(p.Skills) == 0
}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedupes the list fields and checks the rest.
// The normalized copy is only meaningful when the validation passes.
func NormalizeAndValidate(p Preferences) (Preferences, Validation) {
	out := p
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		ys := []string{}
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.RoleKeywords = trimList(out.RoleKeywords)
	out.PreferredLocations = trimList(out.PreferredLocations)
	out.Skills = trimList(out.Skills)

	if out.MinMatchScore < 0 || out.MinMatchScore > 100 {
		res.addErr("minMatchScore must be 0..100 (got %d)", out.MinMatchScore)
	}

	modes := []WorkMode{}
	seenMode := map[WorkMode]bool{}
	for i, m := range out.PreferredModes {
		if _, err := ParseWorkMode(string(m)); err != nil {
			res.addErr("preferredModes[%d]: %v", i, err)
			continue
		}
		if seenMode[m] {
			continue
		}
		seenMode[m] = true
		modes = append(modes, m)
	}
	out.PreferredModes = modes

	if out.ExperienceLevel != "" {
		if _, err := ParseExperienceBand(string(out.ExperienceLevel)); err != nil {
			res.addErr("experienceLevel: %v", err)
		}
	}

	if out.IsZero() {
		res.addWarn("all criteria are empty; every posting will score 0 plus bonuses")
	}

	return out, res
}
