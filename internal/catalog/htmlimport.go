package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrack-engine/internal/domain"
)

// ImportHTML converts a saved job-board export page into catalog postings.
// It expects the card markup the board exports produce: one element per
// posting carrying data-* attributes, e.g.
//
//	<div class="job-card" data-id="ln-104" data-mode="Remote"
//	     data-experience="1-3 Years" data-source="LinkedIn" data-posted-days="1">
//	  <h3 class="job-title">React Developer</h3>
//	  <span class="job-company">Acme</span>
//	  <span class="job-location">Bangalore</span>
//	  <span class="job-salary">4-6 LPA</span>
//	  <p class="job-description">...</p>
//	  <ul class="job-skills"><li>React</li><li>TypeScript</li></ul>
//	  <a class="job-apply" href="https://...">Apply</a>
//	</div>
//
// This is an offline file-to-file conversion; nothing is fetched.
func ImportHTML(r io.Reader) ([]domain.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var postings []domain.JobPosting
	var parseErr error

	doc.Find(".job-card").Each(func(i int, card *goquery.Selection) {
		if parseErr != nil {
			return
		}

		id, _ := card.Attr("data-id")
		id = strings.TrimSpace(id)
		if id == "" {
			parseErr = fmt.Errorf("job-card[%d]: missing data-id", i)
			return
		}

		modeRaw, _ := card.Attr("data-mode")
		mode, err := domain.ParseWorkMode(strings.TrimSpace(modeRaw))
		if err != nil {
			parseErr = fmt.Errorf("job-card %s: %w", id, err)
			return
		}

		expRaw, _ := card.Attr("data-experience")
		exp, err := domain.ParseExperienceBand(strings.TrimSpace(expRaw))
		if err != nil {
			parseErr = fmt.Errorf("job-card %s: %w", id, err)
			return
		}

		days := 0
		if raw, ok := card.Attr("data-posted-days"); ok {
			days, err = strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || days < 0 {
				parseErr = fmt.Errorf("job-card %s: bad data-posted-days %q", id, raw)
				return
			}
		}

		source, _ := card.Attr("data-source")

		var skills []string
		card.Find(".job-skills li").Each(func(_ int, li *goquery.Selection) {
			if s := cleanText(li.Text()); s != "" {
				skills = append(skills, s)
			}
		})

		applyURL, _ := card.Find("a.job-apply").Attr("href")

		postings = append(postings, domain.JobPosting{
			ID:            id,
			Title:         cleanText(card.Find(".job-title").Text()),
			Company:       cleanText(card.Find(".job-company").Text()),
			Location:      cleanText(card.Find(".job-location").Text()),
			Mode:          mode,
			Experience:    exp,
			SalaryRange:   cleanText(card.Find(".job-salary").Text()),
			Description:   cleanText(card.Find(".job-description").Text()),
			Skills:        skills,
			Source:        strings.TrimSpace(source),
			PostedDaysAgo: days,
			ApplyURL:      strings.TrimSpace(applyURL),
		})
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if err := Validate(postings); err != nil {
		return nil, err
	}
	return postings, nil
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
