package tracker

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/Allen-Davis-M/Attendify/core"
)

// minSimilarity is the difflib Ratio a name needs to be suggested.
const minSimilarity = 0.6

// FindSubject looks a subject up by id, then by case-insensitive name.
// When nothing matches, the error names the closest subject, if any.
func (svc *Service) FindSubject(query string) (Subject, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	query = core.CleanString(query)
	if s, ok := svc.data.Subject(query); ok {
		return s, nil
	}
	for _, s := range svc.data.Subjects {
		if strings.EqualFold(s.Name, query) {
			return s, nil
		}
	}

	if suggestion := closestName(query, svc.data.Subjects); suggestion != "" {
		return Subject{}, errors.Wrapf(ErrSubjectNotFound, "%q (did you mean %q?)", query, suggestion)
	}
	return Subject{}, errors.Wrapf(ErrSubjectNotFound, "%q", query)
}

func closestName(query string, subjects []Subject) string {
	getRatio := func(a, b string) float64 {
		return difflib.NewMatcher(strings.Split(strings.ToLower(a), ""), strings.Split(strings.ToLower(b), "")).Ratio()
	}

	var best string
	bestRatio := minSimilarity
	for _, s := range subjects {
		if r := getRatio(query, s.Name); r >= bestRatio {
			best, bestRatio = s.Name, r
		}
	}
	return best
}
