// Package training filters the BLK vocational training directory.
package training

import (
	"sort"
	"strings"

	"github.com/okian/lmi/internal/domain/reference"
)

// Filter selects centres located in one of provinces whose focus skills
// contain query, case-insensitively. Empty provinces or query match everything.
func Filter(centers []reference.TrainingCenter, provinces []string, query string) []reference.TrainingCenter {
	want := make(map[string]struct{}, len(provinces))
	for _, p := range provinces {
		want[p] = struct{}{}
	}
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]reference.TrainingCenter, 0, len(centers))
	for _, c := range centers {
		if len(want) > 0 {
			if _, ok := want[c.Province]; !ok {
				continue
			}
		}
		if q != "" && !strings.Contains(strings.ToLower(c.FocusSkills), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Provinces returns the distinct provinces of centers, sorted.
func Provinces(centers []reference.TrainingCenter) []string {
	seen := make(map[string]struct{}, len(centers))
	out := make([]string, 0, len(centers))
	for _, c := range centers {
		if _, ok := seen[c.Province]; ok {
			continue
		}
		seen[c.Province] = struct{}{}
		out = append(out, c.Province)
	}
	sort.Strings(out)
	return out
}

// Header is the column order of the directory export.
var Header = []string{"name", "province", "specialization", "focus_skills", "capacity"}
