package aggregate

import (
	"fmt"
	"sort"

	"github.com/okian/lmi/internal/domain/model"
)

// LatestPeriod returns the highest period order in obs.
func LatestPeriod(obs []model.Observation) (int, error) {
	if len(obs) == 0 {
		return 0, model.ErrEmptyDataset
	}
	latest := obs[0].PeriodOrder
	for i := range obs[1:] {
		if o := obs[i+1].PeriodOrder; o > latest {
			latest = o
		}
	}
	return latest, nil
}

// Snapshot returns the rows of one period sorted by province.
func Snapshot(obs []model.Observation, order int) []model.Observation {
	out := make([]model.Observation, 0)
	for i := range obs {
		if obs[i].PeriodOrder == order {
			out = append(out, obs[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Province < out[j].Province })
	return out
}

// LatestSnapshot returns the rows of the latest period sorted by province.
func LatestSnapshot(obs []model.Observation) ([]model.Observation, error) {
	latest, err := LatestPeriod(obs)
	if err != nil {
		return nil, err
	}
	return Snapshot(obs, latest), nil
}

// Provinces returns the distinct province names in obs, sorted.
func Provinces(obs []model.Observation) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range obs {
		p := obs[i].Province
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FindProvince returns the row of province within a snapshot.
func FindProvince(snapshot []model.Observation, province string) (model.Observation, error) {
	for i := range snapshot {
		if snapshot[i].Province == province {
			return snapshot[i], nil
		}
	}
	return model.Observation{}, fmt.Errorf("%w: %q", model.ErrUnknownProvince, province)
}

// HighlightDelta renders current-reference as a signed percentage-point string.
func HighlightDelta(current, reference float64) string {
	delta := current - reference
	sign := ""
	if delta >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f pp", sign, delta)
}

// selectProvinces filters obs to the given names; empty names selects all.
// Unknown names are lookup errors.
func selectProvinces(obs []model.Observation, names []string) ([]model.Observation, error) {
	if len(names) == 0 {
		return obs, nil
	}
	known := make(map[string]struct{})
	for i := range obs {
		known[obs[i].Province] = struct{}{}
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := known[n]; !ok {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownProvince, n)
		}
		want[n] = struct{}{}
	}
	out := make([]model.Observation, 0)
	for i := range obs {
		if _, ok := want[obs[i].Province]; ok {
			out = append(out, obs[i])
		}
	}
	return out, nil
}
