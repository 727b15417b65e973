package pipeline

import "sort"

// joined is one district present in all three sources.
type joined struct {
	district       string
	population     int64
	area           float64
	bikeLaneLength float64
}

// innerJoin joins population ⋈ area ⋈ bike lane on district, keeping the
// population source's order. It also returns the districts seen in at least
// one source but not all three.
func innerJoin(pop []populationRow, area, bike []measureRow) ([]joined, []string) {
	areaBy := make(map[string]float64, len(area))
	for _, a := range area {
		areaBy[a.district] = a.value
	}
	bikeBy := make(map[string]float64, len(bike))
	for _, b := range bike {
		bikeBy[b.district] = b.value
	}

	seen := make(map[string]bool, len(pop)+len(area)+len(bike))
	out := make([]joined, 0, len(pop))
	for _, p := range pop {
		seen[p.district] = true
		a, okA := areaBy[p.district]
		b, okB := bikeBy[p.district]
		if !okA || !okB {
			continue
		}
		out = append(out, joined{
			district:       p.district,
			population:     p.population,
			area:           a,
			bikeLaneLength: b,
		})
	}

	kept := make(map[string]bool, len(out))
	for _, j := range out {
		kept[j.district] = true
	}
	for d := range areaBy {
		seen[d] = true
	}
	for d := range bikeBy {
		seen[d] = true
	}

	var dropped []string
	for d := range seen {
		if !kept[d] {
			dropped = append(dropped, d)
		}
	}
	sort.Strings(dropped)
	return out, dropped
}
