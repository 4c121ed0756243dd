package harvest

import "github.com/openswoop/socharvest/pkg/soc"

// Index tracks, per campus, which course strings were already recorded during
// this run. It is never loaded from a previous run.
type Index struct {
	campuses []soc.Campus
	seen     map[soc.Campus]map[string]bool
	order    map[soc.Campus][]string
}

func NewIndex(campuses ...soc.Campus) *Index {
	if len(campuses) == 0 {
		campuses = soc.Campuses
	}
	idx := &Index{
		seen:  make(map[soc.Campus]map[string]bool, len(campuses)),
		order: make(map[soc.Campus][]string, len(campuses)),
	}
	for _, campus := range campuses {
		idx.track(campus)
	}
	return idx
}

func (idx *Index) track(campus soc.Campus) {
	if _, found := idx.seen[campus]; found {
		return
	}
	idx.campuses = append(idx.campuses, campus)
	idx.seen[campus] = make(map[string]bool)
}

// Add records courseID for campus, reporting false if it was already there.
func (idx *Index) Add(campus soc.Campus, courseID string) bool {
	idx.track(campus)
	if idx.seen[campus][courseID] {
		return false
	}
	idx.seen[campus][courseID] = true
	idx.order[campus] = append(idx.order[campus], courseID)
	return true
}

func (idx *Index) Contains(campus soc.Campus, courseID string) bool {
	return idx.seen[campus][courseID]
}

// Campuses lists tracked campuses in the order they were registered.
func (idx *Index) Campuses() []soc.Campus {
	return idx.campuses
}

// IDs lists a campus's course strings in the order they were added.
func (idx *Index) IDs(campus soc.Campus) []string {
	return idx.order[campus]
}

func (idx *Index) Len(campus soc.Campus) int {
	return len(idx.order[campus])
}
