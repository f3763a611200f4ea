package domain

import "slices"

// ProjectDiff represents the changes between two projects.
// It is designed to be serialized to JSON for partial updates on the client.
type ProjectDiff struct {
	// Added and Removed list instance ids present on only one side.
	Added   []InstanceID `json:"added,omitempty"`
	Removed []InstanceID `json:"removed,omitempty"`

	// Moved lists instances whose position changed.
	Moved map[InstanceID]Coord `json:"moved,omitempty"`

	// Connections and Wires hold the new totals when they changed.
	Connections *int `json:"connections,omitempty"`
	Wires       *int `json:"wires,omitempty"`
}

// Diff calculates the difference between oldProject and newProject.
// If oldProject is nil, every instance of newProject counts as added.
// It returns nil when nothing changed.
func Diff(oldProject, newProject *Project) *ProjectDiff {
	if newProject == nil {
		return nil
	}
	if oldProject == nil {
		oldProject = NewProject()
	}

	diff := &ProjectDiff{}

	for _, pl := range newProject.Placements() {
		prev, ok := oldProject.placements[pl.Instance]
		if !ok {
			diff.Added = append(diff.Added, pl.Instance)
			continue
		}
		if prev.Pos != pl.Pos {
			if diff.Moved == nil {
				diff.Moved = make(map[InstanceID]Coord)
			}
			diff.Moved[pl.Instance] = pl.Pos
		}
	}
	for _, id := range oldProject.order {
		if _, ok := newProject.placements[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}
	slices.Sort(diff.Removed)

	if n := newProject.ConnectionCount(); n != oldProject.ConnectionCount() {
		diff.Connections = &n
	}
	if n := len(newProject.wires); n != len(oldProject.wires) {
		diff.Wires = &n
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *ProjectDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Moved) == 0 &&
		d.Connections == nil &&
		d.Wires == nil
}
