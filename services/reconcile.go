package services

// ChildRecord is implemented by owned child rows carrying a stable identity.
// models.Base provides it for every entity.
type ChildRecord interface {
	RecordID() string
}

// Diff is the minimal set of mutations that makes a persisted child
// collection match a submitted one.
type Diff[T ChildRecord] struct {
	Create    []T
	Update    []T
	DeleteIDs []string
}

// Reconcile compares the persisted child set against the caller-submitted
// one. The submission is authoritative: children omitted from it are
// deleted, children submitted with a known identity are overwritten in
// full, children without an identity become new rows. A submitted identity
// unknown to the persisted set is treated as a create and the identity is
// reassigned, not an error.
func Reconcile[T ChildRecord](existing, submitted []T) Diff[T] {
	existingIDs := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingIDs[e.RecordID()] = true
	}

	var d Diff[T]
	keep := make(map[string]bool, len(submitted))
	for _, s := range submitted {
		id := s.RecordID()
		if id != "" && existingIDs[id] {
			d.Update = append(d.Update, s)
			keep[id] = true
			continue
		}
		d.Create = append(d.Create, s)
	}

	for _, e := range existing {
		if !keep[e.RecordID()] {
			d.DeleteIDs = append(d.DeleteIDs, e.RecordID())
		}
	}

	return d
}
