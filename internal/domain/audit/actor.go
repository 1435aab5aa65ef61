package audit

// Actor identifies who triggered a mutating operation.
type Actor struct {
	ID   string
	Name string
}

// System is used by scheduled jobs.
var System = Actor{ID: "system", Name: "scheduler"}

func (a Actor) IsZero() bool {
	return a.ID == ""
}

// OrSystem returns a, or System when a carries no identity.
func (a Actor) OrSystem() Actor {
	if a.IsZero() {
		return System
	}
	return a
}
