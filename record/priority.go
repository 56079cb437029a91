package record

// PriorityController tracks, per predefined field kind, the best priority
// applied so far. Lower priorities are better.
type PriorityController struct {
	// best holds priority+1, so the zero value means nothing applied.
	best [numKinds]int
}

// Prioritize calls apply if priority is at least as good as the best seen
// for kind. The priority is recorded only when apply reports success.
func (c *PriorityController) Prioritize(kind FieldKind, priority int, apply func() bool) bool {
	if b := c.best[kind]; b != 0 && priority+1 > b {
		return false
	}
	if !apply() {
		return false
	}
	c.best[kind] = priority + 1
	return true
}

// Best reports the best priority applied for kind.
func (c *PriorityController) Best(kind FieldKind) (int, bool) {
	b := c.best[kind]
	return b - 1, b != 0
}

func (c *PriorityController) forget(kind FieldKind) { c.best[kind] = 0 }

func (c *PriorityController) Reset() { c.best = [numKinds]int{} }
