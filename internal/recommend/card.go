package recommend

// Card is the expand/collapse state of one displayed entry. It belongs to
// whatever owns the view (one goroutine / event loop); it is not safe for
// concurrent use.
type Card struct {
	expanded bool
}

// NewCard starts in the view model's default state: the top choice opens
// expanded, everything else collapsed.
func NewCard(vm ViewModel) *Card {
	return &Card{expanded: vm.ExpandedByDefault}
}

func (c *Card) Expanded() bool {
	return c.expanded
}

// Toggle flips the state on a tap. Taps that originated inside an action
// element (call / map / website) are suppressed: invoking an action must not
// also collapse the card mid-gesture.
func (c *Card) Toggle(fromAction bool) {
	if fromAction {
		return
	}
	c.expanded = !c.expanded
}
