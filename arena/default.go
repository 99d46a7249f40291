package arena

// DefaultTankRadius is the wall clearance used by the standard arena.
const DefaultTankRadius = 1

// Layout returns the barrier segments of the standard arena: the outer
// rectangle plus two interior partitions, one hanging from the top edge at
// a third of the width and one rising from the bottom edge at two thirds.
func Layout(width, height int) []Line {
	return []Line{
		{Point{0, 0}, Point{width, 0}},
		{Point{width, 0}, Point{width, height}},
		{Point{width, height}, Point{0, height}},
		{Point{0, height}, Point{0, 0}},
		{Point{width / 3, 0}, Point{width / 3, height * 2 / 3}},
		{Point{width * 2 / 3, height / 3}, Point{width * 2 / 3, height}},
	}
}

// NewDefault builds the standard arena for a width x height playing field.
// The grid has one extra row and column so the far walls sit on cells.
func NewDefault(width, height int) (*Map, error) {
	m := New(width+1, height+1, DefaultTankRadius)
	for _, l := range Layout(width, height) {
		if err := m.AddBarrier(l); err != nil {
			return nil, err
		}
	}
	return m, nil
}
