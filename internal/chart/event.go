package chart

// Change is a bit set describing what a chart mutation recomputed.
type Change uint8

const (
	ChangeSeries Change = 1 << iota // series added or removed
	ChangeDomain                    // date or value steps changed
	ChangeSize                      // plot area resized
	ChangeLegend                    // legend entries changed
)

// Has reports whether c includes all bits of other.
func (c Change) Has(other Change) bool {
	return c&other == other
}

// Event is delivered to subscribers after every chart recompute.
type Event struct {
	Chart   *Chart
	Changed Change
}

type subscriber struct {
	id int
	fn func(Event)
}
