package results

// Entity is a row that takes part in pace and distance derivation: either an
// observed runner/country or a synthetic summary of a group.
type Entity interface {
	Values() Record
	IsSummary() bool
}

// Observed is an entity read from the input table.
type Observed struct {
	Row  Record
	Line int // 1-based data row number in the input
}

func (o Observed) Values() Record { return o.Row }

func (o Observed) IsSummary() bool { return false }

// Summary is a synthetic entity carrying a group's median finish time.
type Summary struct {
	Row   Record
	Group string // group key the median was computed over; "" for all rows
	Size  int    // number of finish times behind the median
}

func (s Summary) Values() Record { return s.Row }

func (s Summary) IsSummary() bool { return true }
