package export

// Dataset defines tabular export content built from one list surface.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}
