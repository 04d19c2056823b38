package grid

// AggregateResult maps a column field to its aggregate value. Columns without
// an aggregate kind have no entry.
type AggregateResult map[string]float64

// Aggregate computes sum and average columns over rows, which callers pass
// as the filtered set rather than the displayed page.
func Aggregate(rows []Row, cols Columns) AggregateResult {
	out := AggregateResult{}
	for _, c := range cols {
		switch c.Aggregate {
		case AggregateSum, AggregateAverage:
		default:
			continue
		}
		sum := 0.0
		for _, r := range rows {
			sum += Numeric(r.Value(c.Field))
		}
		if c.Aggregate == AggregateAverage {
			if len(rows) == 0 {
				out[c.Field] = 0
				continue
			}
			sum /= float64(len(rows))
		}
		out[c.Field] = sum
	}
	return out
}
