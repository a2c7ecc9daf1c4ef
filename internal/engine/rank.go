package engine

// Ranking identifies the best and worst performing records by one ratio.
type Ranking struct {
	Best       Record
	Worst      Record
	BestValue  float64
	WorstValue float64
}

// Rank finds the records with the maximum and minimum value of the chosen
// ratio. Ties resolve to the first occurrence in row order for both ends;
// strict comparisons make that deterministic regardless of input order
// quirks. Returns ErrEmptyDataset when there are no records.
func Rank(ds *Dataset, by RatioField) (*Ranking, error) {
	if len(ds.Records) == 0 {
		return nil, ErrEmptyDataset
	}
	rk := &Ranking{Best: ds.Records[0], Worst: ds.Records[0]}
	rk.BestValue = by.valueOf(Derive(ds.Records[0]))
	rk.WorstValue = rk.BestValue
	for _, r := range ds.Records[1:] {
		v := by.valueOf(Derive(r))
		if v > rk.BestValue {
			rk.Best, rk.BestValue = r, v
		}
		if v < rk.WorstValue {
			rk.Worst, rk.WorstValue = r, v
		}
	}
	return rk, nil
}
