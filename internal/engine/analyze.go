package engine

// Analysis is the full output of one analyze call. Downstream renderers
// (PDF, CSV, JSON) read only this structure.
type Analysis struct {
	PerRecord       []Metrics      `json:"per_record"`
	Aggregate       Aggregate      `json:"aggregate"`
	Classification  Classification `json:"classification"`
	Best            Record         `json:"best"`
	Worst           Record         `json:"worst"`
	Recommendations []string       `json:"recommendations"`
	ParseWarnings   int            `json:"parse_warnings"`
}

// Analyze runs the whole pipeline over a normalized dataset: per-record
// ratios, aggregates, channel classification, best/worst ranking by ROAS,
// and recommendations. One pure computation per upload; errors surface here,
// never from the helpers mid-flight.
func Analyze(ds *Dataset) (*Analysis, error) {
	agg, err := Aggregates(ds)
	if err != nil {
		return nil, err
	}
	rk, err := Rank(ds, ByROAS)
	if err != nil {
		return nil, err
	}
	class := Classify(ds.Columns)
	return &Analysis{
		PerRecord:       DeriveAll(ds),
		Aggregate:       agg,
		Classification:  class,
		Best:            rk.Best,
		Worst:           rk.Worst,
		Recommendations: Recommend(ds, agg, class),
		ParseWarnings:   ds.ParseWarnings,
	}, nil
}
