package engine

// PredictNext fits an ordinary least-squares line of the values against
// their indices 0..n-1 and extrapolates one step to index n. Deliberately
// minimal: no confidence interval, no seasonality.
func PredictNext(values []float64) (float64, error) {
	n := len(values)
	if n < 2 {
		return 0, ErrInsufficientData
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		// n >= 2 distinct indices make this unreachable; keep the guard.
		return 0, ErrInsufficientData
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	return slope*fn + intercept, nil
}
