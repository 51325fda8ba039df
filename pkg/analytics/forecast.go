package analytics

import "context"

// Forecaster predicts per-month spending totals from historical per-month
// totals. The default policy is deliberately naive; callers that need a real
// time-series model swap it via WithForecaster.
type Forecaster interface {
	Forecast(ctx context.Context, monthlyTotals []float64, monthsAhead int) ([]float64, error)
}

// FlatAverageForecaster repeats the average of all historical monthly totals
// for each requested month. No history yields no predictions.
type FlatAverageForecaster struct{}

func (f *FlatAverageForecaster) Forecast(_ context.Context, monthlyTotals []float64, monthsAhead int) ([]float64, error) {
	if len(monthlyTotals) == 0 {
		return nil, nil
	}

	var sum float64
	for _, v := range monthlyTotals {
		sum += v
	}
	avg := sum / float64(len(monthlyTotals))

	predicted := make([]float64, monthsAhead)
	for i := range predicted {
		predicted[i] = avg
	}
	return predicted, nil
}
