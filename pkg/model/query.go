package model

import "github.com/m-mizutani/goerr/v2"

// AnalyticOp identifies one analytic operation. The set is closed: adding an
// operation means adding a new variant and a matching tool registration,
// never overloading an existing one.
type AnalyticOp string

const (
	OpSum                AnalyticOp = "sum"
	OpAvg                AnalyticOp = "avg"
	OpMin                AnalyticOp = "min"
	OpMax                AnalyticOp = "max"
	OpCount              AnalyticOp = "count"
	OpGroupByCategory    AnalyticOp = "group_by_category"
	OpDateRange          AnalyticOp = "date_range"
	OpAnomaly            AnalyticOp = "anomaly"
	OpTrend              AnalyticOp = "trend"
	OpForecast           AnalyticOp = "forecast"
	OpComparePeriods     AnalyticOp = "compare_periods"
	OpTopN               AnalyticOp = "top_n"
	OpDistinct           AnalyticOp = "distinct"
	OpRecurring          AnalyticOp = "recurring"
	OpCategoryPercentage AnalyticOp = "category_percentage"
	OpMonthlySummary     AnalyticOp = "monthly_summary"
	OpYearlySummary      AnalyticOp = "yearly_summary"
)

type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Validate checks if the interval is valid
func (iv Interval) Validate() error {
	switch iv {
	case IntervalMonthly, IntervalYearly:
		return nil
	default:
		return goerr.Wrap(ErrInvalidParameter, "invalid interval", goerr.V("interval", iv))
	}
}

type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Validate checks if the direction is valid
func (d Direction) Validate() error {
	switch d {
	case DirectionAsc, DirectionDesc:
		return nil
	default:
		return goerr.Wrap(ErrInvalidParameter, "invalid direction", goerr.V("direction", d))
	}
}

// DateRange is an inclusive calendar date range
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate checks both bounds and their ordering
func (r DateRange) Validate() error {
	if _, err := ParseDate(r.From); err != nil {
		return err
	}
	if _, err := ParseDate(r.To); err != nil {
		return err
	}
	if r.From > r.To {
		return goerr.Wrap(ErrInvalidRange, "from is after to", goerr.V("from", r.From), goerr.V("to", r.To))
	}
	return nil
}

// AnalyticFilter narrows the record set an operation runs over. Every value
// is passed to the store as a bound parameter.
type AnalyticFilter struct {
	Category *Category  `json:"category,omitempty"`
	Date     *string    `json:"date,omitempty"`
	Range    *DateRange `json:"range,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
}

// AnalyticQuery is the structured description of one analytic request,
// independent of any query language. Built per request, never persisted.
type AnalyticQuery struct {
	Op     AnalyticOp     `json:"op"`
	Filter AnalyticFilter `json:"filter"`

	// Operation specific parameters
	Threshold   float64   `json:"threshold,omitempty"`
	Interval    Interval  `json:"interval,omitempty"`
	MonthsAhead int       `json:"months_ahead,omitempty"`
	Limit       int       `json:"limit,omitempty"`
	OrderBy     string    `json:"order_by,omitempty"`
	Direction   Direction `json:"direction,omitempty"`
	MinCount    int       `json:"min_count,omitempty"`
	Year        int       `json:"year,omitempty"`
	Month       int       `json:"month,omitempty"`
	Compare     *ComparePeriods `json:"compare,omitempty"`
}

// ComparePeriods holds the two inclusive ranges of a compare_periods request
type ComparePeriods struct {
	Period1 DateRange `json:"period_1"`
	Period2 DateRange `json:"period_2"`
}
