package recurrence

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"
)

// canonicalIntervalDays are the typical recurrence periods tried as
// candidate hypotheses, in days
var canonicalIntervalDays = []float64{
	7,      // weekly
	14,     // bi-weekly
	30.44,  // monthly
	91.31,  // quarterly
	182.62, // semi-annually
	365.25, // annually
}

// Calculator detects recurring patterns within a single description
// cluster. Stateless per invocation; safe for concurrent use.
type Calculator struct {
	config *Config
	logger logger.Logger
}

// NewCalculator creates a Calculator with the given configuration
func NewCalculator(config *Config) (*Calculator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "recurrence_config", config, err)
	}

	return &Calculator{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("recurrence"),
	}, nil
}

// AnalyzeCluster finds the recurring patterns within one cluster of
// transactions sharing a canonical description. Clusters smaller than the
// match threshold yield no patterns. One pattern is emitted per qualifying
// candidate interval, so a cluster can produce more than one.
func (c *Calculator) AnalyzeCluster(canonicalDescription string, transactions []*models.Transaction) []*models.RecurringPattern {
	if len(transactions) < c.config.MatchThreshold {
		return nil
	}

	sorted := make([]*models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	gaps := dayGaps(sorted)
	candidates := c.candidateIntervals(gaps)

	var patterns []*models.RecurringPattern
	for _, intervalDays := range candidates {
		matching := matchInterval(sorted, intervalDays)
		if len(matching) < c.config.MatchThreshold {
			continue
		}

		meanAmount := averageAmount(matching)
		if !amountsConsistent(matching, meanAmount) {
			continue
		}

		patterns = append(patterns, &models.RecurringPattern{
			CanonicalDescription: canonicalDescription,
			DescriptionVariants:  models.DistinctDescriptions(sorted),
			MeanInterval:         daysToDuration(intervalDays),
			MeanAmount:           meanAmount,
			Transactions:         matching,
			IntervalConsistency:  intervalConsistency(matching),
			AmountConsistency:    amountConsistency(matching),
		})
	}

	return patterns
}

// SortPatterns orders patterns descending by combined consistency score
func SortPatterns(patterns []*models.RecurringPattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Score() > patterns[j].Score()
	})
}

// candidateIntervals returns the canonical intervals whose mean relative
// deviation from the observed gaps stays below the ceiling, falling back to
// the single averaged observed gap when none qualifies.
func (c *Calculator) candidateIntervals(gaps []int) []float64 {
	var result []float64
	for _, canonical := range canonicalIntervalDays {
		deviationSum := 0.0
		for _, gap := range gaps {
			deviationSum += math.Abs((float64(gap) - canonical) / canonical)
		}
		if deviationSum/float64(len(gaps)) < c.config.DeviationCeiling {
			result = append(result, canonical)
		}
	}

	if len(result) == 0 {
		gapSum := 0
		for _, gap := range gaps {
			gapSum += gap
		}
		result = append(result, float64(gapSum)/float64(len(gaps)))
	}

	return result
}

// matchInterval greedily walks the date-sorted transactions: the first is
// always kept; each later one is accepted when its gap from the last
// accepted date is within tolerance of the target interval.
func matchInterval(sorted []*models.Transaction, targetDays float64) []*models.Transaction {
	tolerance := intervalTolerance(targetDays)

	result := []*models.Transaction{sorted[0]}
	lastMatch := sorted[0]

	for _, tx := range sorted[1:] {
		gap := float64(tx.DayNumber() - lastMatch.DayNumber())
		if math.Abs(gap-targetDays) <= tolerance {
			result = append(result, tx)
			lastMatch = tx
		}
	}

	return result
}

// intervalTolerance widens with interval length: 1 day for weekly, 2 for
// bi-weekly, and so on
func intervalTolerance(intervalDays float64) float64 {
	switch {
	case intervalDays <= 7:
		return 1
	case intervalDays <= 14:
		return 2
	case intervalDays <= 31:
		return 3
	case intervalDays <= 100:
		return 7
	case intervalDays <= 200:
		return 10
	default:
		return 15
	}
}

// averageAmount returns the signed mean of member amounts
func averageAmount(transactions []*models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(transactions))))
}

// amountsConsistent checks every member against an absolute-dollar band
// around the mean, sized by the magnitude of the mean
func amountsConsistent(transactions []*models.Transaction, meanAmount decimal.Decimal) bool {
	band := amountBand(meanAmount.Abs())
	for _, tx := range transactions {
		if tx.Amount.Sub(meanAmount).Abs().GreaterThan(band) {
			return false
		}
	}
	return true
}

// amountBand returns the allowed absolute deviation for a mean magnitude
func amountBand(magnitude decimal.Decimal) decimal.Decimal {
	switch {
	case magnitude.LessThan(decimal.NewFromInt(100)):
		return decimal.NewFromInt(10)
	case magnitude.LessThan(decimal.NewFromInt(500)):
		return decimal.NewFromInt(25)
	case magnitude.LessThan(decimal.NewFromInt(1000)):
		return decimal.NewFromInt(50)
	case magnitude.LessThan(decimal.NewFromInt(2500)):
		return decimal.NewFromInt(100)
	case magnitude.LessThan(decimal.NewFromInt(5000)):
		return decimal.NewFromInt(250)
	case magnitude.LessThan(decimal.NewFromInt(10000)):
		return decimal.NewFromInt(350)
	default:
		return decimal.NewFromInt(500)
	}
}

// intervalConsistency maps the worst gap deviation from the mean gap into
// [0,1]. Fewer than two members, or all-identical dates, score 0.
func intervalConsistency(transactions []*models.Transaction) float64 {
	if len(transactions) <= 1 {
		return 0
	}

	gaps := dayGaps(transactions)
	gapSum := 0
	for _, gap := range gaps {
		gapSum += gap
	}
	mean := float64(gapSum) / float64(len(gaps))
	if mean == 0 {
		return 0
	}

	maxDeviation := 0.0
	for _, gap := range gaps {
		if d := math.Abs(float64(gap) - mean); d > maxDeviation {
			maxDeviation = d
		}
	}

	return 1 - clamp01(maxDeviation/mean)
}

// amountConsistency maps the worst amount deviation from the mean into
// [0,1]. A zero-sum group scores 0 outright; that filters test deposits and
// purchase+refund pairs that would otherwise look perfectly repeating.
func amountConsistency(transactions []*models.Transaction) float64 {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	if sum.IsZero() {
		return 0
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(transactions))))
	maxDeviation := decimal.Zero
	for _, tx := range transactions {
		if d := tx.Amount.Sub(mean).Abs(); d.GreaterThan(maxDeviation) {
			maxDeviation = d
		}
	}

	ratio := maxDeviation.Div(mean.Abs()).InexactFloat64()
	return 1 - clamp01(ratio)
}

// dayGaps returns the consecutive calendar-day gaps of date-sorted
// transactions
func dayGaps(sorted []*models.Transaction) []int {
	gaps := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].DayNumber()-sorted[i-1].DayNumber())
	}
	return gaps
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
