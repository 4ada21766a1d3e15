// Package reconcile holds the pure rate/quantity arithmetic shared by
// handlers, reports and bill rendering. Everything here is side-effect free
// and mirrors what the dairy counter staff work out on paper, so results are
// rounded the way the business expects: currency to 2 decimals, loss
// percentages to 1.
package reconcile

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

// LitersToKgFactor converts collected liters to kilograms (milk density).
// Existing records were priced with exactly 1.03; do not change it.
const LitersToKgFactor = 1.03

// MilkLossAlertPercent is the loss threshold above which the difference
// between collected and dispatched milk needs investigating.
const MilkLossAlertPercent = 1.0

// ErrInvalidInput is returned when a quantity or rate is negative or not a
// finite number.
var ErrInvalidInput = errors.New("invalid input")

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Gross computes quantity * rate rounded to 2 decimal places.
func Gross(quantity, rate float64) (float64, error) {
	if !isFiniteNonNegative(quantity) {
		return 0, fmt.Errorf("%w: quantity %v", ErrInvalidInput, quantity)
	}
	if !isFiniteNonNegative(rate) {
		return 0, fmt.Errorf("%w: rate %v", ErrInvalidInput, rate)
	}
	q := decimal.NewFromFloat(quantity)
	r := decimal.NewFromFloat(rate)
	return round2(q.Mul(r)), nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// DeductionTotal sums the deduction amounts that are strictly positive.
// Zero and negative rows are placeholder entries and ignored.
func DeductionTotal(deductions []models.Deduction) float64 {
	total := decimal.Zero
	for _, d := range deductions {
		if d.Amount > 0 {
			total = total.Add(decimal.NewFromFloat(d.Amount))
		}
	}
	return round2(total)
}

// Net is gross minus the deduction total. It may be negative; display code
// must cope with a negative net receivable.
func Net(gross, deductionTotal float64) float64 {
	return round2(decimal.NewFromFloat(gross).Sub(decimal.NewFromFloat(deductionTotal)))
}

// Weighted is one (value, weight) sample for WeightedAverage.
type Weighted struct {
	Value  float64
	Weight float64
}

// WeightedAverage returns sum(value*weight)/sum(weight), or 0 when the total
// weight is not positive. The weighted sum is rounded to 2 decimals before
// the division and the result is rounded to 2 decimals again.
func WeightedAverage(items []Weighted) float64 {
	weightedSum := decimal.Zero
	totalWeight := decimal.Zero
	for _, it := range items {
		weightedSum = weightedSum.Add(decimal.NewFromFloat(it.Value).Mul(decimal.NewFromFloat(it.Weight)))
		totalWeight = totalWeight.Add(decimal.NewFromFloat(it.Weight))
	}
	if totalWeight.Sign() <= 0 {
		return 0
	}
	return round2(weightedSum.Round(2).Div(totalWeight))
}

// LitersToKg converts collected liters to kilograms, rounded to 1 decimal.
func LitersToKg(liters float64) float64 {
	f, _ := decimal.NewFromFloat(liters).Mul(decimal.NewFromFloat(LitersToKgFactor)).Round(1).Float64()
	return f
}

// MilkLossPercent is the percentage of collected milk (kg) that never reached
// a dairy plant, rounded to 1 decimal. Returns 0 when nothing was collected.
func MilkLossPercent(collectedKg, dispatchedKg float64) float64 {
	if collectedKg <= 0 {
		return 0
	}
	diff := decimal.NewFromFloat(collectedKg).Sub(decimal.NewFromFloat(dispatchedKg))
	f, _ := diff.Div(decimal.NewFromFloat(collectedKg)).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return f
}

// Variance is the frozen discrepancy between the business's dispatch record
// and the dairy plant's slip.
type Variance struct {
	AmountDifference float64 `json:"amount_difference"`
	FatDifference    float64 `json:"fat_difference"`
}

// SlipVariance computes internal minus slip for amount and fat. A positive
// amount difference means our records claim more than the slip grants, i.e.
// the discrepancy is in the business's favor to raise with the plant.
func SlipVariance(internalFat, internalAmount, slipFat, slipAmount float64) Variance {
	return Variance{
		AmountDifference: round2(decimal.NewFromFloat(internalAmount).Sub(decimal.NewFromFloat(slipAmount))),
		FatDifference:    round2(decimal.NewFromFloat(internalFat).Sub(decimal.NewFromFloat(slipFat))),
	}
}

// SNFFromFat derives SNF when the tester only records fat:
// SNF = 8.5 + fat/4, rounded to 2 decimals.
func SNFFromFat(fat float64) float64 {
	return round2(decimal.NewFromFloat(8.5).Add(decimal.NewFromFloat(fat).Div(decimal.NewFromInt(4))))
}

// RateFor resolves the per-liter rate for a fat/SNF reading against a rate
// chart. The nearest entry by |Δfat|+|Δsnf| wins; with no entries the base
// formula fat*6 + snf*2 applies.
func RateFor(entries []models.RateEntry, fat, snf float64) float64 {
	if len(entries) == 0 {
		return baseFormulaRate(fat, snf)
	}
	best := entries[0].Rate
	minDiff := math.Abs(entries[0].Fat-fat) + math.Abs(entries[0].SNF-snf)
	for _, e := range entries[1:] {
		diff := math.Abs(e.Fat-fat) + math.Abs(e.SNF-snf)
		if diff < minDiff {
			minDiff = diff
			best = e.Rate
		}
	}
	return best
}

func baseFormulaRate(fat, snf float64) float64 {
	f := decimal.NewFromFloat(fat).Mul(decimal.NewFromInt(6))
	s := decimal.NewFromFloat(snf).Mul(decimal.NewFromInt(2))
	return round2(f.Add(s))
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}
