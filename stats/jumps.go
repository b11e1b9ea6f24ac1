// Package stats computes the derived metrics served alongside jump and mark
// records. Everything here is pure and evaluated at read time.
package stats

import (
	"math"

	"athletics-backend/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func attempts(j *models.Jump) [3]float64 {
	return [3]float64{j.Jump1, j.Jump2, j.Jump3}
}

func mean(j *models.Jump) float64 {
	return (j.Jump1 + j.Jump2 + j.Jump3) / 3
}

// JumpAverage is the mean of the three attempts rounded to 2 decimals.
func JumpAverage(j *models.Jump) float64 {
	return round2(mean(j))
}

func JumpMax(j *models.Jump) float64 {
	return math.Max(j.Jump1, math.Max(j.Jump2, j.Jump3))
}

func JumpMin(j *models.Jump) float64 {
	return math.Min(j.Jump1, math.Min(j.Jump2, j.Jump3))
}

// JumpConsistency is 100 minus the coefficient of variation (population
// stddev over mean, in percent), clamped to [0, 100].
func JumpConsistency(j *models.Jump) float64 {
	m := mean(j)
	if m == 0 {
		return 0
	}

	var sq float64
	for _, v := range attempts(j) {
		sq += (v - m) * (v - m)
	}
	cv := math.Sqrt(sq/3) / m * 100

	return round2(math.Max(0, math.Min(100, 100-cv)))
}

func JumpViewOf(j *models.Jump) models.JumpView {
	return models.JumpView{
		Jump:        j,
		Average:     JumpAverage(j),
		MaxJump:     JumpMax(j),
		MinJump:     JumpMin(j),
		Consistency: JumpConsistency(j),
	}
}

type JumpSummary struct {
	Count    int          `json:"total_records"`
	Best     *float64     `json:"best_jump"`
	Mean     *float64     `json:"overall_average"`
	LastDate *models.Date `json:"last_record"`
}

// SummarizeJumps aggregates a set of jump records. Best is the highest
// single attempt, Mean the mean of per-record averages.
func SummarizeJumps(jumps []models.Jump) JumpSummary {
	summary := JumpSummary{Count: len(jumps)}
	if len(jumps) == 0 {
		return summary
	}

	best := JumpMax(&jumps[0])
	last := jumps[0].Date
	var total float64
	for i := range jumps {
		j := &jumps[i]
		best = math.Max(best, JumpMax(j))
		total += JumpAverage(j)
		if j.Date.After(last.Time) {
			last = j.Date
		}
	}
	avg := round2(total / float64(len(jumps)))

	summary.Best = &best
	summary.Mean = &avg
	summary.LastDate = &last
	return summary
}

// BestJump returns the record holding the highest single attempt, the
// earliest one on ties. Nil for an empty slice.
func BestJump(jumps []models.Jump) *models.Jump {
	var best *models.Jump
	for i := range jumps {
		j := &jumps[i]
		if best == nil {
			best = j
			continue
		}
		switch {
		case JumpMax(j) > JumpMax(best):
			best = j
		case JumpMax(j) == JumpMax(best) && j.Date.Before(best.Date.Time):
			best = j
		}
	}
	return best
}
