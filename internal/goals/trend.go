package goals

import "math"

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendSteady    TrendDirection = "steady"
)

// slopes smaller than this (in kilos per session) count as steady
const steadySlopeEpsilon = 0.05

// Trend is the least-squares fit over an indexed series (x = 0..n-1).
// Confidence is the coefficient of determination R², in [0,1].
type Trend struct {
	Slope      float64        `json:"slope"`
	Intercept  float64        `json:"intercept"`
	Direction  TrendDirection `json:"direction"`
	Confidence float64        `json:"confidence"`
}

// EstimateTrend fits a line through the series. Returns nil when the series
// has fewer than two points, a single observation carries no direction.
func EstimateTrend(series []float64) *Trend {
	n := len(series)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denominator := fn*sumXX - sumX*sumX
	if denominator == 0 {
		return nil
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn

	meanY := sumY / fn
	var ssTotal, ssResidual float64
	for i, y := range series {
		predicted := intercept + slope*float64(i)
		ssResidual += (y - predicted) * (y - predicted)
		ssTotal += (y - meanY) * (y - meanY)
	}

	confidence := 1.0
	if ssTotal > 0 {
		confidence = 1 - ssResidual/ssTotal
	}
	if confidence < 0 {
		confidence = 0
	}

	direction := TrendSteady
	switch {
	case slope > steadySlopeEpsilon:
		direction = TrendImproving
	case slope < -steadySlopeEpsilon:
		direction = TrendDeclining
	}

	return &Trend{
		Slope:      slope,
		Intercept:  intercept,
		Direction:  direction,
		Confidence: math.Min(confidence, 1),
	}
}
