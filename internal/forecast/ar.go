// Package forecast produces short-horizon predictions of CPU load from
// recent history, decoupled from the sampling tick so a slow fit never
// stalls telemetry collection.
package forecast

import (
	"errors"
	"math"
)

// Fitting contract constants.
const (
	// MinWindow is the minimum history length before a fit is attempted.
	MinWindow = 20
	// FitWindow is how many recent samples feed one fit.
	FitWindow = 30
	// Horizon is the number of future steps forecast per fit.
	Horizon = 8

	// arOrder is the autoregressive lag depth.
	arOrder = 4
	// ridge keeps the normal equations solvable for near-constant series.
	ridge = 1e-6
)

// ErrInsufficientData means the history window is still too short. Not an
// error condition, just "not yet".
var ErrInsufficientData = errors.New("forecast: insufficient data")

// ErrFitFailure means the model could not converge on this window. The
// previous forecast stays in service.
var ErrFitFailure = errors.New("forecast: fit failed")

// Fit trains an AR model over window by least squares and forecasts
// horizon future values by iterating the fitted recurrence.
func Fit(window []float64, horizon int) ([]float64, error) {
	if len(window) < MinWindow {
		return nil, ErrInsufficientData
	}

	// Accumulate normal equations for rows [1, y[t-1], ..., y[t-p]] -> y[t].
	p := arOrder
	dim := p + 1
	a := make([][]float64, dim)
	for i := range a {
		a[i] = make([]float64, dim)
	}
	b := make([]float64, dim)
	row := make([]float64, dim)

	for t := p; t < len(window); t++ {
		row[0] = 1
		for j := 1; j <= p; j++ {
			row[j] = window[t-j]
		}
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				a[i][j] += row[i] * row[j]
			}
			b[i] += row[i] * window[t]
		}
	}
	for i := 1; i < dim; i++ {
		a[i][i] += ridge
	}

	coef, err := solve(a, b)
	if err != nil {
		return nil, err
	}

	preds := make([]float64, 0, horizon)
	tail := append([]float64(nil), window...)
	for k := 0; k < horizon; k++ {
		v := coef[0]
		for j := 1; j <= p; j++ {
			v += coef[j] * tail[len(tail)-j]
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrFitFailure
		}
		preds = append(preds, v)
		tail = append(tail, v)
	}
	return preds, nil
}

// solve runs Gaussian elimination with partial pivoting on a*x = b.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, ErrFitFailure
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, ErrFitFailure
		}
	}
	return x, nil
}
