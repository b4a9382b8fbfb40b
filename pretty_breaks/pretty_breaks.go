/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package prettybreaks computes round-number class breaks for legends.
package prettybreaks

import "math"

const epsilon = 1e-07

// Compute returns about classes equally spaced round values (1, 2 or 5
// times a power of ten) covering [minimum, maximum], following R's
// pretty().  The first break is the first round value above minimum; the
// last is clamped to maximum.  If classes is less than 1, the only break is
// maximum.
func Compute(minimum, maximum float64, classes int) []float64 {
	if classes < 1 {
		return []float64{maximum}
	}
	minimumCount := classes / 3
	const (
		shrink   = 0.75
		highBias = 1.5
	)
	adjustBias := 0.5 + 1.5*highBias
	divisions := classes
	h := highBias
	dx := maximum - minimum

	var cell float64
	small := false
	if nearZero(dx) && nearZero(maximum) {
		cell = 1
		small = true
	} else {
		cell = math.Max(math.Abs(minimum), math.Abs(maximum))
		// Truncated to an integer.
		var u int
		if adjustBias >= 1.5*h+0.5 {
			u = int(1 + 1/(1+h))
		} else {
			u = int(1 + 1.5/(1+adjustBias))
		}
		small = dx < cell*float64(u)*float64(max(1, divisions))*epsilon*3
	}

	if small {
		if cell > 10 {
			cell = 9 + cell/10
		}
		cell *= shrink
		if minimumCount > 1 {
			cell /= float64(minimumCount)
		}
	} else {
		cell = dx
		if divisions > 1 {
			cell /= float64(divisions)
		}
	}
	cell = math.Max(cell, 20*epsilon)

	base := math.Pow(10, math.Floor(math.Log10(cell)))
	unit := base
	if 2*base-cell < h*(cell-unit) {
		unit = 2 * base
		if 5*base-cell < adjustBias*(cell-unit) {
			unit = 5 * base
			if 10*base-cell < h*(cell-unit) {
				unit = 10 * base
			}
		}
	}

	start := int(math.Floor(minimum/unit + epsilon))
	end := int(math.Ceil(maximum/unit - epsilon))
	for float64(start)*unit > minimum+epsilon*unit {
		start--
	}
	for float64(end)*unit < maximum-epsilon*unit {
		end++
	}

	// Widen the range when it yields too few classes.
	if k := int(math.Floor(0.5 + float64(end-start))); k < minimumCount {
		k = minimumCount - k
		if start >= 0 {
			end += k / 2
			start = start - k/2 + k%2
		} else {
			start -= k / 2
			end = end + k/2 + k%2
		}
	}

	minimumBreak := float64(start) * unit
	count := end - start
	if count <= 0 {
		return nil
	}
	breaks := make([]float64, count)
	for i := range breaks {
		breaks[i] = minimumBreak + float64(i+1)*unit
	}
	if breaks[0] < minimum {
		breaks[0] = minimum
	}
	if last := len(breaks) - 1; breaks[last] > maximum {
		breaks[last] = maximum
	}

	// A range spanning zero must contain an exact zero rather than a
	// rounding residue such as -2.2e-16.
	if minimum < 0 && maximum > 0 {
		posOfMin := 0
		for i := 1; i < len(breaks); i++ {
			if math.Abs(breaks[i]) < math.Abs(breaks[i-1]) {
				posOfMin = i
			}
		}
		breaks[posOfMin] = 0
	}
	return breaks
}

func nearZero(f float64) bool {
	return math.Abs(f) <= 4*math.SmallestNonzeroFloat64
}
