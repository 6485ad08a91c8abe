// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

// Series is one column of a Table. Arithmetic is element-wise and follows
// IEEE-754, so dividing by zero produces +Inf, -Inf or NaN.
type Series []float64

func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

func (s Series) Add(o Series) Series {
	return s.zip(o, func(a, b float64) float64 { return a + b })
}

func (s Series) Sub(o Series) Series {
	return s.zip(o, func(a, b float64) float64 { return a - b })
}

func (s Series) Mul(o Series) Series {
	return s.zip(o, func(a, b float64) float64 { return a * b })
}

func (s Series) Div(o Series) Series {
	return s.zip(o, func(a, b float64) float64 { return a / b })
}

// Scale multiplies every element by k
func (s Series) Scale(k float64) Series {
	out := make(Series, len(s))
	for idx, val := range s {
		out[idx] = val * k
	}
	return out
}

// Rsub returns k - s
func (s Series) Rsub(k float64) Series {
	out := make(Series, len(s))
	for idx, val := range s {
		out[idx] = k - val
	}
	return out
}

// Avg returns the element-wise mean of s and o
func (s Series) Avg(o Series) Series {
	return s.Add(o).Scale(0.5)
}

func (s Series) zip(o Series, fn func(a, b float64) float64) Series {
	n := len(s)
	if len(o) < n {
		n = len(o)
	}
	out := make(Series, n)
	for idx := 0; idx < n; idx++ {
		out[idx] = fn(s[idx], o[idx])
	}
	return out
}
