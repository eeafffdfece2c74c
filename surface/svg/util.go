// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package svg

import (
	"math"
	"strconv"

	"github.com/tdewolff/minify/v2"
)

// Precision is the number of decimals written for coordinates and sizes.
const Precision = 4

var precisionScale = math.Pow10(Precision)

// dec formats a coordinate with Precision decimals and minifies it.
type dec float64

func (f dec) String() string {
	v := math.Round(float64(f)*precisionScale) / precisionScale
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	b := strconv.AppendFloat(nil, v, 'f', Precision, 64)
	return string(minify.Decimal(b, 0))
}
