// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

// Location names the coordinate used by every transfer function (§3): a
// sub-layer index and a depth within that sub-layer, measured from its top.
// A Location whose SubLayerIndex equals the number of SubLayers designates
// the rock outcrop (the half-space, below every discretised sub-layer).
type Location struct {
	SubLayerIndex int
	DepthInLayer  float64
}

// IsRockOutcrop reports whether loc designates the bedrock outcrop rather
// than a depth inside the discretised soil column.
func (loc Location) IsRockOutcrop(subLayerCount int) bool {
	return loc.SubLayerIndex >= subLayerCount
}
