// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestTextLogFiltersByLevel(t *testing.T) {
	chk.PrintTitle("sim: TextLog drops lines above the configured level")
	log := NewTextLog()
	log.SetLevel(Medium)

	log.Append(Low, "low line")
	log.Append(Medium, "medium line")
	log.Append(High, "high line")

	text := log.Text()
	if len(text) != 2 {
		t.Fatalf("expected 2 retained lines, got %d: %v", len(text), text)
	}
	if text[0] != "low line" || text[1] != "medium line" {
		t.Fatalf("unexpected retained lines: %v", text)
	}
}

func TestTextLogClear(t *testing.T) {
	chk.PrintTitle("sim: TextLog.Clear empties the accumulated lines")
	log := NewTextLog()
	log.Append(Low, "line one")
	log.Clear()
	if len(log.Text()) != 0 {
		t.Fatalf("expected an empty log after Clear, got %v", log.Text())
	}
}
