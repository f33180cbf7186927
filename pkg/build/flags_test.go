// SPDX-License-Identifier: MIT
package build

import (
	"strings"
	"testing"
)

func TestGetDevDefaults(t *testing.T) {
	info := Get()
	if info.Name != "wdcore" {
		t.Errorf("name = %q, want wdcore", info.Name)
	}
	if info.Version != "0.0.0-dev" {
		t.Errorf("version = %q, want 0.0.0-dev", info.Version)
	}
	if info.Commit != "dev" || info.Time != "dev" {
		t.Errorf("commit/time = %q/%q, want dev", info.Commit, info.Time)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Name: "wdcore", Time: "2026-01-01", Commit: "abc1234", Version: "1.2.3"}
	s := info.String()
	for _, part := range []string{"wdcore", "1.2.3", "abc1234", "2026-01-01"} {
		if !strings.Contains(s, part) {
			t.Errorf("%q missing from %q", part, s)
		}
	}
}
