// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCoverURL(t *testing.T) {
	tests := []struct {
		name   string
		ref    CoverRef
		want   string
		wantOK bool
	}{
		{
			name:   "isbn only",
			ref:    CoverRef{ISBN: "9780618640157", Size: CoverLarge},
			want:   "https://covers.openlibrary.org/b/isbn/9780618640157-L.jpg",
			wantOK: true,
		},
		{
			name:   "cover id only",
			ref:    CoverRef{CoverID: intPtr(14625765), Size: CoverSmall},
			want:   "https://covers.openlibrary.org/b/id/14625765-S.jpg",
			wantOK: true,
		},
		{
			name:   "olid only",
			ref:    CoverRef{OLID: "OL7353617M"},
			want:   "https://covers.openlibrary.org/b/olid/OL7353617M-M.jpg",
			wantOK: true,
		},
		{
			name:   "isbn beats cover id and olid",
			ref:    CoverRef{ISBN: "0618640150", CoverID: intPtr(1), OLID: "OL1M"},
			want:   "https://covers.openlibrary.org/b/isbn/0618640150-M.jpg",
			wantOK: true,
		},
		{
			name:   "cover id beats olid",
			ref:    CoverRef{CoverID: intPtr(7), OLID: "OL1M"},
			want:   "https://covers.openlibrary.org/b/id/7-M.jpg",
			wantOK: true,
		},
		{
			name:   "zero cover id is still an identifier",
			ref:    CoverRef{CoverID: intPtr(0)},
			want:   "https://covers.openlibrary.org/b/id/0-M.jpg",
			wantOK: true,
		},
		{
			name:   "unknown size falls back to medium",
			ref:    CoverRef{ISBN: "0618640150", Size: "XL"},
			want:   "https://covers.openlibrary.org/b/isbn/0618640150-M.jpg",
			wantOK: true,
		},
		{
			name:   "nothing",
			ref:    CoverRef{Size: CoverLarge},
			want:   "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoverURL(tt.ref)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCoverURL_Deterministic(t *testing.T) {
	ref := CoverRef{ISBN: "9780618640157", CoverID: intPtr(42), OLID: "OL1M", Size: CoverSmall}
	first, _ := CoverURL(ref)
	for i := 0; i < 100; i++ {
		got, ok := CoverURL(ref)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestParseCoverSize(t *testing.T) {
	tests := map[string]CoverSize{
		"S":      CoverSmall,
		"small":  CoverSmall,
		"m":      CoverMedium,
		"Medium": CoverMedium,
		"L":      CoverLarge,
		" large": CoverLarge,
		"":       CoverMedium,
		"huge":   CoverMedium,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCoverSize(in), "input %q", in)
	}
}
