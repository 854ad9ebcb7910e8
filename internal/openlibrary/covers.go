// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"strconv"
	"strings"
)

// CoversBaseURL is the host serving cover images.
const CoversBaseURL = "https://covers.openlibrary.org"

// CoverSize selects one of the three image sizes of the Covers API.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// ParseCoverSize maps "S"/"M"/"L" (or "small"/"medium"/"large", any case)
// to a CoverSize. Anything else yields CoverMedium.
func ParseCoverSize(s string) CoverSize {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "small":
		return CoverSmall
	case "l", "large":
		return CoverLarge
	default:
		return CoverMedium
	}
}

// CoverRef names a cover by any of the identifiers the Covers API accepts.
// Empty strings and a nil CoverID count as absent.
type CoverRef struct {
	CoverID *int
	ISBN    string
	OLID    string
	Size    CoverSize
}

// CoverURL returns the image URL for ref. When several identifiers are set
// the ISBN wins, then the cover id, then the OLID. ok is false only when
// none is set. An empty or unknown size means CoverMedium.
func CoverURL(ref CoverRef) (u string, ok bool) {
	size := ref.Size
	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverMedium
	}

	switch {
	case ref.ISBN != "":
		return coverURL("isbn", ref.ISBN, size), true
	case ref.CoverID != nil:
		return coverURL("id", strconv.Itoa(*ref.CoverID), size), true
	case ref.OLID != "":
		return coverURL("olid", ref.OLID, size), true
	default:
		return "", false
	}
}

func coverURL(kind, value string, size CoverSize) string {
	return CoversBaseURL + "/b/" + kind + "/" + value + "-" + string(size) + ".jpg"
}
