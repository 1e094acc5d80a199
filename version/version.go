package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion indicates a version string without a leading numeric release.
var ErrInvalidVersion = errors.New("version: invalid version string")

// Version is a parsed major.minor.patch release. Pre-release and build
// metadata are retained for display but ignored by comparisons.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   string
}

// New builds a Version from its numeric components.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

var leadingRelease = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(.*)$`)

// Parse parses s. Strict semantic versions go through semver; anything else
// falls back to extracting the leading major[.minor[.patch]] digits.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}

	if sv, err := semver.NewVersion(s); err == nil {
		return Version{
			Major: sv.Major(),
			Minor: sv.Minor(),
			Patch: sv.Patch(),
			Pre:   sv.Prerelease(),
		}, nil
	}

	m := leadingRelease.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v Version
	var err error
	if v.Major, err = strconv.ParseUint(m[1], 10, 64); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if m[2] != "" {
		if v.Minor, err = strconv.ParseUint(m[2], 10, 64); err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}
	if m[3] != "" {
		if v.Patch, err = strconv.ParseUint(m[3], 10, 64); err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}
	v.Pre = strings.TrimLeft(m[4], "-.+")
	return v, nil
}

// Compare returns -1, 0 or +1 comparing the release triples of v and o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpUint(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpUint(v.Minor, o.Minor)
	default:
		return cmpUint(v.Patch, o.Patch)
	}
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v is o or later.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
