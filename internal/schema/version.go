package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseVersion packs a dotted version string into its numeric form:
// "10.0.1.0" becomes 0x0A000100. Two-part legacy strings spread the digits
// of the minor part over the lower bytes, so "4.22" becomes 0x04020200.
// A "0x" prefixed number is taken as already packed.
func ParseVersion(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty version")
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid version %q: %w", s, err)
		}

		return uint32(n), nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return 0, fmt.Errorf("invalid version %q: more than four parts", s)
	}

	if len(parts) == 2 {
		return parseLegacyVersion(s, parts[0], parts[1])
	}

	var version uint32

	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid version %q: part %d: %w", s, i+1, err)
		}

		version |= uint32(n) << ((3 - i) * 8)
	}

	return version, nil
}

func parseLegacyVersion(s, major, minor string) (uint32, error) {
	hi, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", s, err)
	}

	version := uint32(hi) << 24

	for i, shift := range []int{16, 8} {
		if len(minor) <= i {
			return version, nil
		}

		d, err := strconv.ParseUint(minor[i:i+1], 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid version %q: %w", s, err)
		}

		version |= uint32(d) << shift
	}

	if len(minor) > 2 {
		rest, err := strconv.ParseUint(minor[2:], 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid version %q: %w", s, err)
		}

		version |= uint32(rest)
	}

	return version, nil
}

// FormatVersion renders a packed version as "a.b.c.d".
func FormatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24, (v>>16)&0xFF, (v>>8)&0xFF, v&0xFF)
}

// ParseUserVersion parses a user version bound. An empty string means no bound.
func ParseUserVersion(s string) (*uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid user version %q: %w", s, err)
	}

	v := uint32(n)

	return &v, nil
}
