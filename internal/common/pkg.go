package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name a package is imported under by default: the last
// path element, skipping a trailing major version ("v2", "v3", ...).
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	return strings.NewReplacer("-", "", ".", "").Replace(base)
}

// ImportAlias returns alias when set, otherwise the alias derived from pkgPath.
func ImportAlias(alias, pkgPath string) string {
	if alias != "" {
		return alias
	}

	return PkgAlias(pkgPath)
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}

	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
