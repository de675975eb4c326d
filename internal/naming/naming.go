// Package naming provides centralized derivation of resource identifiers
// from a release name and a component name. Keeping the logic here allows
// future changes (suffixes/length bounds) without touching call sites.
package naming

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Role selects which derived identifier of a component is requested.
type Role string

const (
	RoleService      Role = "service"
	RoleSecret       Role = "secret"
	RoleStorageClaim Role = "storageClaim"
	RoleAccount      Role = "account"
)

// roleSuffix maps each role to its name suffix. The service role is the bare
// <release>-<component> string because it doubles as the component's network
// address; every other role appends a fixed suffix so that distinct
// (component, role) pairs never collide.
var roleSuffix = map[Role]string{
	RoleService:      "",
	RoleSecret:       "-secret",
	RoleStorageClaim: "-data",
	RoleAccount:      "-account",
}

// maxNameLength bounds every derived identifier (DNS-1123 label limit).
const maxNameLength = 63

// Resolve derives the identifier for (releaseName, componentName, role).
// Deterministic; the <release>-<component> base is truncated from the tail
// when the bound would be exceeded, the role suffix never is.
func Resolve(releaseName, componentName string, role Role) (string, error) {
	if err := ValidateReleaseName(releaseName); err != nil {
		return "", err
	}
	if err := ValidateComponentName(componentName); err != nil {
		return "", err
	}
	suffix, ok := roleSuffix[role]
	if !ok {
		return "", fmt.Errorf("unknown identifier role %q", role)
	}
	base := releaseName + "-" + componentName
	if len(base)+len(suffix) > maxNameLength {
		base = strings.TrimRight(base[:maxNameLength-len(suffix)], "-")
	}
	return base + suffix, nil
}

// defaultLength defines the hex length of short hashes (bits ~ length * 4).
const defaultLength = 6

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := fmt.Sprintf("%x", sum)
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// ReleaseHash returns the short hash used in labels to identify a release.
func ReleaseHash(releaseName string) string {
	return ShortHash(releaseName, defaultLength)
}
