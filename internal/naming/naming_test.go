package naming

import (
	"errors"
	"strings"
	"testing"

	"github.com/relstack/relstack/domain/model"
)

func TestResolveRoleSuffixes(t *testing.T) {
	cases := []struct {
		name string
		role Role
		want string
	}{
		{name: "service", role: RoleService, want: "r1-db"},
		{name: "secret", role: RoleSecret, want: "r1-db-secret"},
		{name: "storage claim", role: RoleStorageClaim, want: "r1-db-data"},
		{name: "account", role: RoleAccount, want: "r1-db-account"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve("r1", "db", tc.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveInjectiveAcrossRoles(t *testing.T) {
	roles := []Role{RoleService, RoleSecret, RoleStorageClaim, RoleAccount}
	seen := map[string]Role{}
	for _, role := range roles {
		got, err := Resolve("rel", "comp", role)
		if err != nil {
			t.Fatalf("resolve %s: %v", role, err)
		}
		if prev, dup := seen[got]; dup {
			t.Fatalf("roles %s and %s both resolve to %q", prev, role, got)
		}
		seen[got] = role
	}
}

func TestResolveDeterministic(t *testing.T) {
	a, err := Resolve("r1", "api", RoleSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Resolve("r1", "api", RoleSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("resolve not deterministic: %q vs %q", a, b)
	}
}

func TestResolveTruncation(t *testing.T) {
	release := strings.Repeat("r", 40)
	component := strings.Repeat("c", 40)
	for _, role := range []Role{RoleService, RoleSecret, RoleStorageClaim, RoleAccount} {
		got, err := Resolve(release, component, role)
		if err != nil {
			t.Fatalf("resolve %s: %v", role, err)
		}
		if len(got) > maxNameLength {
			t.Fatalf("identifier %q exceeds %d chars", got, maxNameLength)
		}
		if suffix := roleSuffix[role]; suffix != "" && !strings.HasSuffix(got, suffix) {
			t.Fatalf("identifier %q lost role suffix %q", got, suffix)
		}
		if strings.Contains(got, "--") && !strings.Contains(release+"-"+component, "--") {
			t.Fatalf("truncation introduced double hyphen: %q", got)
		}
	}
}

func TestResolveInvalidNames(t *testing.T) {
	cases := []struct {
		name      string
		release   string
		component string
	}{
		{name: "empty component", release: "r1", component: ""},
		{name: "uppercase component", release: "r1", component: "Db"},
		{name: "underscore component", release: "r1", component: "my_db"},
		{name: "empty release", release: "", component: "db"},
		{name: "leading hyphen", release: "r1", component: "-db"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.release, tc.component, RoleService)
			var invalid model.InvalidIdentifierError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidIdentifierError, got %v", err)
			}
		})
	}
}

func TestReleaseHashStability(t *testing.T) {
	if ReleaseHash("r1") != ReleaseHash("r1") {
		t.Fatalf("release hash not stable")
	}
	if len(ReleaseHash("r1")) != 6 {
		t.Fatalf("expected release hash length 6, got %d", len(ReleaseHash("r1")))
	}
	if ReleaseHash("r1") == ReleaseHash("r2") {
		t.Fatalf("distinct releases should hash differently")
	}
}
