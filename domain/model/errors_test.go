package model

import (
	"strings"
	"testing"
)

func TestErrorMessagesCarryComponentNames(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "invalid identifier",
			err:  InvalidIdentifierError{Name: "My_Db", Reason: "must be lowercase"},
			want: []string{"My_Db", "must be lowercase"},
		},
		{
			name: "missing credential",
			err:  MissingCredentialError{Component: "api", Target: "db", Field: "sslcert"},
			want: []string{"api", "db", "sslcert"},
		},
		{
			name: "cyclic dependency",
			err:  CyclicDependencyError{Cycle: []string{"a", "b"}},
			want: []string{"a -> b"},
		},
		{
			name: "unknown dependency",
			err:  UnknownDependencyError{From: "frontend", To: "api"},
			want: []string{"frontend", "api"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.err.Error()
			for _, sub := range tc.want {
				if !strings.Contains(msg, sub) {
					t.Fatalf("expected %q in %q", sub, msg)
				}
			}
		})
	}
}

func TestReleaseComponentLookup(t *testing.T) {
	rel := &Release{
		Name: "r1",
		Components: []Component{
			{Name: "db", Kind: ComponentKindStateful},
			{Name: "api", Kind: ComponentKindStateless},
		},
	}
	if c := rel.Component("db"); c == nil || !c.Stateful() {
		t.Fatalf("expected stateful db component, got %+v", c)
	}
	if c := rel.Component("missing"); c != nil {
		t.Fatalf("expected nil for unknown component, got %+v", c)
	}
}
