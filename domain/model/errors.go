package model

import (
	"fmt"
	"strings"
)

// InvalidIdentifierError means a release or component name cannot produce a
// valid derived identifier, or two derived identifiers collide.
type InvalidIdentifierError struct {
	Name   string
	Reason string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
}

// MissingCredentialError means an environment binding references a credential
// bundle field that does not exist on the target stateful component.
type MissingCredentialError struct {
	Component string // dependent declaring the binding
	Target    string // component owning the bundle
	Field     string
}

func (e MissingCredentialError) Error() string {
	return fmt.Sprintf("component %q references missing credential field %q of %q", e.Component, e.Field, e.Target)
}

// CyclicDependencyError means the dependsOn declarations form a cycle.
// Cycle lists the member components in edge order, rotated so the
// earliest-declared member comes first.
type CyclicDependencyError struct {
	Cycle []string
}

func (e CyclicDependencyError) Error() string {
	return "dependency cycle detected: " + strings.Join(e.Cycle, " -> ")
}

// UnknownDependencyError means a dependsOn entry names a component absent
// from the release.
type UnknownDependencyError struct {
	From string
	To   string
}

func (e UnknownDependencyError) Error() string {
	return fmt.Sprintf("component %q depends on unknown component %q", e.From, e.To)
}
