package kube

import (
	"github.com/relstack/relstack/domain/model"
	"github.com/relstack/relstack/internal/naming"
)

// Label keys stamped onto every rendered object.
const (
	LabelManagedBy   = "app.kubernetes.io/managed-by"
	LabelName        = "app.kubernetes.io/name"
	LabelInstance    = "app.kubernetes.io/instance"
	LabelComponent   = "app.kubernetes.io/component"
	LabelRelease     = "relstack.dev/release"
	LabelReleaseHash = "relstack.dev/release-hash"
)

// ManagedBy identifies objects produced by this renderer.
const ManagedBy = "relstack"

// releaseLabels returns the labels shared by every object of a release.
func releaseLabels(rel *model.Release) map[string]string {
	return map[string]string{
		LabelManagedBy:   ManagedBy,
		LabelRelease:     rel.Name,
		LabelReleaseHash: naming.ReleaseHash(rel.Name),
	}
}

// componentLabels returns the labels for one component's objects. The "app"
// label doubles as the workload selector and carries the release-scoped
// service name so parallel releases never select each other's pods.
func componentLabels(rel *model.Release, c *model.Component, serviceName string) map[string]string {
	labels := releaseLabels(rel)
	labels["app"] = serviceName
	labels[LabelName] = c.Name
	labels[LabelInstance] = rel.Name
	labels[LabelComponent] = string(c.Kind)
	return labels
}
