package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

// waitImage runs the dependency wait loops. Same busybox pin for every
// gate so a release pulls one extra image at most.
const waitImage = "busybox:1.36"

// waitIntervalSeconds is the fixed delay between reachability probes.
const waitIntervalSeconds = 2

// waitForContainer emits the startup gate for one dependency edge: a
// fixed-interval TCP reachability probe against the dependency's service
// address. Each attempt logs its waiting state so a stalled dependent is
// visible to operators. There is no gate-level timeout; the surrounding
// runtime's own pod timeout is the backstop.
func waitForContainer(dependency, address string, port int32) corev1.Container {
	probe := fmt.Sprintf(
		`until nc -w 2 -z %s %d; do echo "waiting for %s (%s:%d)"; sleep %d; done`,
		address, port, dependency, address, port, waitIntervalSeconds,
	)
	return corev1.Container{
		Name:    "wait-for-" + dependency,
		Image:   waitImage,
		Command: []string{"sh", "-c", probe},
	}
}
