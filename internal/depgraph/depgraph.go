// Package depgraph computes the topological evaluation order of a release's
// components from their dependsOn declarations.
package depgraph

import (
	"github.com/relstack/relstack/domain/model"
)

// Build returns the release's components ordered so that every dependency
// precedes every one of its dependents. Kahn's algorithm with a deterministic
// tie-break: among components with no remaining unresolved dependency, the
// one declared earliest in the configuration comes first. This keeps renders
// stable and diffable across runs with the same input.
//
// Failure modes: UnknownDependencyError when a dependsOn entry names a
// component absent from the release, CyclicDependencyError when the
// declarations form a cycle. Both are fatal; no partial order is returned.
func Build(rel *model.Release) ([]*model.Component, error) {
	n := len(rel.Components)
	index := make(map[string]int, n)
	for i := range rel.Components {
		index[rel.Components[i].Name] = i
	}

	// indegree[i] = unresolved dependencies of component i,
	// dependents[j] = declaration indexes depending on component j.
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i := range rel.Components {
		c := &rel.Components[i]
		for _, dep := range c.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, model.UnknownDependencyError{From: c.Name, To: dep}
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	order := make([]*model.Component, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, model.CyclicDependencyError{Cycle: extractCycle(rel, index, indegree, done)}
		}
		done[next] = true
		order = append(order, &rel.Components[next])
		for _, i := range dependents[next] {
			indegree[i]--
		}
	}
	return order, nil
}

// extractCycle walks dependsOn edges among the unresolved components until a
// node repeats, then rotates the resulting cycle so its earliest-declared
// member comes first. Every unresolved node still has an unresolved
// dependency, so the walk always closes.
func extractCycle(rel *model.Release, index map[string]int, indegree []int, done []bool) []string {
	start := -1
	for i := range rel.Components {
		if !done[i] && indegree[i] > 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var path []int
	pos := map[int]int{}
	cur := start
	for {
		if p, seen := pos[cur]; seen {
			path = path[p:]
			break
		}
		pos[cur] = len(path)
		path = append(path, cur)
		for _, dep := range rel.Components[cur].DependsOn {
			if j := index[dep]; !done[j] && indegree[j] > 0 {
				cur = j
				break
			}
		}
	}

	// Rotate to the earliest-declared member for a stable representation.
	first := 0
	for i := 1; i < len(path); i++ {
		if path[i] < path[first] {
			first = i
		}
	}
	cycle := make([]string, 0, len(path))
	for i := 0; i < len(path); i++ {
		cycle = append(cycle, rel.Components[path[(first+i)%len(path)]].Name)
	}
	return cycle
}
