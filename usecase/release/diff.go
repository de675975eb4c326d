package release

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/relstack/relstack/adapters/kube"
)

// DiffResult is the structural comparison of two rendered resource sets.
type DiffResult struct {
	// Added resources (in the new render, not in the old).
	Added []string
	// Removed resources (in the old render, not in the new).
	Removed []string
	// Modified resources, with a rendered per-resource diff.
	Modified []ModifiedResource
}

// ModifiedResource is one resource present in both renders with changes.
type ModifiedResource struct {
	Key  string // kind/name
	Diff string
}

// HasChanges reports whether the two renders differ at all.
func (r *DiffResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Modified) > 0
}

// Summary returns a one-line change count, or "no changes".
func (r *DiffResult) Summary() string {
	if !r.HasChanges() {
		return "no changes"
	}
	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}
	return strings.Join(parts, ", ")
}

// Diff compares two rendered resource sets by resource key (kind/name) and
// computes a YAML-aware per-resource diff for resources present in both.
func Diff(oldSet, newSet *kube.ResourceSet, useColor bool) (*DiffResult, error) {
	oldByKey, oldKeys, err := index(oldSet)
	if err != nil {
		return nil, err
	}
	newByKey, newKeys, err := index(newSet)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{}
	for _, key := range oldKeys {
		if _, ok := newByKey[key]; !ok {
			result.Removed = append(result.Removed, key)
		}
	}
	for _, key := range newKeys {
		oldDoc, ok := oldByKey[key]
		if !ok {
			result.Added = append(result.Added, key)
			continue
		}
		diff, err := compare(key, oldDoc, newByKey[key], useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", key, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, ModifiedResource{Key: key, Diff: diff})
		}
	}
	return result, nil
}

// index serializes each object of a set and maps it by kind/name, keeping
// the set's emission order for stable reporting.
func index(set *kube.ResourceSet) (map[string][]byte, []string, error) {
	byKey := make(map[string][]byte, len(set.Objects))
	keys := make([]string, 0, len(set.Objects))
	for _, obj := range set.Objects {
		key, err := resourceKey(obj)
		if err != nil {
			return nil, nil, err
		}
		doc, err := yaml.Marshal(obj)
		if err != nil {
			return nil, nil, fmt.Errorf("serializing %s: %w", key, err)
		}
		byKey[key] = doc
		keys = append(keys, key)
	}
	return byKey, keys, nil
}

func resourceKey(obj runtime.Object) (string, error) {
	gvk := obj.GetObjectKind().GroupVersionKind()
	accessor, ok := obj.(metav1.Object)
	if !ok {
		return "", fmt.Errorf("object %s has no metadata", gvk.Kind)
	}
	return gvk.Kind + "/" + accessor.GetName(), nil
}

// compare runs dyff over one resource pair and renders the human report.
// Returns an empty string when the pair is identical.
func compare(key string, oldDoc, newDoc []byte, useColor bool) (string, error) {
	oldInput, err := parseInput("old/"+key, oldDoc)
	if err != nil {
		return "", err
	}
	newInput, err := parseInput("new/"+key, newDoc)
	if err != nil {
		return "", err
	}
	report, err := dyff.CompareInputFiles(oldInput, newInput)
	if err != nil {
		return "", err
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	human := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := human.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func parseInput(location string, data []byte) (ytbx.InputFile, error) {
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: location, Documents: docs}, nil
}
