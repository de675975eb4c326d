package kube

import (
	"bytes"
	"fmt"

	yaml "gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
)

// Manifest serializes the resource set as a multi-document YAML string
// (each doc preceded by ---). Objects are converted to unstructured maps and
// pruned of empty maps / null values so that re-rendering the same release
// yields byte-identical output.
func (s *ResourceSet) Manifest() (string, error) {
	var buf bytes.Buffer
	for _, obj := range s.Objects {
		if obj == nil {
			continue
		}
		m, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
		if err != nil {
			return "", fmt.Errorf("to unstructured: %w", err)
		}
		pruneMap(m)
		if meta, ok := m["metadata"].(map[string]any); ok { // drop empty creationTimestamp
			delete(meta, "creationTimestamp")
			if len(meta) == 0 {
				delete(m, "metadata")
			}
		}
		if st, ok := m["status"].(map[string]any); ok && len(st) == 0 { // drop empty status
			delete(m, "status")
		}
		var ybuf bytes.Buffer
		enc := yaml.NewEncoder(&ybuf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return "", err
		}
		_ = enc.Close()
		b := ybuf.Bytes()
		buf.WriteString("---\n")
		buf.Write(b)
		if len(b) == 0 || b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

// pruneMap recursively prunes nil values and empty maps from a structure
// (in-place), preserving empty slices.
func pruneMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			cleaned := pruneMap(val)
			switch cv := cleaned.(type) {
			case nil:
				delete(x, k)
			case map[string]any:
				if len(cv) == 0 {
					delete(x, k)
				} else {
					x[k] = cv
				}
			default:
				x[k] = cv
			}
		}
		return x
	case []any:
		for i, it := range x {
			x[i] = pruneMap(it)
		}
		return x
	default:
		return x
	}
}

// bytesToQuantity converts bytes to a resource.Quantity, rounding up to the
// Mi boundary for readable manifests.
func bytesToQuantity(b int64) resource.Quantity {
	if b <= 0 {
		return resource.Quantity{}
	}
	const mi = int64(1) << 20
	b = (b + mi - 1) &^ (mi - 1)
	return resource.MustParse(fmt.Sprintf("%dMi", b>>20))
}
