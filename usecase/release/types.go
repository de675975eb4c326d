// Package release implements the operations the CLI drives: rendering a
// release configuration into a resource set, validating a configuration,
// and structurally diffing two renders.
package release

// UseCase groups the release operations.
type UseCase struct{}

// RenderInput selects the configuration to render.
type RenderInput struct {
	ConfigPath string
}

// RenderOutput carries the rendered resource set and its serialized form.
type RenderOutput struct {
	Release  string
	Order    []string
	Manifest string
}

// ValidateInput selects the configuration to validate.
type ValidateInput struct {
	ConfigPath string
}

// ValidateOutput summarizes a successful validation.
type ValidateOutput struct {
	Release    string
	Components int
}

// DiffInput selects the two configurations to compare.
type DiffInput struct {
	OldConfigPath string
	NewConfigPath string
	UseColor      bool
}

// DiffOutput carries the structural comparison of the two renders.
type DiffOutput struct {
	Result *DiffResult
}
