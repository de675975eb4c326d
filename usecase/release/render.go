package release

import (
	"context"
	"fmt"

	"github.com/relstack/relstack/adapters/kube"
	"github.com/relstack/relstack/config/releasecfg"
	"github.com/relstack/relstack/domain/model"
	"github.com/relstack/relstack/internal/depgraph"
)

// load reads, validates and converts a release configuration file.
func load(path string) (*model.Release, error) {
	cfg, err := releasecfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	rel, err := cfg.ToModel()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return rel, nil
}

func render(ctx context.Context, path string) (*kube.ResourceSet, error) {
	rel, err := load(path)
	if err != nil {
		return nil, err
	}
	return kube.NewRenderer(rel).Render(ctx)
}

// Render renders one release configuration into its serialized resource set.
func (u *UseCase) Render(ctx context.Context, in RenderInput) (*RenderOutput, error) {
	set, err := render(ctx, in.ConfigPath)
	if err != nil {
		return nil, err
	}
	manifest, err := set.Manifest()
	if err != nil {
		return nil, err
	}
	return &RenderOutput{Release: set.Release, Order: set.Order, Manifest: manifest}, nil
}

// Validate checks a release configuration without rendering output. It runs
// the full semantic validation plus the dependency ordering, so dangling
// references and cycles surface here as well.
func (u *UseCase) Validate(ctx context.Context, in ValidateInput) (*ValidateOutput, error) {
	rel, err := load(in.ConfigPath)
	if err != nil {
		return nil, err
	}
	if _, err := depgraph.Build(rel); err != nil {
		return nil, err
	}
	return &ValidateOutput{Release: rel.Name, Components: len(rel.Components)}, nil
}

// Diff renders both configurations and compares the resulting resource sets.
func (u *UseCase) Diff(ctx context.Context, in DiffInput) (*DiffOutput, error) {
	oldSet, err := render(ctx, in.OldConfigPath)
	if err != nil {
		return nil, fmt.Errorf("old release: %w", err)
	}
	newSet, err := render(ctx, in.NewConfigPath)
	if err != nil {
		return nil, fmt.Errorf("new release: %w", err)
	}
	result, err := Diff(oldSet, newSet, in.UseColor)
	if err != nil {
		return nil, err
	}
	return &DiffOutput{Result: result}, nil
}
