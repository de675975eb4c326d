package releasecfg

import (
	"fmt"

	"github.com/relstack/relstack/domain/model"
	"github.com/relstack/relstack/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
// Dependency existence and cycle detection are render-time concerns and are
// checked by the dependency graph builder, not here.
func (r *Root) Validate() error {
	if r.Version != "" && r.Version != "v1" {
		return fmt.Errorf("version: unsupported value %q", r.Version)
	}
	if err := naming.ValidateReleaseName(r.Release.Name); err != nil {
		return fmt.Errorf("release.name: %w", err)
	}
	seen := make(map[string]struct{}, len(r.Components))
	for i := range r.Components {
		c := &r.Components[i]
		if err := c.validate(); err != nil {
			return fmt.Errorf("components[%d]: %w", i, err)
		}
		if _, exists := seen[c.Name]; exists {
			return fmt.Errorf("components[%d].name: duplicate component name %q", i, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

func (c *Component) validate() error {
	if err := naming.ValidateComponentName(c.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	switch model.ComponentKind(c.Kind) {
	case model.ComponentKindStateful:
		if err := c.validateStateful(); err != nil {
			return err
		}
	case model.ComponentKindStateless:
		if err := c.validateStateless(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("kind: invalid kind %q, must be %q or %q", c.Kind, model.ComponentKindStateful, model.ComponentKindStateless)
	}
	if c.Image == "" {
		return fmt.Errorf("image: must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port: %d out of range 1-65535", c.Port)
	}
	if c.Replicas != nil && *c.Replicas < 0 {
		return fmt.Errorf("replicas: must not be negative")
	}
	for i := range c.Env {
		if err := c.Env[i].validate(); err != nil {
			return fmt.Errorf("env[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Component) validateStateful() error {
	if len(c.DependsOn) > 0 {
		return fmt.Errorf("dependsOn: stateful components cannot depend on other components")
	}
	if c.Replicas != nil && *c.Replicas != 1 {
		return fmt.Errorf("replicas: stateful components are single-instance")
	}
	if c.StorageSize == "" {
		return fmt.Errorf("storageSize: required for stateful components")
	}
	if c.MountPath == "" {
		return fmt.Errorf("mountPath: required for stateful components")
	}
	return nil
}

func (c *Component) validateStateless() error {
	if c.StorageSize != "" {
		return fmt.Errorf("storageSize: only stateful components own storage")
	}
	if c.MountPath != "" {
		return fmt.Errorf("mountPath: only stateful components own storage")
	}
	if c.Credentials != nil {
		return fmt.Errorf("credentials: only stateful components own credentials")
	}
	depSeen := make(map[string]struct{}, len(c.DependsOn))
	for i, dep := range c.DependsOn {
		if dep == "" {
			return fmt.Errorf("dependsOn[%d]: must not be empty", i)
		}
		if dep == c.Name {
			return fmt.Errorf("dependsOn[%d]: component cannot depend on itself", i)
		}
		if _, exists := depSeen[dep]; exists {
			return fmt.Errorf("dependsOn[%d]: duplicate dependency %q", i, dep)
		}
		depSeen[dep] = struct{}{}
	}
	return nil
}

func (e *EnvEntry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("name: must not be empty")
	}
	if e.SecretRef != nil && e.ServiceRef != nil {
		return fmt.Errorf("%s: secretRef and serviceRef cannot be specified together", e.Name)
	}
	if e.Value != "" && (e.SecretRef != nil || e.ServiceRef != nil) {
		return fmt.Errorf("%s: value cannot be combined with a reference", e.Name)
	}
	if e.SecretRef != nil {
		if e.SecretRef.Component == "" || e.SecretRef.Field == "" {
			return fmt.Errorf("%s: secretRef requires component and field", e.Name)
		}
	}
	if e.ServiceRef != nil && e.ServiceRef.Component == "" {
		return fmt.Errorf("%s: serviceRef requires component", e.Name)
	}
	return nil
}
