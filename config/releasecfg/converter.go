package releasecfg

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/relstack/relstack/domain/model"
)

// ToModel converts the configuration to the domain release model.
// Declaration order of components is preserved; it drives the deterministic
// tie-break of the dependency ordering downstream.
func (r *Root) ToModel() (*model.Release, error) {
	rel := &model.Release{
		Name:       r.Release.Name,
		Components: make([]model.Component, 0, len(r.Components)),
	}
	for i := range r.Components {
		c, err := r.Components[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("components[%d]: %w", i, err)
		}
		rel.Components = append(rel.Components, c)
	}
	return rel, nil
}

func (c *Component) toModel() (model.Component, error) {
	out := model.Component{
		Name:      c.Name,
		Kind:      model.ComponentKind(c.Kind),
		Image:     c.Image,
		Replicas:  1,
		Port:      c.Port,
		DependsOn: append([]string(nil), c.DependsOn...),
		MountPath: c.MountPath,
	}
	if c.Replicas != nil {
		out.Replicas = *c.Replicas
	}
	if c.StorageSize != "" {
		q, err := resource.ParseQuantity(c.StorageSize)
		if err != nil {
			return model.Component{}, fmt.Errorf("storageSize: invalid quantity %q: %w", c.StorageSize, err)
		}
		out.StorageSize = q.Value()
	}
	if c.Credentials != nil {
		out.Credentials = &model.CredentialSpec{
			Username: c.Credentials.Username,
			Password: c.Credentials.Password,
			Database: c.Credentials.Database,
		}
	}
	for _, e := range c.Env {
		b := model.EnvBinding{Name: e.Name, Value: e.Value}
		if e.SecretRef != nil {
			b.SecretRef = &model.SecretFieldRef{Component: e.SecretRef.Component, Field: e.SecretRef.Field}
		}
		if e.ServiceRef != nil {
			b.ServiceRef = &model.ServiceRef{Component: e.ServiceRef.Component}
		}
		out.Env = append(out.Env, b)
	}
	return out, nil
}
