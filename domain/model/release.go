package model

// ComponentKind distinguishes stateful components (own storage and
// credentials, single instance) from stateless ones (replicable, may
// depend on other components).
type ComponentKind string

const (
	ComponentKindStateful  ComponentKind = "stateful"
	ComponentKindStateless ComponentKind = "stateless"
)

// Release is one named instantiation of a set of components. The release
// name scopes every identifier derived during rendering.
type Release struct {
	Name       string
	Components []Component
}

// Component represents a named deployable unit within a release.
// Declaration order in Components is significant: it is the tie-break for
// the topological ordering of the rendered resource set.
type Component struct {
	Name        string
	Kind        ComponentKind
	Image       string
	Replicas    int32
	Port        int32
	Env         []EnvBinding
	DependsOn   []string
	StorageSize int64 // bytes (parsed from user configuration quantities like "10Gi")
	MountPath   string
	Credentials *CredentialSpec
}

// Stateful reports whether the component owns persistent storage.
func (c *Component) Stateful() bool { return c.Kind == ComponentKindStateful }

// EnvBinding maps an environment variable name to exactly one of:
// a literal value, a secret-field reference, or a service-address reference.
type EnvBinding struct {
	Name       string
	Value      string
	SecretRef  *SecretFieldRef
	ServiceRef *ServiceRef
}

// SecretFieldRef points at one field of another component's credential
// bundle. The referenced value is resolved by the orchestration runtime at
// apply time; the renderer only ever emits the handle and field name.
type SecretFieldRef struct {
	Component string
	Field     string
}

// ServiceRef points at another component's network address. It resolves to
// the service name derived for that component, never to an IP.
type ServiceRef struct {
	Component string
}

// CredentialSpec carries the user-supplied credential fields of a stateful
// component. Empty fields are generated deterministically at render time so
// that re-rendering the same release never rotates credentials.
type CredentialSpec struct {
	Username string
	Password string
	Database string
}

// Component returns the component with the given name, or nil.
func (r *Release) Component(name string) *Component {
	for i := range r.Components {
		if r.Components[i].Name == name {
			return &r.Components[i]
		}
	}
	return nil
}
