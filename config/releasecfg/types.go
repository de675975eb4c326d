// Package releasecfg defines the configuration schema (structs) for a
// release.yml document, its loader and its semantic validation. The schema
// is intended for YAML -> struct deserialization; conversion to domain
// models happens in ToModel.
package releasecfg

// Root is the root structure of a release configuration document.
type Root struct {
	Version    string      `yaml:"version"`
	Release    Release     `yaml:"release"`
	Components []Component `yaml:"components"`
}

// Release carries the release-level settings.
type Release struct {
	Name string `yaml:"name"` // RFC1123-compliant DNS label segment
}

// Component describes one deployable unit of the release.
type Component struct {
	Name        string       `yaml:"name"`
	Kind        string       `yaml:"kind"` // "stateful" or "stateless"
	Image       string       `yaml:"image"`
	Replicas    *int32       `yaml:"replicas,omitempty"` // nil means 1; 0 soft-disables the component
	Port        int32        `yaml:"port"`
	Env         []EnvEntry   `yaml:"env,omitempty"`
	DependsOn   []string     `yaml:"dependsOn,omitempty"`   // stateless only
	StorageSize string       `yaml:"storageSize,omitempty"` // stateful only, e.g. "10Gi"
	MountPath   string       `yaml:"mountPath,omitempty"`   // stateful only
	Credentials *Credentials `yaml:"credentials,omitempty"` // stateful only
}

// EnvEntry maps one environment variable to a literal value, a secret-field
// reference or a service-address reference. At most one of Value, SecretRef
// and ServiceRef may be set.
type EnvEntry struct {
	Name       string      `yaml:"name"`
	Value      string      `yaml:"value,omitempty"`
	SecretRef  *SecretRef  `yaml:"secretRef,omitempty"`
	ServiceRef *ServiceRef `yaml:"serviceRef,omitempty"`
}

// SecretRef names one field of a stateful component's credential bundle.
type SecretRef struct {
	Component string `yaml:"component"`
	Field     string `yaml:"field"` // "username", "password" or "database"
}

// ServiceRef names a component whose network address the variable receives.
type ServiceRef struct {
	Component string `yaml:"component"`
}

// Credentials carries explicit credential values for a stateful component.
// Omitted fields are generated deterministically at render time.
type Credentials struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}
