package kube

import (
	"crypto/sha256"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/relstack/relstack/domain/model"
)

// Credential bundle field names. These are the only keys a dependent's
// secretRef may address.
const (
	CredentialFieldUsername = "username"
	CredentialFieldPassword = "password"
	CredentialFieldDatabase = "database"
)

// CredentialBundle is the materialized credential set of one stateful
// component. Dependents receive only SecretName plus a field name; the
// values stay inside the Secret object.
type CredentialBundle struct {
	SecretName string
	Fields     map[string]string
}

// Has reports whether the bundle carries the named field.
func (b *CredentialBundle) Has(field string) bool {
	_, ok := b.Fields[field]
	return ok
}

// materializeCredentials builds the credential bundle of a stateful
// component. Explicit configuration values are used verbatim; absent fields
// are derived deterministically from the release and component names so a
// re-render of the same release never rotates credentials out from under
// existing storage.
func materializeCredentials(rel *model.Release, c *model.Component, secretName string) *CredentialBundle {
	bundle := &CredentialBundle{
		SecretName: secretName,
		Fields: map[string]string{
			CredentialFieldUsername: c.Name,
			CredentialFieldPassword: deriveCredential(rel.Name, c.Name, CredentialFieldPassword),
			CredentialFieldDatabase: c.Name,
		},
	}
	if c.Credentials != nil {
		if c.Credentials.Username != "" {
			bundle.Fields[CredentialFieldUsername] = c.Credentials.Username
		}
		if c.Credentials.Password != "" {
			bundle.Fields[CredentialFieldPassword] = c.Credentials.Password
		}
		if c.Credentials.Database != "" {
			bundle.Fields[CredentialFieldDatabase] = c.Credentials.Database
		}
	}
	return bundle
}

// deriveCredential produces a stable per-(release, component, field) value.
// Not a substitute for a real secret store; the stability requirement is the
// point, generated values must survive re-renders unchanged.
func deriveCredential(releaseName, componentName, field string) string {
	sum := sha256.Sum256([]byte(releaseName + ":" + componentName + ":" + field))
	return fmt.Sprintf("%x", sum)[:32]
}

// secretObject emits the Secret resource carrying a bundle. Data keys are
// stored base64-encoded at rest by the Secret wire format.
func secretObject(labels map[string]string, bundle *CredentialBundle) *corev1.Secret {
	data := make(map[string][]byte, len(bundle.Fields))
	for k, v := range bundle.Fields {
		data[k] = []byte(v)
	}
	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: bundle.SecretName, Labels: labels},
		Type:       corev1.SecretTypeOpaque,
		Data:       data,
	}
}

// bindingFor expresses a dependent's secret-field reference as an
// environment variable sourced from the bundle's Secret at apply time.
// The plaintext value never enters the dependent's resource description.
func bindingFor(name string, bundle *CredentialBundle, field string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: bundle.SecretName},
				Key:                  field,
			},
		},
	}
}
