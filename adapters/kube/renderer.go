// Package kube renders a release into its Kubernetes resource set:
// per component one Service, one Deployment, and for stateful components a
// Secret and a PersistentVolumeClaim. The rendering is a single-pass,
// side-effect-free transformation; applying the output is the job of an
// external orchestration runtime.
package kube

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/relstack/relstack/domain/model"
	"github.com/relstack/relstack/internal/depgraph"
	"github.com/relstack/relstack/internal/logging"
	"github.com/relstack/relstack/internal/naming"
)

// Renderer holds the plan for one release.
//
// Design:
//   - NewRenderer binds the release and precomputes release-level labels.
//   - Render resolves identifiers, materializes credential bundles, orders
//     components and assembles the final objects. It mutates nothing outside
//     the Renderer, so distinct releases can render in parallel.
type Renderer struct {
	Release *model.Release

	// Derived state, filled by Render.
	names   map[string]componentNames
	bundles map[string]*CredentialBundle
	order   []*model.Component
}

// componentNames groups the identifiers derived for one component.
type componentNames struct {
	Service      string
	Secret       string
	StorageClaim string
	Account      string
}

// ResourceSet is the rendered output of one release: the ordered object
// list plus the topological component order it was emitted in.
type ResourceSet struct {
	Release string
	Order   []string
	Objects []runtime.Object
}

// NewRenderer creates a renderer bound to a release.
func NewRenderer(rel *model.Release) *Renderer {
	return &Renderer{Release: rel}
}

// Render produces the release's resource set. Any failure (invalid or
// colliding identifier, dangling secret or service reference, unknown
// dependency, dependency cycle) aborts the whole render; there is no
// partial output.
func (r *Renderer) Render(ctx context.Context) (*ResourceSet, error) {
	log := logging.FromContext(ctx)
	rel := r.Release
	if rel == nil {
		return nil, fmt.Errorf("renderer requires a release")
	}

	if err := r.resolveNames(); err != nil {
		return nil, err
	}
	r.materializeBundles()

	order, err := depgraph.Build(rel)
	if err != nil {
		return nil, err
	}
	r.order = order

	set := &ResourceSet{Release: rel.Name}
	for _, c := range order {
		objs, err := r.renderComponent(c)
		if err != nil {
			return nil, err
		}
		set.Order = append(set.Order, c.Name)
		set.Objects = append(set.Objects, objs...)
	}
	log.Info(ctx, "rendered release", "release", rel.Name, "components", len(order), "objects", len(set.Objects))
	return set, nil
}

// resolveNames derives every identifier up front and checks release-level
// injectivity: two distinct (component, role) pairs must never share a name.
func (r *Renderer) resolveNames() error {
	rel := r.Release
	if err := naming.ValidateReleaseName(rel.Name); err != nil {
		return err
	}
	r.names = make(map[string]componentNames, len(rel.Components))
	owner := map[string]string{}
	for i := range rel.Components {
		c := &rel.Components[i]
		var names componentNames
		for _, rr := range []struct {
			role naming.Role
			dst  *string
		}{
			{naming.RoleService, &names.Service},
			{naming.RoleSecret, &names.Secret},
			{naming.RoleStorageClaim, &names.StorageClaim},
			{naming.RoleAccount, &names.Account},
		} {
			name, err := naming.Resolve(rel.Name, c.Name, rr.role)
			if err != nil {
				return err
			}
			if prev, dup := owner[name]; dup {
				return model.InvalidIdentifierError{
					Name:   name,
					Reason: fmt.Sprintf("derived for both %s and %s/%s", prev, c.Name, rr.role),
				}
			}
			owner[name] = fmt.Sprintf("%s/%s", c.Name, rr.role)
			*rr.dst = name
		}
		r.names[c.Name] = names
	}
	return nil
}

// materializeBundles builds the credential bundle of every stateful
// component. Bundles are written once here and afterwards read only by
// reference.
func (r *Renderer) materializeBundles() {
	r.bundles = map[string]*CredentialBundle{}
	for i := range r.Release.Components {
		c := &r.Release.Components[i]
		if c.Stateful() {
			r.bundles[c.Name] = materializeCredentials(r.Release, c, r.names[c.Name].Secret)
		}
	}
}

// renderComponent emits the objects of one component. Emission order within
// a component: Secret, PersistentVolumeClaim (stateful only), Service,
// Deployment.
func (r *Renderer) renderComponent(c *model.Component) ([]runtime.Object, error) {
	names := r.names[c.Name]
	labels := componentLabels(r.Release, c, names.Service)

	var objs []runtime.Object
	if c.Stateful() {
		objs = append(objs, secretObject(labels, r.bundles[c.Name]))
		objs = append(objs, storageClaim(labels, names.StorageClaim, c.StorageSize))
	}
	objs = append(objs, serviceObject(labels, names.Service, c.Port))

	dep, err := r.deployment(c, names, labels)
	if err != nil {
		return nil, err
	}
	objs = append(objs, dep)
	return objs, nil
}

// env resolves a component's environment bindings. Literal values are
// inlined; secret-sourced values become SecretKeyRef handles; service
// references become the target's resolved service name, never an IP.
func (r *Renderer) env(c *model.Component) ([]corev1.EnvVar, error) {
	var env []corev1.EnvVar
	for _, b := range c.Env {
		switch {
		case b.SecretRef != nil:
			bundle, ok := r.bundles[b.SecretRef.Component]
			if !ok || !bundle.Has(b.SecretRef.Field) {
				return nil, model.MissingCredentialError{
					Component: c.Name,
					Target:    b.SecretRef.Component,
					Field:     b.SecretRef.Field,
				}
			}
			env = append(env, bindingFor(b.Name, bundle, b.SecretRef.Field))
		case b.ServiceRef != nil:
			target, ok := r.names[b.ServiceRef.Component]
			if !ok {
				return nil, model.UnknownDependencyError{From: c.Name, To: b.ServiceRef.Component}
			}
			env = append(env, corev1.EnvVar{Name: b.Name, Value: target.Service})
		default:
			env = append(env, corev1.EnvVar{Name: b.Name, Value: b.Value})
		}
	}
	return env, nil
}

// gates emits one startup wait loop per dependency edge, in the dependent's
// declared order. Startup order is enforced only here: two dependents of the
// same dependency block on it independently, never on each other.
func (r *Renderer) gates(c *model.Component) ([]corev1.Container, error) {
	var gates []corev1.Container
	for _, dep := range c.DependsOn {
		target := r.Release.Component(dep)
		if target == nil {
			return nil, model.UnknownDependencyError{From: c.Name, To: dep}
		}
		gates = append(gates, waitForContainer(dep, r.names[dep].Service, target.Port))
	}
	return gates, nil
}

func (r *Renderer) deployment(c *model.Component, names componentNames, labels map[string]string) (*appsv1.Deployment, error) {
	env, err := r.env(c)
	if err != nil {
		return nil, err
	}
	gates, err := r.gates(c)
	if err != nil {
		return nil, err
	}

	ctn := corev1.Container{
		Name:  c.Name,
		Image: c.Image,
		Ports: []corev1.ContainerPort{{ContainerPort: c.Port}},
		Env:   env,
	}

	spec := appsv1.DeploymentSpec{
		Replicas: ptr.To(c.Replicas),
		Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": names.Service}},
		Template: corev1.PodTemplateSpec{
			ObjectMeta: metav1.ObjectMeta{Labels: labels},
			Spec: corev1.PodSpec{
				InitContainers: gates,
				Containers:     []corev1.Container{ctn},
			},
		},
	}

	if c.Stateful() {
		// Single instance bound 1:1 to its claim; Recreate prevents two pods
		// holding the volume during a rollout.
		spec.Replicas = ptr.To[int32](1)
		spec.Strategy = appsv1.DeploymentStrategy{Type: appsv1.RecreateDeploymentStrategyType}
		spec.Template.Spec.Containers[0].VolumeMounts = []corev1.VolumeMount{
			{Name: "data", MountPath: c.MountPath},
		}
		spec.Template.Spec.Volumes = []corev1.Volume{
			{
				Name: "data",
				VolumeSource: corev1.VolumeSource{
					PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: names.StorageClaim},
				},
			},
		}
	}

	return &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{Name: names.Service, Labels: labels},
		Spec:       spec,
	}, nil
}

func serviceObject(labels map[string]string, name string, port int32) *corev1.Service {
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{"app": name},
			Ports:    []corev1.ServicePort{{Name: fmt.Sprintf("p%d", port), Port: port, TargetPort: intstr.FromInt32(port)}},
		},
	}
}

func storageClaim(labels map[string]string, name string, sizeBytes int64) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: bytesToQuantity(sizeBytes)},
			},
		},
	}
}
