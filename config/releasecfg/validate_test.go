package releasecfg

import (
	"strings"
	"testing"

	"k8s.io/utils/ptr"
)

func validRoot() *Root {
	return &Root{
		Version: "v1",
		Release: Release{Name: "r1"},
		Components: []Component{
			{
				Name: "db", Kind: "stateful", Image: "postgres:16", Port: 5432,
				StorageSize: "10Gi", MountPath: "/var/lib/postgresql/data",
				Credentials: &Credentials{Username: "appuser", Password: "secret", Database: "appdb"},
			},
			{
				Name: "api", Kind: "stateless", Image: "example/api:1.0", Port: 8000,
				DependsOn: []string{"db"},
				Env: []EnvEntry{
					{Name: "DB_HOST", ServiceRef: &ServiceRef{Component: "db"}},
					{Name: "DB_PASSWORD", SecretRef: &SecretRef{Component: "db", Field: "password"}},
				},
			},
		},
	}
}

func TestValidateAcceptsSample(t *testing.T) {
	if err := validRoot().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Root)
		wantSub string
	}{
		{
			name:    "unsupported version",
			mutate:  func(r *Root) { r.Version = "v2" },
			wantSub: "version",
		},
		{
			name:    "bad release name",
			mutate:  func(r *Root) { r.Release.Name = "R1" },
			wantSub: "release.name",
		},
		{
			name:    "duplicate component name",
			mutate:  func(r *Root) { r.Components[1].Name = "db" },
			wantSub: "duplicate component name",
		},
		{
			name:    "unknown kind",
			mutate:  func(r *Root) { r.Components[0].Kind = "singleton" },
			wantSub: "invalid kind",
		},
		{
			name:    "missing image",
			mutate:  func(r *Root) { r.Components[1].Image = "" },
			wantSub: "image",
		},
		{
			name:    "port out of range",
			mutate:  func(r *Root) { r.Components[1].Port = 0 },
			wantSub: "port",
		},
		{
			name:    "negative replicas",
			mutate:  func(r *Root) { r.Components[1].Replicas = ptr.To[int32](-1) },
			wantSub: "replicas",
		},
		{
			name:    "stateful with dependsOn",
			mutate:  func(r *Root) { r.Components[0].DependsOn = []string{"api"} },
			wantSub: "stateful components cannot depend",
		},
		{
			name:    "stateful scaled out",
			mutate:  func(r *Root) { r.Components[0].Replicas = ptr.To[int32](3) },
			wantSub: "single-instance",
		},
		{
			name:    "stateful without storage",
			mutate:  func(r *Root) { r.Components[0].StorageSize = "" },
			wantSub: "storageSize",
		},
		{
			name:    "stateful without mount path",
			mutate:  func(r *Root) { r.Components[0].MountPath = "" },
			wantSub: "mountPath",
		},
		{
			name:    "stateless with storage",
			mutate:  func(r *Root) { r.Components[1].StorageSize = "1Gi" },
			wantSub: "only stateful components own storage",
		},
		{
			name:    "stateless with credentials",
			mutate:  func(r *Root) { r.Components[1].Credentials = &Credentials{Username: "u"} },
			wantSub: "only stateful components own credentials",
		},
		{
			name:    "self dependency",
			mutate:  func(r *Root) { r.Components[1].DependsOn = []string{"api"} },
			wantSub: "depend on itself",
		},
		{
			name:    "duplicate dependency",
			mutate:  func(r *Root) { r.Components[1].DependsOn = []string{"db", "db"} },
			wantSub: "duplicate dependency",
		},
		{
			name:    "env without name",
			mutate:  func(r *Root) { r.Components[1].Env[0].Name = "" },
			wantSub: "env[0]",
		},
		{
			name: "env with both references",
			mutate: func(r *Root) {
				r.Components[1].Env[0].SecretRef = &SecretRef{Component: "db", Field: "password"}
			},
			wantSub: "cannot be specified together",
		},
		{
			name:    "secretRef without field",
			mutate:  func(r *Root) { r.Components[1].Env[1].SecretRef.Field = "" },
			wantSub: "secretRef requires",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRoot()
			tc.mutate(r)
			err := r.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestValidateAllowsEmptyComponentList(t *testing.T) {
	r := &Root{Release: Release{Name: "empty"}}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
