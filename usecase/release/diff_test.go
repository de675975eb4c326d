package release

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIdenticalConfigs(t *testing.T) {
	uc := &UseCase{}
	path := writeConfig(t, baseConfig)
	out, err := uc.Diff(context.Background(), DiffInput{OldConfigPath: path, NewConfigPath: path})
	require.NoError(t, err)
	assert.False(t, out.Result.HasChanges())
	assert.Equal(t, "no changes", out.Result.Summary())
}

func TestDiffReplicaChange(t *testing.T) {
	uc := &UseCase{}
	oldPath := writeConfig(t, baseConfig)
	newPath := writeConfig(t, strings.Replace(baseConfig, "replicas: 2", "replicas: 3", 1))
	out, err := uc.Diff(context.Background(), DiffInput{OldConfigPath: oldPath, NewConfigPath: newPath})
	require.NoError(t, err)
	require.True(t, out.Result.HasChanges())
	assert.Empty(t, out.Result.Added)
	assert.Empty(t, out.Result.Removed)
	require.Len(t, out.Result.Modified, 1)
	assert.Equal(t, "Deployment/r1-api", out.Result.Modified[0].Key)
	assert.Contains(t, out.Result.Summary(), "1 modified")
}

func TestDiffComponentAdded(t *testing.T) {
	uc := &UseCase{}
	withoutFrontend := strings.Split(baseConfig, "  - name: frontend")[0]
	oldPath := writeConfig(t, withoutFrontend)
	newPath := writeConfig(t, baseConfig)
	out, err := uc.Diff(context.Background(), DiffInput{OldConfigPath: oldPath, NewConfigPath: newPath})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Service/r1-frontend", "Deployment/r1-frontend"}, out.Result.Added)
	assert.Empty(t, out.Result.Removed)
}

func TestDiffComponentRemoved(t *testing.T) {
	uc := &UseCase{}
	withoutFrontend := strings.Split(baseConfig, "  - name: frontend")[0]
	oldPath := writeConfig(t, baseConfig)
	newPath := writeConfig(t, withoutFrontend)
	out, err := uc.Diff(context.Background(), DiffInput{OldConfigPath: oldPath, NewConfigPath: newPath})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Service/r1-frontend", "Deployment/r1-frontend"}, out.Result.Removed)
}

func TestDiffReleaseRename(t *testing.T) {
	// Renaming a release replaces every derived identifier, so everything is
	// added under the new name and removed under the old one.
	uc := &UseCase{}
	oldPath := writeConfig(t, baseConfig)
	newPath := writeConfig(t, strings.Replace(baseConfig, "name: r1", "name: r1-canary", 1))
	out, err := uc.Diff(context.Background(), DiffInput{OldConfigPath: oldPath, NewConfigPath: newPath})
	require.NoError(t, err)
	assert.Len(t, out.Result.Added, 8)
	assert.Len(t, out.Result.Removed, 8)
}
