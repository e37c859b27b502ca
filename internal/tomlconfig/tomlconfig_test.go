package tomlconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rawen554/mockhive/internal/tomlconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestOnlyDelayAndProtectPropagate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, `
[route]
delay = 250
protect = true

[auth]
username_field = "email"
`)

	layer, err := tomlconfig.ReadLayer(cfgPath)
	require.NoError(t, err)

	env := tomlconfig.Env{}.Fold(layer)
	assert.Equal(t, 250, env.DelayMS)
	assert.True(t, env.Protected)

	eff := env.Effective(nil)
	assert.Equal(t, "", eff.Auth.UsernameField, "auth table must not leak past its own file")
}

func TestLocalLayerAppliesRemapOnlyAtLeaf(t *testing.T) {
	dir := t.TempDir()
	leafPath := filepath.Join(dir, "get.toml")
	writeFile(t, leafPath, `
[route]
remap = "/custom/path"
`)

	layer, err := tomlconfig.ReadLayer(leafPath)
	require.NoError(t, err)

	env := tomlconfig.Env{DelayMS: 100, Protected: true}
	eff := env.Effective(layer)

	assert.Equal(t, "/custom/path", eff.Remap)
	assert.Equal(t, 100, eff.DelayMS)
	assert.True(t, eff.Protect)
}

func TestStemConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b", "get{1-3}.toml"), tomlconfig.StemConfigPath(filepath.Join("a", "b", "get{1-3}.json")))
}

func TestServerFileLoadsMissingFileSilently(t *testing.T) {
	l, err := tomlconfig.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, l.Server.Port)
}
