// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctxcopy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	cfg := LoadConfigOrDefault("")
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Defaults.Format)
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	path := writeConfig(t, ":::invalid yaml:::")
	cfg := LoadConfigOrDefault(path)
	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, 4, cfg.Defaults.Workers)
	assert.Equal(t, []string{"financial", "share"}, cfg.ListProfiles())
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: json
  no_color: true
masking:
  strategy: structural
  denyList: [Secret]
  types:
    ipv4: true
profiles:
  support:
    description: Redact for support tickets
    masking:
      strategy: redact
      types:
        email: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.NoColor)
	assert.Equal(t, 4, cfg.Defaults.Workers)
	assert.Contains(t, cfg.ListProfiles(), "support")
	assert.Contains(t, cfg.ListProfiles(), "financial", "built-in profiles survive a file without them")

	settings, err := cfg.MaskingSettings("support")
	require.NoError(t, err)
	assert.Equal(t, "redact", settings["strategy"])
	assert.Equal(t, map[string]interface{}{"ipv4": true, "email": false}, settings["types"])

	masking, err := Process(settings)
	require.NoError(t, err)
	assert.True(t, masking.Types["ipv4"])
	assert.False(t, masking.Types["email"])
	assert.Equal(t, []string{"secret"}, masking.DenyList)
}

func TestLoadConfig_RejectsUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "defaults:\n  format: sarif\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported default format")
}

func TestLoadConfig_RejectsUndecodableMasking(t *testing.T) {
	path := writeConfig(t, "masking:\n  types: everything\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "masking settings")
}

func TestMaskingSettings_UnknownProfile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	_, err = cfg.MaskingSettings("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "financial")

	settings, err := cfg.MaskingSettings("")
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestGetProfile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Nil(t, cfg.GetProfile("nope"))
	p := cfg.GetProfile("financial")
	require.NotNil(t, p)
	assert.Equal(t, "financial", p.Masking["preset"])
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}
