// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctxcopy/internal/config"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMaskFileUsesExtensionForFormat(t *testing.T) {
	e, _ := newTestEngine()
	dir := t.TempDir()

	// a .csv extension wins over content sniffing
	path := writeTemp(t, dir, "people.csv", "Email\njohn@company.com")
	fr, err := e.MaskFile(path, FileConfig{Masking: config.DefaultMaskingConfig(), Format: FormatAuto})
	require.NoError(t, err)
	assert.Equal(t, "plaintext", fr.Processor)
	assert.Equal(t, "Email\nj**n@c***.com", fr.Result.MaskedText)
	require.Len(t, fr.Result.Detections, 1)
	assert.NotNil(t, fr.Result.Detections[0].ColumnContext)
}

func TestMaskFileExplicitFormat(t *testing.T) {
	e, _ := newTestEngine()
	path := writeTemp(t, t.TempDir(), "notes.txt", `{"ssn": "234-56-7890"}`)

	fr, err := e.MaskFile(path, FileConfig{Masking: config.DefaultMaskingConfig(), Format: FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, `{"ssn": "***-**-7890"}`, fr.Result.MaskedText)
}

func TestMaskFileUnsupported(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.MaskFile("picture.png", FileConfig{Masking: config.DefaultMaskingConfig()})
	assert.ErrorContains(t, err, "not supported")
}

func TestMaskFilesCollectsPerFileResults(t *testing.T) {
	e, _ := newTestEngine()
	dir := t.TempDir()
	paths := []string{
		writeTemp(t, dir, "a.txt", "Contact: jane.doe@company.org"),
		filepath.Join(dir, "missing.txt"),
		writeTemp(t, dir, "b.json", `{"ssn": "234-56-7890"}`),
	}

	var calls int
	result, err := e.MaskFiles(context.Background(), paths, FileConfig{
		Masking:  config.DefaultMaskingConfig(),
		Format:   FormatAuto,
		Workers:  2,
		Progress: func(completed, total int, _ string) { calls++ },
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	assert.Equal(t, "Contact: j******e@c***.org", result.Files[0].Result.MaskedText)
	assert.Equal(t, "plaintext", result.Files[0].Processor)
	assert.Error(t, result.Files[1].Error)
	assert.Equal(t, `{"ssn": "***-**-7890"}`, result.Files[2].Result.MaskedText)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, result.Stats.TotalFiles)
	assert.Equal(t, 1, result.Stats.FailedFiles)
	assert.Equal(t, 2, result.Stats.TotalDetections)
}
