// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ctxcopy/internal/preprocessors"
)

// collectFiles expands files, directories and glob patterns into a sorted,
// de-duplicated file list. Directory entries without a preprocessor are
// skipped silently; explicitly named files are always kept so that the
// masking run reports them.
func collectFiles(inputs []string, recursive bool, manager *preprocessors.PreprocessorManager) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			if !strings.ContainsAny(input, "*?[") {
				return nil, fmt.Errorf("path does not exist or is not accessible: %w", err)
			}
			matches, globErr := filepath.Glob(input)
			if globErr != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", input, globErr)
			}
			for _, m := range matches {
				if st, err := os.Stat(m); err == nil && st.Mode().IsRegular() {
					add(m)
				}
			}
			continue
		}

		if !info.IsDir() {
			add(input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != input && (!recursive || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && manager.GetPreprocessor(path) != nil {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", input, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// maskedCopyPath names the masked copy of input inside dir. Extracted PDF
// text is written as .txt.
func maskedCopyPath(dir, input, processor string) string {
	name := filepath.Base(input)
	if processor == "pdf" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
	}
	return filepath.Join(dir, name)
}
