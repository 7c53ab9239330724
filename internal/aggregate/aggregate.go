// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package aggregate is the local-filesystem stand-in for the out-of-scope
// repository aggregation stage (see SPEC_FULL.md's Non-goals): it turns a
// directory of component-version subtrees, each carrying a component.yml
// descriptor next to its modules/ tree, into classifier.Bucket values ready
// for the Classifier.
package aggregate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gardener/docforge-catalog/classifier"
)

// descriptor is the component.yml shape, mirroring the subset of an
// antora.yml-equivalent document the Classifier cares about.
type descriptor struct {
	Name       string      `yaml:"name"`
	Version    string      `yaml:"version"`
	Title      string      `yaml:"title"`
	Prerelease interface{} `yaml:"prerelease"`
	StartPage  string      `yaml:"start_page"`
	Nav        []string    `yaml:"nav"`
	Asciidoc   struct {
		Attributes map[string]interface{} `yaml:"attributes"`
	} `yaml:"asciidoc"`
}

// LoadBuckets walks root for immediate subdirectories containing a
// component.yml descriptor and returns one Bucket per subdirectory found, in
// directory-listing order.
func LoadBuckets(root string) ([]classifier.Bucket, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var buckets []classifier.Bucket
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		descPath := filepath.Join(dir, "component.yml")
		data, err := os.ReadFile(descPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", descPath, err)
		}

		var d descriptor
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", descPath, err)
		}

		files, err := loadFiles(dir, descPath)
		if err != nil {
			return nil, err
		}

		buckets = append(buckets, classifier.Bucket{
			Name:       d.Name,
			Version:    d.Version,
			Title:      d.Title,
			Prerelease: d.Prerelease,
			StartPage:  d.StartPage,
			Nav:        d.Nav,
			Asciidoc:   d.Asciidoc.Attributes,
			Files:      files,
		})
	}
	return buckets, nil
}

func loadFiles(dir, descPath string) ([]classifier.RawFile, error) {
	var files []classifier.RawFile
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == descPath {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, classifier.RawFile{Path: filepath.ToSlash(rel), Contents: contents})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
