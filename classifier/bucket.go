// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package classifier turns a raw aggregate of component-version buckets
// into catalog Files, deciding each file's family from its path shape.
package classifier

import "github.com/gardener/docforge-catalog/catalog"

// Bucket is one component version as it arrives from aggregation, before
// classification.
type Bucket struct {
	Name       string
	Version    string
	Prerelease interface{}
	Title      string
	StartPage  string
	Files      []RawFile
	Nav        []string
	Asciidoc   map[string]interface{}
	Origin     *catalog.Origin
}

// RawFile is one unclassified aggregated file: a repository-relative path
// plus its bytes.
type RawFile struct {
	Path     string
	Contents []byte
}

// MergeStringMaps merges newMaps over oldMap, last writer wins. Grounded on
// the reference tree-construction helper of the same name and signature.
func MergeStringMaps[T any](oldMap map[string]T, newMaps ...map[string]T) map[string]T {
	var out map[string]T
	if oldMap != nil {
		out = make(map[string]T, len(oldMap))
	}
	for k, v := range oldMap {
		out[k] = v
	}
	for _, newMap := range newMaps {
		if newMap != nil && out == nil {
			out = make(map[string]T)
		}
		for k, v := range newMap {
			out[k] = v
		}
	}
	return out
}
