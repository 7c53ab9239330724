// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"

	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Sentinel errors distinguished by callers needing a specific diagnostic
// rather than a generic failure.
var (
	ErrComponentVersionExists = errors.New("component version already registered")
	ErrAliasSelfReference     = errors.New("page alias cannot target itself")
	ErrAliasCollidesWithPage  = errors.New("page alias collides with an existing page")
	ErrAliasCollidesWithAlias = errors.New("page alias collides with an existing alias")
)

// DuplicateError is raised by AddFile/AddSplatAlias when a second file
// claims a key already held within the same family.
type DuplicateError struct {
	Family   resourceid.Family
	Key      string
	Existing *File
	New      *File
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %q: first registered at %s, attempted again at %s",
		e.Family, e.Key, locationOf(e.Existing), locationOf(e.New))
}

func locationOf(f *File) string {
	if f == nil || f.Path == "" {
		return "<synthetic>"
	}
	return f.Path
}
