// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package resourceid implements the canonical resource coordinate used
// throughout the content catalog - (component, version, module, family,
// relative) - and the generation/parsing of its two textual forms: the
// internal catalog key and the user-facing resource spec.
package resourceid

// Family is the content role of a file. It is a closed set: a resolver or
// catalog method that receives an unrecognized family string should treat
// it as "not found" rather than invent new behavior for it.
type Family string

// The closed set of families a file can belong to.
const (
	FamilyPage       Family = "page"
	FamilyPartial    Family = "partial"
	FamilyExample    Family = "example"
	FamilyImage      Family = "image"
	FamilyAttachment Family = "attachment"
	FamilyNav        Family = "nav"
	FamilyAlias      Family = "alias"
)

// Families lists the closed family set in a stable order, convenient for
// building "permitted families" slices and for validation error messages.
var Families = []Family{FamilyPage, FamilyPartial, FamilyExample, FamilyImage, FamilyAttachment, FamilyNav, FamilyAlias}

// Valid reports whether f is one of the closed set of families.
func (f Family) Valid() bool {
	for _, candidate := range Families {
		if candidate == f {
			return true
		}
	}
	return false
}

// RootModule is the sentinel module name denoting "no module segment".
const RootModule = "ROOT"

// RootComponent is the sentinel component name denoting "no component segment".
const RootComponent = "ROOT"
