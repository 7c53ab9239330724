// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resourceid

import (
	"errors"
	"strings"
)

// ErrInvalidSyntax is returned by ParseID when spec is structurally invalid:
// a doubled family marker, or a relative path that is empty once its pseudo
// extension is stripped. Callers must distinguish this from a nil, nil
// result (syntactically fine, but about a resource that may simply not
// exist - that absence is discovered later, against the catalog).
var ErrInvalidSyntax = errors.New("invalid resource id syntax")

// ParseID parses spec against the grammar:
//
//	[ <version> @ ] [ <component> :: | <component> : <module> : | : <module> : ]
//	  [ <family> $ ] <relative> [ # <fragment> ]
//
// Any coordinate left unspecified in spec is zero-valued in the returned ID;
// callers fill it in from a page context (see the resolver package).
// defaultFamily is not applied here - callers that need a default family
// substitute it themselves once parsing succeeds, since the permitted set
// can differ from one call site to the next.
func ParseID(spec string, permittedFamilies []Family) (ID, error) {
	var id ID

	rest := spec
	if i := strings.Index(rest, "#"); i >= 0 {
		id.Fragment = rest[i+1:]
		rest = rest[:i]
	}

	if version, remainder, ok := splitVersion(rest); ok {
		id.Version = version
		rest = remainder
	}

	component, module, remainder := splitComponentModule(rest)
	id.Component = component
	id.Module = module
	rest = remainder

	family, remainder, err := splitFamily(rest, permittedFamilies)
	if err != nil {
		return ID{}, err
	}
	id.Family = family
	rest = remainder

	id.Relative = rest
	if !validRelative(id.Relative) {
		return ID{}, ErrInvalidSyntax
	}

	return id, nil
}

// splitVersion implements the "2.0@the-page" ambiguity documented in §9: a
// bare version-looking prefix before '@' is only honored as a version when
// what follows (once any family marker is stripped) has a file extension.
// Without an extension the whole string is left untouched and handled later
// as a plain, as-is relative path - which will generally not resolve,
// reproducing the reference tool's "not found" diagnostic rather than
// silently reinterpreting the input.
func splitVersion(s string) (version string, rest string, ok bool) {
	idx := strings.Index(s, "@")
	if idx < 0 {
		return "", s, false
	}
	candidate := s[:idx]
	remainder := s[idx+1:]
	if !looksLikeItHasExtension(remainder) {
		return "", s, false
	}
	return candidate, remainder, true
}

func looksLikeItHasExtension(s string) bool {
	base := s
	if i := strings.LastIndex(base, "$"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	// a leading dot alone (".gitignore"-style hidden file with no further
	// dot) does not count as an extension for this heuristic.
	return strings.Contains(strings.TrimPrefix(base, "."), ".")
}

// splitComponentModule recognizes the three component/module prefix forms:
// "component::", "component:module:" and ":module:". Anything else leaves
// component and module unspecified and returns s unchanged.
func splitComponentModule(s string) (component, module, rest string) {
	idx1 := strings.Index(s, ":")
	if idx1 < 0 {
		return "", "", s
	}
	if idx1+1 < len(s) && s[idx1+1] == ':' {
		// "component::rest" - ROOT module shorthand.
		return s[:idx1], RootModule, s[idx1+2:]
	}
	idx2 := strings.Index(s[idx1+1:], ":")
	if idx2 < 0 {
		// A single, non-doubled colon with no second colon does not match
		// any of the three grammar forms; treat it as part of relative.
		return "", "", s
	}
	idx2 += idx1 + 1
	return s[:idx1], s[idx1+1 : idx2], s[idx2+1:]
}

// splitFamily recognizes a leading "<family>$" marker. A second, unconsumed
// '$' anywhere in what would become relative is a structural error (the
// "double $" case from §4.1).
func splitFamily(s string, permitted []Family) (Family, string, error) {
	idx := strings.Index(s, "$")
	if idx < 0 {
		return "", s, nil
	}
	token := Family(s[:idx])
	rest := s[idx+1:]
	if strings.Contains(rest, "$") {
		return "", "", ErrInvalidSyntax
	}
	if !familyPermitted(token, permitted) {
		// Not a recognized family marker - treat the whole string, '$'
		// included, as a literal relative path.
		return "", s, nil
	}
	return token, rest, nil
}

func familyPermitted(candidate Family, permitted []Family) bool {
	if !candidate.Valid() {
		return false
	}
	if len(permitted) == 0 {
		return true
	}
	for _, f := range permitted {
		if f == candidate {
			return true
		}
	}
	return false
}

// validRelative rejects a relative path that is empty, or that becomes
// empty once a trailing ".adoc" pseudo-extension is stripped down to its
// basename (e.g. a bare "$.adoc" spec).
func validRelative(relative string) bool {
	if relative == "" {
		return false
	}
	base := relative
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	stem := strings.TrimSuffix(base, ".adoc")
	return stem != ""
}
