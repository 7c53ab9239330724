// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package must provides small assertion helpers for invariants that
// indicate a programmer error rather than an operating condition.
//
// "Assertions detect programmer errors. Unlike operating errors, which are
// expected and which must be handled, assertion failures are unexpected.
// The only correct way to handle corrupt code is to crash." - TigerBeetle
// TIGER_STYLE.md, the inspiration for this package.
package must

import "fmt"

// Succeed panics on error. Use it to wrap calls that cannot fail given the
// invariants already established by the caller.
func Succeed[T any](obj T, err error) T {
	if err != nil {
		panic(fmt.Errorf("assertion broken: %w", err))
	}
	return obj
}

// BeTrue panics when cond is false.
func BeTrue(cond bool, msg string) {
	if !cond {
		panic(fmt.Errorf("assertion broken: %s", msg))
	}
}

// BeFalse panics when cond is true.
func BeFalse(cond bool, msg string) {
	if cond {
		panic(fmt.Errorf("assertion broken: %s", msg))
	}
}
