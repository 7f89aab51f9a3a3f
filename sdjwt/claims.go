// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	sdKey           = "_sd"
	sdAlgKey        = "_sd_alg"
	arrayElementKey = "..."

	pathSeparator = "."
)

// issuerClaims are registered claims the issuer sets itself; they may not
// appear in a ClaimSet.
var issuerClaims = []string{"iss", "iat", "exp", "nbf", "aud", "jti"}

// ClaimSet maps claim names to JSON-serializable values. Nested objects are
// map[string]any (or ClaimSet) values. A ClaimSet is never modified by this
// package.
type ClaimSet map[string]any

// Scope lists the claims that are selectively disclosable, by name or by
// dotted path into nested objects ("address.street"). Order is significant:
// disclosures are issued in scope order.
type Scope []string

func (c ClaimSet) validate() error {
	const op = "ClaimSet.validate"
	for _, name := range issuerClaims {
		if _, ok := c[name]; ok {
			return fmt.Errorf("%s: %w: %q is set by the issuer", op, ErrReservedClaim, name)
		}
	}
	if err := checkReserved(c, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// checkReserved walks obj and every object nested inside it, including objects
// inside arrays, looking for keys that only this package may write.
func checkReserved(v any, path string) error {
	switch t := v.(type) {
	case []any:
		for i, e := range t {
			if err := checkReserved(e, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	default:
		obj, ok := asObject(v)
		if !ok {
			return nil
		}
		for k, e := range obj {
			p := joinPath(path, k)
			switch k {
			case sdKey, sdAlgKey, arrayElementKey:
				return fmt.Errorf("%w: %q", ErrReservedClaim, p)
			}
			if err := checkReserved(e, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// scopeNode is one level of a Scope resolved against a ClaimSet.
type scopeNode struct {
	// conceal is set when the claim itself is selectively disclosable.
	conceal bool
	// children holds nested claims to conceal, keyed by claim name.
	children map[string]*scopeNode
	// order is the order children were first named in the Scope.
	order []string
}

func newScopeNode() *scopeNode {
	return &scopeNode{children: map[string]*scopeNode{}}
}

func (n *scopeNode) child(name string) *scopeNode {
	c, ok := n.children[name]
	if !ok {
		c = newScopeNode()
		n.children[name] = c
		n.order = append(n.order, name)
	}
	return c
}

// resolve checks every entry of s against claims and returns the tree of
// claims to conceal. All invalid entries are reported in one error.
func (s Scope) resolve(claims ClaimSet) (*scopeNode, error) {
	const op = "Scope.resolve"
	root := newScopeNode()
	seen := make(map[string]bool, len(s))
	var result *multierror.Error
	for _, entry := range s {
		switch {
		case entry == "":
			result = multierror.Append(result, fmt.Errorf("%w: empty claim name", ErrInvalidScope))
			continue
		case seen[entry]:
			result = multierror.Append(result, fmt.Errorf("%w: %q listed more than once", ErrInvalidScope, entry))
			continue
		}
		seen[entry] = true

		segments, ok := resolvePath(claims, entry)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %q not found in claims", ErrInvalidScope, entry))
			continue
		}
		if isRegistered(segments[0]) {
			result = multierror.Append(result, fmt.Errorf("%w: registered claim %q can't be selectively disclosed", ErrInvalidScope, segments[0]))
			continue
		}

		n := root
		for _, seg := range segments {
			n = n.child(seg)
		}
		n.conceal = true
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return root, nil
}

// resolvePath finds path in obj and returns the claim names along it. A key
// that matches the remaining path literally wins over splitting it on dots.
func resolvePath(obj map[string]any, path string) ([]string, bool) {
	if _, ok := obj[path]; ok {
		return []string{path}, true
	}
	for i := 0; i < len(path); i++ {
		if path[i] != pathSeparator[0] {
			continue
		}
		head, rest := path[:i], path[i+1:]
		nested, ok := asObject(obj[head])
		if !ok {
			continue
		}
		if segments, ok := resolvePath(nested, rest); ok {
			return append([]string{head}, segments...), true
		}
	}
	return nil, false
}

func isRegistered(name string) bool {
	if name == "sub" {
		return true
	}
	for _, c := range issuerClaims {
		if c == name {
			return true
		}
	}
	return false
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case ClaimSet:
		return t, true
	default:
		return nil, false
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.Join([]string{prefix, name}, pathSeparator)
}
