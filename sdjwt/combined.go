// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"fmt"
	"strings"
)

// Separator joins the token and disclosures in the combined format.
const Separator = "~"

// Combine returns token followed by the given disclosures, each terminated
// by Separator. Holders use it to present a subset of their disclosures.
func Combine(token string, disclosures ...*Disclosure) string {
	var sb strings.Builder
	sb.WriteString(token)
	sb.WriteString(Separator)
	for _, d := range disclosures {
		sb.WriteString(d.Encoded)
		sb.WriteString(Separator)
	}
	return sb.String()
}

// ParseCombined splits a combined format string into its token and
// disclosures, computing each digest with h. A missing trailing separator is
// tolerated; a trailing key binding JWT is not.
func ParseCombined(combined string, h HashAlg) (string, []*Disclosure, error) {
	const op = "ParseCombined"
	if err := h.Validate(); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	parts := strings.Split(combined, Separator)
	token := parts[0]
	if strings.Count(token, ".") != 2 {
		return "", nil, fmt.Errorf("%s: %w: token is not a compact JWS", op, ErrInvalidParameter)
	}

	rest := parts[1:]
	if n := len(rest); n > 0 {
		last := rest[n-1]
		switch {
		case last == "":
			rest = rest[:n-1]
		case strings.Contains(last, "."):
			return "", nil, fmt.Errorf("%s: %w", op, ErrKeyBindingNotSupported)
		}
	}

	disclosures := make([]*Disclosure, 0, len(rest))
	for _, encoded := range rest {
		if encoded == "" {
			return "", nil, fmt.Errorf("%s: %w: empty disclosure", op, ErrInvalidDisclosure)
		}
		d, err := ParseDisclosure(encoded, h)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", op, err)
		}
		disclosures = append(disclosures, d)
	}
	return token, disclosures, nil
}
