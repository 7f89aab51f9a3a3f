// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// saltSize is the number of random bytes in a salt (128 bits).
const saltSize = 16

// Disclosure is the (salt, claim name, claim value) triple a holder presents
// to reveal one selectively disclosable claim.
type Disclosure struct {
	// Salt is the base64url-encoded random salt.
	Salt string
	// Name is the claim name.
	Name string
	// Value is the claim value. For a recursively disclosed object it is the
	// object with its own _sd digests in place of nested claims.
	Value any

	// Path is the dotted path of the claim from the top of the payload; it
	// equals Name for top level claims.
	Path string
	// Encoded is the base64url-encoded JSON array [Salt, Name, Value]. This is
	// the form holders append to the token.
	Encoded string
	// Digest is the hash of Encoded that appears in the _sd list.
	Digest string
}

// String returns the encoded disclosure.
func (d *Disclosure) String() string {
	return d.Encoded
}

// EncodeDisclosure serializes [salt, name, value] as JSON without HTML
// escaping and returns it base64url-encoded without padding.
func EncodeDisclosure(salt, name string, value any) (string, error) {
	const op = "EncodeDisclosure"
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{salt, name, value}); err != nil {
		return "", fmt.Errorf("%s: %w: claim %q: %w", op, ErrSerialization, name, err)
	}
	// Encoder always terminates the value with a newline.
	raw := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// ParseDisclosure decodes an encoded disclosure and computes its digest with h.
// Only object property disclosures of three elements are accepted.
func ParseDisclosure(encoded string, h HashAlg) (*Disclosure, error) {
	const op = "ParseDisclosure"
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidDisclosure, err)
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidDisclosure, err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("%s: %w: expected 3 elements, got %d", op, ErrInvalidDisclosure, len(parts))
	}

	d := &Disclosure{Encoded: encoded}
	if err := json.Unmarshal(parts[0], &d.Salt); err != nil {
		return nil, fmt.Errorf("%s: %w: salt must be a string", op, ErrInvalidDisclosure)
	}
	if err := json.Unmarshal(parts[1], &d.Name); err != nil {
		return nil, fmt.Errorf("%s: %w: claim name must be a string", op, ErrInvalidDisclosure)
	}
	if err := json.Unmarshal(parts[2], &d.Value); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidDisclosure, err)
	}
	d.Path = d.Name

	if d.Digest, err = DigestOf(h, encoded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// newSalt reads saltSize bytes from r and returns them base64url-encoded.
func newSalt(r io.Reader) (string, error) {
	const op = "newSalt"
	b := make([]byte, saltSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrSaltGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
