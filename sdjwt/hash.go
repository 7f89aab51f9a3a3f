// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"crypto"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512
	"encoding/base64"
	"fmt"
)

// HashAlg is a digest algorithm name as it appears in the _sd_alg claim. Names
// come from the IANA "Named Information Hash Algorithm" registry.
type HashAlg string

const (
	SHA256 HashAlg = "sha-256"
	SHA384 HashAlg = "sha-384"
	SHA512 HashAlg = "sha-512"
)

var supportedHashAlgorithms = map[HashAlg]crypto.Hash{
	SHA256: crypto.SHA256,
	SHA384: crypto.SHA384,
	SHA512: crypto.SHA512,
}

// Validate returns an error if h is not a supported digest algorithm.
func (h HashAlg) Validate() error {
	const op = "HashAlg.Validate"
	if _, ok := supportedHashAlgorithms[h]; !ok {
		return fmt.Errorf("%s: %w %q", op, ErrUnsupportedHashAlgorithm, h)
	}
	return nil
}

// DigestOf returns the base64url-encoded digest of an encoded disclosure,
// computed over its ASCII bytes.
func DigestOf(h HashAlg, encoded string) (string, error) {
	const op = "DigestOf"
	ch, ok := supportedHashAlgorithms[h]
	if !ok {
		return "", fmt.Errorf("%s: %w %q", op, ErrUnsupportedHashAlgorithm, h)
	}
	hasher := ch.New()
	_, _ = hasher.Write([]byte(encoded)) // hash.Hash never returns an error
	return base64.RawURLEncoding.EncodeToString(hasher.Sum(nil)), nil
}
