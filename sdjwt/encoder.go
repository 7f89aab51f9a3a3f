// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sort"
)

// encoder replaces selectively disclosable claims with digests. It holds no
// state between calls to conceal.
type encoder struct {
	hashAlg HashAlg
	salts   io.Reader
	decoys  int
}

// conceal returns a copy of obj in which the claims named by node are replaced
// by digests under _sd, along with the disclosures for those claims. Nested
// objects are concealed before the claim holding them, so their disclosures
// come first. obj is not modified.
func (e *encoder) conceal(obj map[string]any, node *scopeNode, prefix string) (map[string]any, []*Disclosure, error) {
	const op = "encoder.conceal"
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}

	var (
		disclosures []*Disclosure
		digests     []string
	)
	for _, name := range node.order {
		child := node.children[name]
		path := joinPath(prefix, name)
		value := out[name]

		if len(child.order) > 0 {
			nested, ok := asObject(value)
			if !ok {
				return nil, nil, fmt.Errorf("%s: %w: %q is not an object", op, ErrInvalidScope, path)
			}
			concealed, nestedDisclosures, err := e.conceal(nested, child, path)
			if err != nil {
				return nil, nil, err
			}
			disclosures = append(disclosures, nestedDisclosures...)
			value = concealed
			out[name] = concealed
		}

		if child.conceal {
			d, err := e.disclose(name, value, path)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", op, err)
			}
			disclosures = append(disclosures, d)
			digests = append(digests, d.Digest)
			delete(out, name)
		}
	}

	if e.decoys > 0 && (prefix == "" || len(digests) > 0) {
		for i := 0; i < e.decoys; i++ {
			decoy, err := e.decoy()
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", op, err)
			}
			digests = append(digests, decoy)
		}
		sort.Strings(digests)
	}
	if len(digests) > 0 {
		out[sdKey] = digests
	}
	return out, disclosures, nil
}

func (e *encoder) disclose(name string, value any, path string) (*Disclosure, error) {
	const op = "encoder.disclose"
	salt, err := newSalt(e.salts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	encoded, err := EncodeDisclosure(salt, name, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	digest, err := DigestOf(e.hashAlg, encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Disclosure{
		Salt:    salt,
		Name:    name,
		Value:   value,
		Path:    path,
		Encoded: encoded,
		Digest:  digest,
	}, nil
}

// decoy returns the digest of a fresh salt. No disclosure exists for it.
func (e *encoder) decoy() (string, error) {
	const op = "encoder.decoy"
	salt, err := newSalt(e.salts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	digest, err := DigestOf(e.hashAlg, salt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return digest, nil
}

// shuffle permutes ds in place (Fisher-Yates) using randomness from r.
func shuffle(r io.Reader, ds []*Disclosure) error {
	const op = "shuffle"
	for i := len(ds) - 1; i > 0; i-- {
		j, err := rand.Int(r, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrSaltGeneration, err)
		}
		k := j.Int64()
		ds[i], ds[k] = ds[k], ds[i]
	}
	return nil
}
