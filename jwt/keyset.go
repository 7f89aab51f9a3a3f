// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt

import (
	"context"
	"crypto"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4/jwt"
)

// KeySet represents a set of keys that can be used to verify the signatures of JWTs.
type KeySet interface {
	// VerifySignature parses the given JWT, verifies its signature, and returns the claims in its payload.
	VerifySignature(ctx context.Context, token string) (claims map[string]interface{}, err error)
}

// StaticKeySet verifies JWT signatures using local PEM-encoded public keys.
type StaticKeySet struct {
	publicKeys []crypto.PublicKey
	algs       []Alg
}

// NewStaticKeySet returns a KeySet that verifies JWT signatures using PEM-encoded public keys.
// The given publicKeys must be of PEM-encoded x509 certificate or PKIX public key forms.
//
// Supported options:
//   - WithAllowedAlgorithms
func NewStaticKeySet(publicKeys []string, opt ...Option) (*StaticKeySet, error) {
	const op = "NewStaticKeySet"
	if len(publicKeys) == 0 {
		return nil, fmt.Errorf("%s: %w: no public keys provided", op, ErrInvalidKey)
	}
	opts := getConfigOpts(opt...)
	if err := SupportedSigningAlgorithm(opts.withAllowedAlgorithms...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	parsedPublicKeys := make([]crypto.PublicKey, 0, len(publicKeys))
	for _, k := range publicKeys {
		key, err := ParsePublicKeyPEM([]byte(k))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		parsedPublicKeys = append(parsedPublicKeys, key)
	}

	return &StaticKeySet{
		publicKeys: parsedPublicKeys,
		algs:       opts.withAllowedAlgorithms,
	}, nil
}

// VerifySignature parses the given JWT, verifies its signature using local PEM-encoded public keys,
// and returns the claims in its payload. The given JWT must be of the JWS compact serialization form.
func (ks *StaticKeySet) VerifySignature(_ context.Context, token string) (map[string]interface{}, error) {
	const op = "StaticKeySet.VerifySignature"
	parsedJWT, err := jwt.ParseSigned(token, joseAlgs(ks.algs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var valid bool
	allClaims := map[string]interface{}{}
	for _, key := range ks.publicKeys {
		if err := parsedJWT.Claims(key, &allClaims); err == nil {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrInvalidSignature, errors.New("no known key successfully validated the token signature")))
	}

	return allClaims, nil
}
