// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// minRSAKeyBits is the smallest RSA modulus accepted for signing.
const minRSAKeyBits = 2048

// ParsePrivateKeyPEM parses an RSA, ECDSA or Ed25519 private key from PEM.
// PKCS #8 ("PRIVATE KEY"), SEC 1 ("EC PRIVATE KEY") and PKCS #1
// ("RSA PRIVATE KEY") blocks are accepted.
func ParsePrivateKeyPEM(data []byte) (crypto.Signer, error) {
	const op = "ParsePrivateKeyPEM"
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s: %w: no PEM block found", op, ErrInvalidKey)
	}

	var (
		rawKey any
		err    error
	)
	switch block.Type {
	case "PRIVATE KEY":
		rawKey, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		rawKey, err = x509.ParseECPrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		rawKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("%s: %w: unexpected PEM block type %q", op, ErrInvalidKey, block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidKey, err)
	}

	switch k := rawKey.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	case ed25519.PrivateKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%s: %w: unsupported private key type %T", op, ErrInvalidKey, rawKey)
	}
}

// ParsePublicKeyPEM is used to parse RSA, ECDSA and Ed25519 public keys from
// PEMs. The PEM must be of PKIX public key or x509 certificate form.
// It returns a *rsa.PublicKey, *ecdsa.PublicKey or ed25519.PublicKey.
func ParsePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	const op = "ParsePublicKeyPEM"
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s: %w: no PEM block found", op, ErrInvalidKey)
	}

	rawKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		cert, certErr := x509.ParseCertificate(block.Bytes)
		if certErr != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidKey, err)
		}
		rawKey = cert.PublicKey
	}

	switch k := rawKey.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%s: %w: data does not contain any valid RSA, ECDSA or Ed25519 public keys", op, ErrInvalidKey)
	}
}

// CheckSigningKey verifies that key can produce signatures for alg: Ed25519
// for EdDSA, a curve matching the ES variant, and an RSA key of at least
// 2048 bits for RS and PS variants.
func CheckSigningKey(alg Alg, key crypto.Signer) error {
	const op = "CheckSigningKey"
	if err := SupportedSigningAlgorithm(alg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if key == nil {
		return fmt.Errorf("%s: %w: nil private key", op, ErrInvalidKey)
	}

	switch alg {
	case EdDSA:
		k, ok := key.(ed25519.PrivateKey)
		if !ok || len(k) != ed25519.PrivateKeySize {
			return fmt.Errorf("%s: %w: %s requires an Ed25519 key, got %T", op, ErrInvalidKey, alg, key)
		}
	case ES256, ES384, ES512:
		k, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return fmt.Errorf("%s: %w: %s requires an ECDSA key, got %T", op, ErrInvalidKey, alg, key)
		}
		if k.Curve == nil {
			return fmt.Errorf("%s: %w: ECDSA key has no curve", op, ErrInvalidKey)
		}
		if k.Curve != curveFor(alg) {
			return fmt.Errorf("%s: %w: %s requires curve %s, got %s", op, ErrInvalidKey, alg, curveFor(alg).Params().Name, k.Curve.Params().Name)
		}
	case RS256, RS384, RS512, PS256, PS384, PS512:
		k, ok := key.(*rsa.PrivateKey)
		if !ok {
			return fmt.Errorf("%s: %w: %s requires an RSA key, got %T", op, ErrInvalidKey, alg, key)
		}
		if err := k.Validate(); err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidKey, err)
		}
		if k.N.BitLen() < minRSAKeyBits {
			return fmt.Errorf("%s: %w: RSA key must be at least %d bits", op, ErrInvalidKey, minRSAKeyBits)
		}
	}
	return nil
}

func curveFor(alg Alg) elliptic.Curve {
	switch alg {
	case ES384:
		return elliptic.P384()
	case ES512:
		return elliptic.P521()
	default:
		return elliptic.P256()
	}
}
