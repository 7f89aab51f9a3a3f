// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGenerateKeys will generate a test pub/priv key pair suitable for alg,
// PEM-encoded as PKIX (public) and PKCS #8 (private).
func TestGenerateKeys(t *testing.T, alg Alg) (pub, priv string) {
	t.Helper()
	require := require.New(t)

	var signer crypto.Signer
	switch alg {
	case EdDSA:
		_, k, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(err)
		signer = k
	case ES256, ES384, ES512:
		k, err := ecdsa.GenerateKey(curveFor(alg), rand.Reader)
		require.NoError(err)
		signer = k
	case RS256, RS384, RS512, PS256, PS384, PS512:
		k, err := rsa.GenerateKey(rand.Reader, minRSAKeyBits)
		require.NoError(err)
		signer = k
	default:
		require.FailNow("unsupported algorithm", "%s", alg)
	}

	{
		derBytes, err := x509.MarshalPKCS8PrivateKey(signer)
		require.NoError(err)

		pemBlock := &pem.Block{
			Type:  "PRIVATE KEY",
			Bytes: derBytes,
		}
		priv = string(pem.EncodeToMemory(pemBlock))
	}
	{
		derBytes, err := x509.MarshalPKIXPublicKey(signer.Public())
		require.NoError(err)

		pemBlock := &pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: derBytes,
		}
		pub = string(pem.EncodeToMemory(pemBlock))
	}

	return pub, priv
}

// TestSigningKey parses a PEM private key produced by TestGenerateKeys.
func TestSigningKey(t *testing.T, priv string) crypto.Signer {
	t.Helper()
	key, err := ParsePrivateKeyPEM([]byte(priv))
	require.NoError(t, err)
	return key
}
