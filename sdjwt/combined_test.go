// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp/vcissuer/jwt"
)

func TestCombine(t *testing.T) {
	d1 := &Disclosure{Encoded: "WyJhIiwiYiIsImMiXQ"}
	d2 := &Disclosure{Encoded: "WyJkIiwiZSIsImYiXQ"}

	assert.Equal(t, "h.p.s~", Combine("h.p.s"))
	assert.Equal(t, "h.p.s~WyJhIiwiYiIsImMiXQ~WyJkIiwiZSIsImYiXQ~", Combine("h.p.s", d1, d2))
}

func TestCredential_Serialize(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	i, _ := testIssuer(t, jwt.EdDSA)

	cred, err := i.Issue(testClaims(), Scope{"given_name", "email", "address.region"})
	require.NoError(err)

	combined := cred.Serialize()
	assert.True(strings.HasPrefix(combined, cred.Token+Separator))
	assert.True(strings.HasSuffix(combined, Separator))
	assert.Equal(len(cred.Disclosures)+2, len(strings.Split(combined, Separator)))

	token, disclosures, err := ParseCombined(combined, SHA256)
	require.NoError(err)
	assert.Equal(cred.Token, token)
	require.Len(disclosures, len(cred.Disclosures))
	for idx, d := range disclosures {
		assert.Equal(cred.Disclosures[idx].Encoded, d.Encoded)
		assert.Equal(cred.Disclosures[idx].Digest, d.Digest)
		assert.Equal(cred.Disclosures[idx].Name, d.Name)
	}
}

func TestParseCombined(t *testing.T) {
	enc, err := EncodeDisclosure("salt", "given_name", "John")
	require.NoError(t, err)
	const token = "eyJhbGciOiJFZERTQSJ9.e30.c2ln"

	tests := []struct {
		name     string
		combined string
		hash     HashAlg
		wantN    int
		wantErr  error
	}{
		{name: "token only", combined: token + "~", hash: SHA256},
		{name: "bare token", combined: token, hash: SHA256},
		{name: "one disclosure", combined: token + "~" + enc + "~", hash: SHA256, wantN: 1},
		{name: "no trailing separator", combined: token + "~" + enc, hash: SHA256, wantN: 1},
		{name: "key binding", combined: token + "~" + enc + "~" + token, hash: SHA256, wantErr: ErrKeyBindingNotSupported},
		{name: "empty disclosure", combined: token + "~~" + enc + "~", hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "bad disclosure", combined: token + "~bm9wZQ~", hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "not a jws", combined: "abc~" + enc + "~", hash: SHA256, wantErr: ErrInvalidParameter},
		{name: "bad hash", combined: token + "~", hash: HashAlg("sha3"), wantErr: ErrUnsupportedHashAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotToken, got, err := ParseCombined(tt.combined, tt.hash)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, token, gotToken)
			assert.Len(t, got, tt.wantN)
		})
	}
}
