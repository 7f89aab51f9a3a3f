// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestOf(t *testing.T) {
	// Disclosure and digest from the IETF SD-JWT draft, which uses a space
	// after each comma in its JSON.
	got, err := DigestOf(SHA256, "WyIyR0xDNDJzS1F2ZUNmR2ZyeU5STjl3IiwgImdpdmVuX25hbWUiLCAiSm9obiJd")
	require.NoError(t, err)
	assert.Equal(t, "jsu9yVulwQQlhFlM_3JlzMaSFzglhQG0DpfayQwLUK4", got)

	sha384, err := DigestOf(SHA384, "abc")
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(sha384)
	require.NoError(t, err)
	assert.Len(t, raw, 48)

	_, err = DigestOf(HashAlg("md5"), "abc")
	require.ErrorIs(t, err, ErrUnsupportedHashAlgorithm)
}

func TestHashAlg_Validate(t *testing.T) {
	for _, h := range []HashAlg{SHA256, SHA384, SHA512} {
		require.NoError(t, h.Validate())
	}
	require.ErrorIs(t, HashAlg("SHA-256").Validate(), ErrUnsupportedHashAlgorithm)
	require.ErrorIs(t, HashAlg("").Validate(), ErrUnsupportedHashAlgorithm)
}

func TestEncodeDisclosure(t *testing.T) {
	t.Run("compact json", func(t *testing.T) {
		got, err := EncodeDisclosure("2GLC42sKQveCfGfryNRN9w", "given_name", "John")
		require.NoError(t, err)
		assert.Equal(t, "WyIyR0xDNDJzS1F2ZUNmR2ZyeU5STjl3IiwiZ2l2ZW5fbmFtZSIsIkpvaG4iXQ", got)

		digest, err := DigestOf(SHA256, got)
		require.NoError(t, err)
		assert.Equal(t, "8VHiz7qTXavxvpiTYDCSr_shkUO6qRcVXjkhEnt1os4", digest)
	})
	t.Run("no html escaping", func(t *testing.T) {
		got, err := EncodeDisclosure("s", "a<b", "x&y")
		require.NoError(t, err)
		raw, err := base64.RawURLEncoding.DecodeString(got)
		require.NoError(t, err)
		assert.Equal(t, `["s","a<b","x&y"]`, string(raw))
	})
	t.Run("object value", func(t *testing.T) {
		got, err := EncodeDisclosure("s", "address", map[string]any{"street": "Main St", "zip": 12345})
		require.NoError(t, err)
		raw, err := base64.RawURLEncoding.DecodeString(got)
		require.NoError(t, err)
		assert.Equal(t, `["s","address",{"street":"Main St","zip":12345}]`, string(raw))
	})
	t.Run("not serializable", func(t *testing.T) {
		_, err := EncodeDisclosure("s", "n", math.NaN())
		require.ErrorIs(t, err, ErrSerialization)

		_, err = EncodeDisclosure("s", "c", make(chan int))
		require.ErrorIs(t, err, ErrSerialization)
	})
}

func TestParseDisclosure(t *testing.T) {
	encoded, err := EncodeDisclosure("salt", "ip_addresses", []any{"192.168.0.1", "192.168.0.2"})
	require.NoError(t, err)

	d, err := ParseDisclosure(encoded, SHA256)
	require.NoError(t, err)
	assert.Equal(t, "salt", d.Salt)
	assert.Equal(t, "ip_addresses", d.Name)
	assert.Equal(t, "ip_addresses", d.Path)
	assert.Equal(t, []any{"192.168.0.1", "192.168.0.2"}, d.Value)
	assert.Equal(t, encoded, d.Encoded)
	assert.Equal(t, encoded, d.String())

	want, err := DigestOf(SHA256, encoded)
	require.NoError(t, err)
	assert.Equal(t, want, d.Digest)

	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }
	tests := []struct {
		name    string
		encoded string
		hash    HashAlg
		wantErr error
	}{
		{name: "not base64", encoded: "!!!", hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "not json", encoded: enc("nope"), hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "array element", encoded: enc(`["salt","value"]`), hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "numeric salt", encoded: enc(`[1,"a","b"]`), hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "numeric name", encoded: enc(`["s",1,"b"]`), hash: SHA256, wantErr: ErrInvalidDisclosure},
		{name: "bad hash", encoded: encoded, hash: HashAlg("sha-1"), wantErr: ErrUnsupportedHashAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDisclosure(tt.encoded, tt.hash)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewSalt(t *testing.T) {
	s, err := newSalt(bytes.NewReader(bytes.Repeat([]byte{0xff}, saltSize)))
	require.NoError(t, err)
	assert.Equal(t, "_____________________w", s)

	_, err = newSalt(bytes.NewReader([]byte{1, 2, 3}))
	require.ErrorIs(t, err, ErrSaltGeneration)

	_, err = newSalt(failingReader{})
	require.ErrorIs(t, err, ErrSaltGeneration)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
