// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
Package sdjwt issues Selective Disclosure JWTs (SD-JWT).

An SD-JWT is a signed JWT whose payload carries digests in place of some of
its claims. For every such claim the issuer creates a Disclosure: the JSON
array [salt, claim name, claim value], base64url-encoded. The digest is the
base64url-encoded hash of that string and is stored in the "_sd" array of the
object that held the claim. The hash algorithm is named by "_sd_alg".

	{
	  "_sd": ["X9yH0Ajrdm1Oij4tWso9UzzKJvPoDxwmuEcO3XAdRC0", ...],
	  "_sd_alg": "sha-256",
	  "iss": "did:example:issuer",
	  "sub": "did:example:subject",
	  "iat": 1700000000
	}

The Disclosures are handed to the holder with the token, in the combined
format:

	<JWT>~<Disclosure 1>~<Disclosure 2>~...~<Disclosure N>~

A holder reveals a claim by presenting its Disclosure; claims whose
Disclosures are withheld stay hidden, and the signature is unaffected either
way. Each salt is 128 random bits, so issuing the same claims twice produces
unrelated digests.

Example usage:

	issuer, err := sdjwt.NewIssuer("did:example:issuer", jwt.EdDSA, key,
		sdjwt.WithKeyID("did:example:issuer#key-1"),
	)
	cred, err := issuer.Issue(claims, sdjwt.Scope{"given_name", "address.street"},
		sdjwt.WithSubject("did:example:subject"),
		sdjwt.WithExpiry(24*time.Hour),
	)
	fmt.Println(cred.Serialize())

This package only issues. It does not resolve presented disclosures back into
claims and does not create or check key binding JWTs.
*/
package sdjwt
