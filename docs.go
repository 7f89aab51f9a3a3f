// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// vcissuer provides packages for issuing verifiable credentials as Selective
// Disclosure JWTs (SD-JWT).
//
// Package sdjwt creates the credentials: it conceals the claims named by a
// scope behind salted digests, signs the result and returns the token with
// its disclosures. Package jwt holds the signing algorithms, PEM key parsing
// and a static key set for checking issued tokens.
//
// See examples/cli for a program that issues a credential from a key file
// and a JSON request.
package vcissuer
