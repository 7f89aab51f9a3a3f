// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultType is the "typ" header of an issued credential.
const DefaultType = "vc+sd-jwt"

// Option defines a common functional options type which can be used in a
// variadic parameter pattern.
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil { // ignore any nil Options
			continue
		}
		o(opts)
	}
}

// issuerOptions is the set of available options for NewIssuer and Encode.
type issuerOptions struct {
	withIssuer  string
	withKeyID   string
	withType    string
	withHashAlg HashAlg
	withLogger  hclog.Logger
}

func issuerDefaults() issuerOptions {
	return issuerOptions{
		withType:    DefaultType,
		withHashAlg: SHA256,
		withLogger:  hclog.NewNullLogger(),
	}
}

func getIssuerOpts(opt ...Option) issuerOptions {
	opts := issuerDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// issueOptions is the set of available options for a single issuance. When
// given to NewIssuer they become defaults for every Issue call.
type issueOptions struct {
	withSubject   string
	withExpiry    time.Duration
	withNotBefore time.Time
	withAudience  []string
	withTokenID   bool
	withDecoys    int
	withShuffle   bool
}

func issueDefaults() issueOptions {
	return issueOptions{}
}

func getIssueOpts(opt ...Option) issueOptions {
	opts := issueDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithIssuer sets the "iss" claim. It is required by Encode; NewIssuer takes
// the issuer as a parameter and this option overrides it.
func WithIssuer(iss string) Option {
	return func(o interface{}) {
		if o, ok := o.(*issuerOptions); ok {
			o.withIssuer = iss
		}
	}
}

// WithKeyID sets the "kid" header that verifiers use to look up the
// issuer's public key.
func WithKeyID(keyID string) Option {
	return func(o interface{}) {
		if o, ok := o.(*issuerOptions); ok {
			o.withKeyID = keyID
		}
	}
}

// WithType overrides the "typ" header, which defaults to DefaultType.
func WithType(typ string) Option {
	return func(o interface{}) {
		if o, ok := o.(*issuerOptions); ok {
			o.withType = typ
		}
	}
}

// WithHashAlgorithm sets the digest algorithm for disclosures, which
// defaults to SHA256.
func WithHashAlgorithm(h HashAlg) Option {
	return func(o interface{}) {
		if o, ok := o.(*issuerOptions); ok {
			o.withHashAlg = h
		}
	}
}

// WithLogger provides an optional logger.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*issuerOptions); ok && l != nil {
			o.withLogger = l
		}
	}
}

// WithSubject sets the "sub" claim. A "sub" entry in the claim set must be
// absent or equal to sub.
func WithSubject(sub string) Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withSubject = sub
		}
	}
}

// WithExpiry sets the "exp" claim to the issued at time plus d.
func WithExpiry(d time.Duration) Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withExpiry = d
		}
	}
}

// WithNotBefore sets the "nbf" claim.
func WithNotBefore(t time.Time) Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withNotBefore = t
		}
	}
}

// WithAudience sets the "aud" claim. A single audience is encoded as a
// string, several as an array.
func WithAudience(aud ...string) Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withAudience = aud
		}
	}
}

// WithTokenID adds a random UUID as the "jti" claim.
func WithTokenID() Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withTokenID = true
		}
	}
}

// WithDecoyDigests adds n decoy digests to the top level _sd list and to every
// nested _sd list. Lists that carry decoys are sorted so decoys can't be told
// apart by position.
func WithDecoyDigests(n int) Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withDecoys = n
		}
	}
}

// WithShuffledDisclosures returns the disclosures of a credential in random
// order instead of issuance order.
func WithShuffledDisclosures() Option {
	return func(o interface{}) {
		if o, ok := o.(*issueOptions); ok {
			o.withShuffle = true
		}
	}
}
