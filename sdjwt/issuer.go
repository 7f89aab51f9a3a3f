// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"crypto"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"

	"github.com/hashicorp/vcissuer/jwt"
)

// Issuer creates selective disclosure credentials signed with one key. An
// Issuer is immutable and safe for concurrent use.
type Issuer struct {
	issuer  string
	alg     jwt.Alg
	key     crypto.Signer
	keyID   string
	typ     string
	hashAlg HashAlg
	logger  hclog.Logger

	// defaults are issue options given to NewIssuer
	defaults []Option
	signer   jose.Signer

	// these are overwritten for testing
	now   func() time.Time
	salts io.Reader
	genID func() (string, error)
}

// Credential is an issued token plus the disclosures for its selectively
// disclosable claims. The disclosures are not part of Token; they are handed
// to the holder alongside it.
type Credential struct {
	// Token is the compact serialized JWS.
	Token string
	// Disclosures are in issuance order.
	Disclosures []*Disclosure
}

// NewIssuer creates an Issuer that signs with key using alg. The algorithm is
// checked before the key or any other parameter.
//
// Supported options:
//   - WithIssuer
//   - WithKeyID
//   - WithType
//   - WithHashAlgorithm
//   - WithLogger
//
// Issue options (WithSubject, WithExpiry, WithNotBefore, WithAudience,
// WithTokenID, WithDecoyDigests, WithShuffledDisclosures) are accepted too and
// become defaults for every Issue call.
func NewIssuer(issuer string, alg jwt.Alg, key crypto.Signer, opt ...Option) (*Issuer, error) {
	const op = "NewIssuer"
	if err := jwt.SupportedSigningAlgorithm(alg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := getIssuerOpts(opt...)
	if opts.withIssuer != "" {
		issuer = opts.withIssuer
	}
	i := &Issuer{
		issuer:   issuer,
		alg:      alg,
		key:      key,
		keyID:    opts.withKeyID,
		typ:      opts.withType,
		hashAlg:  opts.withHashAlg,
		logger:   opts.withLogger,
		defaults: opt,
		now:      time.Now,
		salts:    rand.Reader,
		genID:    uuid.GenerateUUID,
	}
	if err := i.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	signer, err := i.newSigner()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	i.signer = signer
	return i, nil
}

// Encode issues a single credential. The issuer identifier must be supplied
// with WithIssuer; every other option of NewIssuer and Issue is accepted.
func Encode(claims ClaimSet, scope Scope, key crypto.Signer, alg jwt.Alg, keyID string, opt ...Option) (*Credential, error) {
	const op = "Encode"
	opts := append([]Option{WithKeyID(keyID)}, opt...)
	i, err := NewIssuer("", alg, key, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := i.Issue(claims, scope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (i *Issuer) validate() error {
	const op = "Issuer.validate"
	var errs []error
	if i.issuer == "" {
		errs = append(errs, ErrMissingIssuer)
	}
	if err := i.hashAlg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := jwt.CheckSigningKey(i.alg, i.key); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}
	return nil
}

func (i *Issuer) newSigner() (jose.Signer, error) {
	const op = "Issuer.newSigner"
	sOpts := &jose.SignerOptions{}
	if i.typ != "" {
		sOpts = sOpts.WithType(jose.ContentType(i.typ))
	}
	if i.keyID != "" {
		sOpts = sOpts.WithHeader(jose.HeaderKey("kid"), i.keyID)
	}
	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: jose.SignatureAlgorithm(i.alg),
		Key:       i.key,
	}, sOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidKey, err)
	}
	return signer, nil
}

// Issue conceals the claims named by scope and signs the result. Options
// override the defaults given to NewIssuer for this call only.
//
// Supported options:
//   - WithSubject
//   - WithExpiry
//   - WithNotBefore
//   - WithAudience
//   - WithTokenID
//   - WithDecoyDigests
//   - WithShuffledDisclosures
//
// Either a Credential or an error is returned, never both.
func (i *Issuer) Issue(claims ClaimSet, scope Scope, opt ...Option) (*Credential, error) {
	const op = "Issuer.Issue"
	all := make([]Option, 0, len(i.defaults)+len(opt))
	all = append(all, i.defaults...)
	opts := getIssueOpts(append(all, opt...)...)
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := claims.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tree, err := scope.resolve(claims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subject, err := subjectOf(claims, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enc := &encoder{hashAlg: i.hashAlg, salts: i.salts, decoys: opts.withDecoys}
	payload, disclosures, err := enc.conceal(claims, tree, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if opts.withShuffle {
		if err := shuffle(i.salts, disclosures); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := i.addRegisteredClaims(payload, subject, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrSerialization, err)
	}
	token, err := i.sign(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i.logger.Debug("issued credential",
		"alg", i.alg,
		"kid", i.keyID,
		"disclosures", len(disclosures),
		"decoys", opts.withDecoys,
	)
	return &Credential{Token: token, Disclosures: disclosures}, nil
}

func (i *Issuer) addRegisteredClaims(payload map[string]any, subject string, opts issueOptions) error {
	const op = "Issuer.addRegisteredClaims"
	now := i.now().UTC()
	payload["iss"] = i.issuer
	payload["sub"] = subject
	payload["iat"] = now.Unix()
	payload[sdAlgKey] = string(i.hashAlg)
	if opts.withExpiry > 0 {
		payload["exp"] = now.Add(opts.withExpiry).Unix()
	}
	if !opts.withNotBefore.IsZero() {
		payload["nbf"] = opts.withNotBefore.Unix()
	}
	switch len(opts.withAudience) {
	case 0:
	case 1:
		payload["aud"] = opts.withAudience[0]
	default:
		payload["aud"] = opts.withAudience
	}
	if opts.withTokenID {
		id, err := i.genID()
		if err != nil {
			return fmt.Errorf("%s: failed to generate token id: %w", op, err)
		}
		payload["jti"] = id
	}
	return nil
}

func (i *Issuer) sign(payload []byte) (string, error) {
	const op = "Issuer.sign"
	jws, err := i.signer.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidKey, err)
	}
	token, err := jws.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("%s: failed to serialize token: %w", op, err)
	}
	return token, nil
}

func (o issueOptions) validate() error {
	const op = "issueOptions.validate"
	var errs []error
	if o.withExpiry < 0 {
		errs = append(errs, fmt.Errorf("%w: negative expiry %s", ErrInvalidParameter, o.withExpiry))
	}
	if o.withDecoys < 0 {
		errs = append(errs, fmt.Errorf("%w: negative decoy count %d", ErrInvalidParameter, o.withDecoys))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}
	return nil
}

// subjectOf returns the "sub" claim. A "sub" in claims must be a string and
// must agree with WithSubject when both are given; it is never overwritten.
func subjectOf(claims ClaimSet, opts issueOptions) (string, error) {
	const op = "subjectOf"
	v, ok := claims["sub"]
	if !ok {
		if opts.withSubject == "" {
			return "", fmt.Errorf("%s: %w", op, ErrMissingSubject)
		}
		return opts.withSubject, nil
	}
	sub, ok := v.(string)
	switch {
	case !ok:
		return "", fmt.Errorf("%s: %w: \"sub\" claim must be a string, got %T", op, ErrReservedClaim, v)
	case opts.withSubject != "" && sub != opts.withSubject:
		return "", fmt.Errorf("%s: %w: \"sub\" claim %q conflicts with subject %q", op, ErrReservedClaim, sub, opts.withSubject)
	case sub == "":
		return "", fmt.Errorf("%s: %w: \"sub\" claim is empty", op, ErrMissingSubject)
	}
	return sub, nil
}

// Serialize returns the credential in combined format for issuance: the token
// followed by every disclosure, each terminated by "~".
func (c *Credential) Serialize() string {
	return Combine(c.Token, c.Disclosures...)
}

// Disclosure returns the disclosure for the claim at path.
func (c *Credential) Disclosure(path string) (*Disclosure, bool) {
	for _, d := range c.Disclosures {
		if d.Path == path {
			return d, true
		}
	}
	return nil, false
}
