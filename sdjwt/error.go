// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package sdjwt

import (
	"errors"

	"github.com/hashicorp/vcissuer/jwt"
)

var (
	// these are caused by the claims or scope handed to Issue

	ErrInvalidScope   = errors.New("invalid disclosure scope")
	ErrReservedClaim  = errors.New("reserved claim name")
	ErrMissingSubject = errors.New("missing subject")
	ErrSerialization  = errors.New("claim value is not serializable")

	ErrInvalidParameter = errors.New("invalid parameter")

	// these are caused by issuer configuration

	ErrMissingIssuer            = errors.New("missing issuer")
	ErrUnsupportedAlgorithm     = jwt.ErrUnsupportedAlgorithm
	ErrInvalidKey               = jwt.ErrInvalidKey
	ErrUnsupportedHashAlgorithm = errors.New("unsupported hash algorithm")

	// these are returned while parsing issued output

	ErrInvalidDisclosure      = errors.New("invalid disclosure")
	ErrKeyBindingNotSupported = errors.New("key binding jwt not supported")

	// if this happens the system random source is broken

	ErrSaltGeneration = errors.New("salt generation failed")
)
