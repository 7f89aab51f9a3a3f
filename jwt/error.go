// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt

import "errors"

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrInvalidKey           = errors.New("invalid key")
	ErrInvalidSignature     = errors.New("invalid signature")
)
