// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package jwt provides the asymmetric signing algorithms and key handling used
// to sign credentials, and a KeySet for verifying their signatures.
package jwt
