// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jwt_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hashicorp/vcissuer/jwt"
)

func ExampleNewStaticKeySet() {
	ctx := context.Background()

	pem, err := os.ReadFile("issuer_public_key.pem")
	if err != nil {
		log.Fatal(err)
	}

	keySet, err := jwt.NewStaticKeySet([]string{string(pem)}, jwt.WithAllowedAlgorithms(jwt.EdDSA))
	if err != nil {
		log.Fatal(err)
	}

	token := "eyJhbGciOiJFZERTQSIsImtpZCI6ImRpZDpleGFtcGxlOmlzc3VlciNrZXktMSIsInR5cCI6InZjK3NkLWp3dCJ9.e30.c2ln"
	claims, err := keySet.VerifySignature(ctx, token)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(claims)
}

func ExampleParsePrivateKeyPEM() {
	pem, err := os.ReadFile("issuer_private_key.pem")
	if err != nil {
		log.Fatal(err)
	}

	key, err := jwt.ParsePrivateKeyPEM(pem)
	if err != nil {
		log.Fatal(err)
	}

	if err := jwt.CheckSigningKey(jwt.EdDSA, key); err != nil {
		log.Fatal(err)
	}
}
