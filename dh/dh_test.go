package dh

import (
	"crypto/rand"
	"testing"

	"github.com/silverline-crypto/mpctoolkit/field"
)

func TestSharedSecretAgrees(t *testing.T) {
	g := field.IETFGroup2Generator()

	alice, err := GenerateKeyPair(rand.Reader, g)
	if err != nil {
		t.Fatal(err)
	}
	bob, err := GenerateKeyPair(rand.Reader, g)
	if err != nil {
		t.Fatal(err)
	}

	aliceShared := SharedSecret(alice.Private, bob.Public)
	bobShared := SharedSecret(bob.Private, alice.Public)

	if !aliceShared.Equal(bobShared) {
		t.Fatalf("shared secrets disagree: alice=%s bob=%s", aliceShared, bobShared)
	}
}
