package otesrv

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the password digest. The digest exists so the
// configured plaintext password is not compared byte-for-byte on every
// request; the sandbox holds only the derived key after startup.
const (
	credSaltSize    = 16
	credIterations  = 3
	credMemory      = 64 * 1024
	credParallelism = 4
	credKeySize     = 32
)

type credential struct {
	salt   []byte
	digest []byte
}

// newCredential derives an Argon2id digest from a password under a fresh
// random salt.
func newCredential(password string) (credential, error) {
	salt := make([]byte, credSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return credential{}, err
	}
	digest := argon2.IDKey([]byte(password), salt, credIterations, credMemory, credParallelism, credKeySize)
	return credential{salt: salt, digest: digest}, nil
}

// verify reports whether the password matches the stored digest, in
// constant time.
func (c credential) verify(password string) bool {
	probe := argon2.IDKey([]byte(password), c.salt, credIterations, credMemory, credParallelism, credKeySize)
	return subtle.ConstantTimeCompare(probe, c.digest) == 1
}
