// Package adminauth guards mutating gallery operations. The shared-key check
// lives behind the Authenticator interface so a real credential scheme can
// replace it without touching any handler.
package adminauth

import (
	"crypto/subtle"

	"github.com/eventlens/eventlens/pkg/errcodes"
)

// Authenticator authorizes an admin operation by its presented key.
type Authenticator interface {
	Authorize(key string) error
}

// KeyAuthenticator compares the presented key against a single configured
// admin key.
type KeyAuthenticator struct {
	key string
}

func NewKeyAuthenticator(key string) *KeyAuthenticator {
	return &KeyAuthenticator{key: key}
}

// Authorize returns an InvalidAdminKey error unless key matches the
// configured one. An empty configured key denies everything rather than
// letting a misconfigured deployment run open.
func (a *KeyAuthenticator) Authorize(key string) error {
	if a.key == "" {
		return errcodes.InvalidAdminKey()
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(a.key)) != 1 {
		return errcodes.InvalidAdminKey()
	}
	return nil
}
