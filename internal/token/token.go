package token

import (
	"crypto/rand"
	"encoding/base64"
)

// NewCancelToken returns an opaque URL-safe token. Holding it is the only
// authority needed to cancel the appointment it was issued for, so it has to
// be unguessable: 32 random bytes, base64url without padding.
func NewCancelToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in no state to serve.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
