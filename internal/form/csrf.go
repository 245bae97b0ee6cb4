// internal/form/csrf.go
//
// Folio – Forms subsystem: stateless CSRF tokens.
//
// Context
//   Every rendered form embeds a hidden “csrf_token” input.  The server
//   verifies it on POST to ensure the request came from a form it rendered.
//   Tokens are stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – keyed with the site secret.
//
//   Verification checks the signature and that the timestamp is inside
//   MaxAge.  No server-side sessions are required.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

const (
	// CSRFField is the hidden input name.
	CSRFField = "csrf_token"

	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig
	maxSkew    = time.Minute
)

// CSRF issues and verifies tokens for one secret.
type CSRF struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCSRF returns a CSRF keyed with secret.  An empty secret is replaced by
// a random one, which means tokens do not survive a restart.
func NewCSRF(secret []byte, maxAge time.Duration) (*CSRF, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
	}
	if len(secret) < 32 {
		return nil, errors.New("csrf secret must be at least 32 bytes")
	}
	return &CSRF{secret: secret, maxAge: maxAge, now: time.Now}, nil
}

// Issue creates a new token.  Call once per form render.
func (c *CSRF) Issue() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok passes HMAC and age checks.
func (c *CSRF) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce, tsBytes, sig := raw[:16], raw[16:24], raw[24:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := c.now()
	if now.Sub(issued) > c.maxAge || issued.Sub(now) > maxSkew {
		return false
	}

	return hmac.Equal(sig, c.sign(nonce, tsBytes))
}

func (c *CSRF) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
