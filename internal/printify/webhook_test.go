package printify_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"storefront_service/internal/printify"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"type":"product:published"}`)

	t.Run("ValidSignature", func(t *testing.T) {
		assert.True(t, printify.VerifySignature("secret", body, sign("secret", body)))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		assert.False(t, printify.VerifySignature("secret", body, sign("other", body)))
	})

	t.Run("TamperedBody", func(t *testing.T) {
		assert.False(t, printify.VerifySignature("secret", []byte(`{"type":"x"}`), sign("secret", body)))
	})

	t.Run("EmptySecretRejects", func(t *testing.T) {
		assert.False(t, printify.VerifySignature("", body, sign("", body)))
	})

	t.Run("EmptySignatureRejects", func(t *testing.T) {
		assert.False(t, printify.VerifySignature("secret", body, ""))
	})
}
