package config_test

import (
	"testing"

	"github.com/saulo-duarte/socrates-lambda/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", "short_key")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("InitCrypto should panic with a short key")
			}
		}()

		config.InitCrypto()
	})

	t.Run("ValidKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", testKey)
		config.InitCrypto()

		if !config.CryptoEnabled() {
			t.Errorf("CryptoEnabled should be true after InitCrypto with a valid key")
		}
	})
}

func TestEncryptDecrypt(t *testing.T) {
	t.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := `{"state":"loaded","answers":{}}`

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("decrypted text %q does not match original %q", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("encryption is not randomized; ciphertexts should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("expected empty plaintext, got %q", decrypted)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, err := config.Decrypt("AAAA"); err == nil {
			t.Errorf("Decrypt should fail on truncated ciphertext")
		}
	})
}
