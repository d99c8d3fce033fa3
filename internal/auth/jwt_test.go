package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/socrates-lambda/internal/auth"
)

const testSecret = "a-long-enough-secret-for-signing-test-tokens"
const testUserID = "user-123"
const testRole = "student"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() should panic when JWT_SECRET is empty")
			}
		}()

		auth.Init()
	})

	t.Run("ValidSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		auth.Init()
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, 5*time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed: %v", err)
		}

		if claims.UserID != testUserID {
			t.Errorf("UserID = %s, want %s", claims.UserID, testUserID)
		}
		if claims.Role != testRole {
			t.Errorf("Role = %s, want %s", claims.Role, testRole)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("err = %v, want %v", err, jwt.ErrTokenExpired)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		t.Setenv("JWT_SECRET", "a-different-secret-than-the-signer-used")
		auth.Init()
		defer func() {
			t.Setenv("JWT_SECRET", testSecret)
			auth.Init()
		}()

		_, err = auth.ValidateJWT(tokenStr)
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("err = %v, want %v", err, jwt.ErrTokenSignatureInvalid)
		}
	})
}
