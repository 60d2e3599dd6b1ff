package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID, role string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseValidToken(t *testing.T) {
	userID := uuid.New()
	tokenString := signToken(t, testSecret, userID.String(), "OPERATOR", time.Now().Add(time.Hour))

	principal, err := NewParser(testSecret).Parse(tokenString)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if principal.UserID != userID {
		t.Errorf("UserID = %v, want %v", principal.UserID, userID)
	}
	if principal.Role != model.UserRoleOperator {
		t.Errorf("Role = %v, want OPERATOR", principal.Role)
	}
}

func TestParseInvalidTokens(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: signToken(t, "other-secret", userID, "ADMIN", time.Now().Add(time.Hour))},
		{name: "expired", token: signToken(t, testSecret, userID, "ADMIN", time.Now().Add(-time.Hour))},
		{name: "bad user id claim", token: signToken(t, testSecret, "not-a-uuid", "ADMIN", time.Now().Add(time.Hour))},
	}

	parser := NewParser(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.token)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
