package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func TestGenerateJWT(t *testing.T) {
	tests := []struct {
		name           string
		secret         []byte
		expirationTime time.Time
		expectError    bool
	}{
		{
			name:           "Valid Token",
			secret:         testSecret,
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Expired Token is still issued",
			secret:         testSecret,
			expirationTime: time.Now().Add(-time.Hour),
		},
		{
			name:           "Missing secret",
			expirationTime: time.Now().Add(time.Hour),
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := NewJWTService(tt.secret).GenerateJWT(RoleAdmin, tt.expirationTime)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name        string
		tokenString string
		setup       func() string
		expectError bool
	}{
		{
			name: "Valid Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(RoleAdmin, time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name:        "Invalid Token",
			tokenString: "invalid.token.string",
			expectError: true,
		},
		{
			name: "Expired Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(RoleAdmin, time.Now().Add(-time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Other secret",
			setup: func() string {
				token, _ := NewJWTService([]byte("other")).GenerateJWT(RoleAdmin, time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Missing role claim",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
					Issuer:    issuer,
				})
				signedToken, _ := token.SignedString(testSecret)
				return signedToken
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := tt.tokenString
			if tt.setup != nil {
				tokenString = tt.setup()
			}

			claims, err := jwtService.ValidateToken(tokenString)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, RoleAdmin, claims.Role)
			}
		})
	}
}
