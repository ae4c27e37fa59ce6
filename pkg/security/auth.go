package security

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CheckCredentials verifies the submitted pair against the configured admin
// credentials. When the configured password looks like a bcrypt hash it is
// compared as one; otherwise both values are compared in constant time.
func CheckCredentials(username, password, adminUsername, adminPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(adminUsername)) == 1

	if strings.HasPrefix(adminPassword, "$2") {
		passOK := bcrypt.CompareHashAndPassword([]byte(adminPassword), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1
	return userOK && passOK
}

// GenerateJWT issues an HS256 token carrying the username with the given
// lifetime.
func GenerateJWT(username string, secret []byte, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
