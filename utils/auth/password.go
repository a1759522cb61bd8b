package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch means the password does not match the stored digest.
var ErrPasswordMismatch = errors.New("password does not match")

// HashLegacy returns the hex md5 digest the legacy schema stores.
//
// Single-round unsalted md5 is a known defect carried only for byte
// compatibility with existing rows; Verify also accepts bcrypt so credentials
// can be migrated without breaking logins.
func HashLegacy(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HashBcrypt generates a bcrypt hash for migrated credentials.
func HashBcrypt(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks password against stored, which may be either a bcrypt hash
// or a legacy md5 hex digest.
func Verify(stored, password string) error {
	if strings.HasPrefix(stored, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		if err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrPasswordMismatch
			}
			return err
		}
		return nil
	}

	digest := HashLegacy(password)
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(digest)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
