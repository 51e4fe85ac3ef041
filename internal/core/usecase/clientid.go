package usecase

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// ErrorClientID replaces the client id of documents whose processing faulted.
	ErrorClientID = "ERROR"

	minClientIDLen = 3
)

// ResolveClientID takes the token before the first underscore of the base file
// name, or synthesizes CLIENT_XXXXXX when there is no usable token.
func ResolveClientID(filename string) string {
	return resolveClientID(filename, uuid.NewString)
}

func resolveClientID(filename string, newID func() string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	if token, _, found := strings.Cut(base, "_"); found && len(token) >= minClientIDLen {
		return token
	}
	hex := strings.ReplaceAll(newID(), "-", "")
	if len(hex) > 6 {
		hex = hex[:6]
	}
	return "CLIENT_" + strings.ToUpper(hex)
}
