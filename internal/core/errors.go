package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// validationError builds the error for a malformed repository definition.
// ident is whatever identifies the entry (url, ppa slug, or cloud name) and
// may be empty when the entry carries no identifier at all.
func validationError(ident string, message string) error {
	msg := message
	if ident != "" {
		msg = fmt.Sprintf("invalid package repository for '%s': %s", ident, message)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
