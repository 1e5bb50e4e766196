// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

import (
	"github.com/pkg/errors"
)

// Error returns the error status of the BDD.
func (b *store) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if there was an error during a computation.
func (b *store) Errored() bool {
	return b.error != nil
}

func (b *store) seterror(format string, a ...interface{}) Node {
	err := errors.Errorf(format, a...)
	if b.error != nil {
		b.error = errors.Wrap(b.error, err.Error())
		return nil
	}
	b.error = err
	b.log.WithError(err).Debug("bdd error")
	return nil
}
