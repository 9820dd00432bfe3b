//go:build !unix

package mmap

import (
	"errors"
	"os"
)

func osMap(_ *os.File, _ int) ([]byte, func([]byte) error, error) {
	return nil, nil, errors.ErrUnsupported
}

func osAdvise(_ []byte, _ AccessPattern) error {
	return nil
}
