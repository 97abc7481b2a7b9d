package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey marks a unique-index violation (coupon codes, warranty
// codes). Services surface it as a typed conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// translateError maps driver-level duplicate errors to ErrDuplicateKey.
// The sqlite driver reports unique violations as plain strings, so a
// substring match backs up gorm's typed error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") {
		return ErrDuplicateKey
	}
	return err
}
