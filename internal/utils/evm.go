package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var evmAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsEVMAddress reports whether s looks like an EVM-compatible address
// (0x followed by 40 hex characters). Checksum casing is not enforced.
func IsEVMAddress(s string) bool {
	return evmAddressRe.MatchString(s)
}

// EVMAddressValidator is the gin binding validator backing the `evm_address`
// tag on DTO fields.
func EVMAddressValidator(fl validator.FieldLevel) bool {
	return IsEVMAddress(fl.Field().String())
}
