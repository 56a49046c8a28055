package ledgerstate

import (
	"errors"
)

var (
	// ErrMalformedInput is returned if a byte buffer is shorter than one of its fields
	// declares, or if a length prefix exceeds the remaining bytes.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownOutputType is returned if a discriminant is not present in the
	// OutputRegistry during dispatch.
	ErrUnknownOutputType = errors.New("unknown output type")

	// ErrOutOfRange is returned if an invalid index is requested via an accessor.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidThreshold is returned by the strict validation if the signature
	// threshold of an Output exceeds the amount of its addresses.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrPayloadTooLarge is returned by the strict validation if the payload of an
	// NFTOutput exceeds MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("payload too large")
)
