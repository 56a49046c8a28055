package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/mr-tron/base58"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

// region AssetID //////////////////////////////////////////////////////////////////////////////////////////////////////

// AssetIDLength contains the amount of bytes that a marshaled version of the AssetID contains.
const AssetIDLength = 32

// AssetID is the marker that identifies which asset a TransferableOutput carries.
type AssetID [AssetIDLength]byte

// EmptyAssetID represents the zero-value of an AssetID.
var EmptyAssetID AssetID

// AssetIDFromBytes unmarshals an AssetID from a sequence of bytes.
func AssetIDFromBytes(data []byte) (assetID AssetID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if assetID, err = AssetIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AssetID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AssetIDFromBase58EncodedString creates an AssetID from a base58 encoded string.
func AssetIDFromBase58EncodedString(base58String string) (assetID AssetID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded AssetID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if assetID, _, err = AssetIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse AssetID from bytes: %w", err)
		return
	}

	return
}

// AssetIDFromMarshalUtil unmarshals an AssetID using a MarshalUtil (for easier unmarshaling).
func AssetIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (assetID AssetID, err error) {
	assetIDBytes, err := marshalUtil.ReadBytes(AssetIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse AssetID (%v): %w", err, ErrMalformedInput)
		return
	}
	copy(assetID[:], assetIDBytes)

	return
}

// Bytes returns a marshaled version of the AssetID.
func (a AssetID) Bytes() []byte {
	return a[:]
}

// Compare returns -1 if the other AssetID is bigger, 1 if it is smaller and 0 if they
// are the same.
func (a AssetID) Compare(other AssetID) int {
	return bytes.Compare(a[:], other[:])
}

// Base58 returns a base58 encoded version of the AssetID.
func (a AssetID) Base58() string {
	return base58.Encode(a[:])
}

// String returns a human readable version of the AssetID.
func (a AssetID) String() string {
	if a == EmptyAssetID {
		return "EMPTY"
	}

	return a.Base58()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
