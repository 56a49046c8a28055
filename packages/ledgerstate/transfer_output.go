package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

// region TransferOutput ///////////////////////////////////////////////////////////////////////////////////////////////

// TransferOutput is an Output that transfers a fungible amount of an asset to the
// holders of its Addresses.
type TransferOutput struct {
	amount uint64

	OutputOwners
}

// NewTransferOutput is the constructor for a TransferOutput.
func NewTransferOutput(amount uint64, owners *OutputOwners) *TransferOutput {
	return &TransferOutput{
		amount:       amount,
		OutputOwners: *owners.Clone(),
	}
}

// TransferOutputFromBytes unmarshals a TransferOutput from a sequence of bytes.
func TransferOutputFromBytes(data []byte) (output *TransferOutput, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = TransferOutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransferOutput from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransferOutputFromMarshalUtil unmarshals a TransferOutput using a MarshalUtil (for
// easier unmarshaling).
func TransferOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *TransferOutput, err error) {
	output = &TransferOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, ErrMalformedInput)
		return
	}

	owners, err := OutputOwnersFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse OutputOwners: %w", err)
		return
	}
	output.OutputOwners = *owners

	return
}

// Type returns the OutputType which allows us to generically handle Outputs of different types.
func (t *TransferOutput) Type() OutputType {
	return TransferOutputType
}

// Amount returns the transferred quantity of the asset.
func (t *TransferOutput) Amount() uint64 {
	return t.amount
}

// MakeTransferable pairs the TransferOutput with the given AssetID.
func (t *TransferOutput) MakeTransferable(assetID AssetID) *TransferableOutput {
	return NewTransferableOutput(assetID, t)
}

// Clone creates a copy of the Output.
func (t *TransferOutput) Clone() Output {
	return &TransferOutput{
		amount:       t.amount,
		OutputOwners: *t.OutputOwners.Clone(),
	}
}

// Bytes returns a marshaled version of the Output.
func (t *TransferOutput) Bytes() []byte {
	return byteutils.ConcatBytes(
		marshalutil.New().WriteUint64(t.amount).Bytes(),
		t.OutputOwners.Bytes(),
	)
}

// Base58 returns a base58 encoded version of the marshaled Output.
func (t *TransferOutput) Base58() string {
	return base58.Encode(t.Bytes())
}

// Compare offers a comparator for Outputs which returns -1 if the other Output is
// bigger, 1 if it is smaller and 0 if they are the same.
func (t *TransferOutput) Compare(other Output) int {
	return bytes.Compare(t.Bytes(), other.Bytes())
}

// String returns a human readable version of the Output for debug purposes.
func (t *TransferOutput) String() string {
	return stringify.Struct("TransferOutput",
		stringify.StructField("amount", t.amount),
		stringify.StructField("owners", &t.OutputOwners),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &TransferOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
