package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

// region NFTOutput ////////////////////////////////////////////////////////////////////////////////////////////////////

// MaxPayloadSize is the intended upper bound for the payload of an NFTOutput. The
// decoders do not enforce it - it is only checked by the opt-in strict validation.
const MaxPayloadSize = 1024

// NFTOutput is an Output that transfers a non-fungible token, identified by a group tag
// and carrying an opaque payload.
type NFTOutput struct {
	groupID uint32
	payload []byte

	OutputOwners
}

// NewNFTOutput is the constructor for an NFTOutput.
func NewNFTOutput(groupID uint32, payload []byte, owners *OutputOwners) *NFTOutput {
	clonedPayload := make([]byte, len(payload))
	copy(clonedPayload, payload)

	return &NFTOutput{
		groupID:      groupID,
		payload:      clonedPayload,
		OutputOwners: *owners.Clone(),
	}
}

// NFTOutputFromBytes unmarshals an NFTOutput from a sequence of bytes.
func NFTOutputFromBytes(data []byte) (output *NFTOutput, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = NFTOutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse NFTOutput from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// NFTOutputFromMarshalUtil unmarshals an NFTOutput using a MarshalUtil (for easier
// unmarshaling).
func NFTOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *NFTOutput, err error) {
	output = &NFTOutput{}
	if output.groupID, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse groupID (%v): %w", err, ErrMalformedInput)
		return
	}

	payloadSize, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse payload size (%v): %w", err, ErrMalformedInput)
		return
	}
	payloadBytes, err := marshalUtil.ReadBytes(int(payloadSize))
	if err != nil {
		err = errors.Errorf("failed to parse payload of %d bytes (%v): %w", payloadSize, err, ErrMalformedInput)
		return
	}
	output.payload = make([]byte, payloadSize)
	copy(output.payload, payloadBytes)

	owners, err := OutputOwnersFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse OutputOwners: %w", err)
		return
	}
	output.OutputOwners = *owners

	return
}

// Type returns the OutputType which allows us to generically handle Outputs of different types.
func (n *NFTOutput) Type() OutputType {
	return NFTOutputType
}

// GroupID returns the tag that identifies the token group the NFTOutput belongs to.
func (n *NFTOutput) GroupID() uint32 {
	return n.groupID
}

// Payload returns a copy of the opaque payload of the NFTOutput.
func (n *NFTOutput) Payload() []byte {
	clonedPayload := make([]byte, len(n.payload))
	copy(clonedPayload, n.payload)

	return clonedPayload
}

// MakeTransferable pairs the NFTOutput with the given AssetID.
func (n *NFTOutput) MakeTransferable(assetID AssetID) *TransferableOutput {
	return NewTransferableOutput(assetID, n)
}

// Validate performs the strict syntactical checks that the permissive decoders skip.
func (n *NFTOutput) Validate() error {
	if len(n.payload) > MaxPayloadSize {
		return errors.Errorf("payload of %d bytes exceeds MaxPayloadSize (%d): %w", len(n.payload), MaxPayloadSize, ErrPayloadTooLarge)
	}

	return n.OutputOwners.Validate()
}

// Clone creates a copy of the Output.
func (n *NFTOutput) Clone() Output {
	clonedPayload := make([]byte, len(n.payload))
	copy(clonedPayload, n.payload)

	return &NFTOutput{
		groupID:      n.groupID,
		payload:      clonedPayload,
		OutputOwners: *n.OutputOwners.Clone(),
	}
}

// Bytes returns a marshaled version of the Output.
func (n *NFTOutput) Bytes() []byte {
	return byteutils.ConcatBytes(
		marshalutil.New().
			WriteUint32(n.groupID).
			WriteUint32(uint32(len(n.payload))).
			WriteBytes(n.payload).
			Bytes(),
		n.OutputOwners.Bytes(),
	)
}

// Base58 returns a base58 encoded version of the marshaled Output.
func (n *NFTOutput) Base58() string {
	return base58.Encode(n.Bytes())
}

// Compare offers a comparator for Outputs which returns -1 if the other Output is
// bigger, 1 if it is smaller and 0 if they are the same.
func (n *NFTOutput) Compare(other Output) int {
	return bytes.Compare(n.Bytes(), other.Bytes())
}

// String returns a human readable version of the Output for debug purposes.
func (n *NFTOutput) String() string {
	return stringify.Struct("NFTOutput",
		stringify.StructField("groupID", n.groupID),
		stringify.StructField("payload", n.payload),
		stringify.StructField("owners", &n.OutputOwners),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &NFTOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
