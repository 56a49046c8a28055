package ledgerstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

var (
	assetX = AssetID{0xaa}
	assetY = AssetID{0xbb}
)

func TestOutputRegistry_Dispatch(t *testing.T) {
	registry := DefaultOutputRegistry()
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	transferOutput := NewTransferOutput(100, owners)
	restoredOutput, err := registry.Dispatch(TransferOutputType, marshalutil.New(transferOutput.Bytes()))
	require.NoError(t, err)
	assert.IsType(t, &TransferOutput{}, restoredOutput)
	assert.Equal(t, transferOutput.Bytes(), restoredOutput.Bytes())

	nftOutput := NewNFTOutput(7, []byte{1, 2, 3}, owners)
	restoredOutput, err = registry.Dispatch(NFTOutputType, marshalutil.New(nftOutput.Bytes()))
	require.NoError(t, err)
	assert.IsType(t, &NFTOutput{}, restoredOutput)
	assert.Equal(t, nftOutput.Bytes(), restoredOutput.Bytes())

	_, err = registry.Dispatch(OutputType(1337), marshalutil.New(transferOutput.Bytes()))
	assert.ErrorIs(t, err, ErrUnknownOutputType)
}

func TestOutputRegistry_Register(t *testing.T) {
	registry := DefaultOutputRegistry()

	err := registry.Register(TransferOutputType, func(marshalUtil *marshalutil.MarshalUtil) (Output, error) {
		return TransferOutputFromMarshalUtil(marshalUtil)
	})
	assert.Error(t, err)

	customType := OutputType(42)
	require.NoError(t, registry.Register(customType, func(marshalUtil *marshalutil.MarshalUtil) (Output, error) {
		return NFTOutputFromMarshalUtil(marshalUtil)
	}))

	nftOutput := NewNFTOutput(7, []byte{1}, NewOutputOwners(0, 1, Addresses{addressA}))
	restoredOutput, err := registry.Dispatch(customType, marshalutil.New(nftOutput.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, nftOutput.Bytes(), restoredOutput.Bytes())
}

func TestTransferableOutput_RoundTrip(t *testing.T) {
	registry := DefaultOutputRegistry()
	owners := NewOutputOwners(42, 2, Addresses{addressB, addressA})

	for _, output := range []Output{
		NewTransferOutput(123, owners),
		NewNFTOutput(7, []byte{1, 2, 3}, owners),
	} {
		transferableOutput := output.MakeTransferable(assetX)

		restoredOutput, consumedBytes, err := TransferableOutputFromBytes(transferableOutput.Bytes(), registry)
		require.NoError(t, err)

		assert.Equal(t, transferableOutput.Bytes(), restoredOutput.Bytes())
		assert.Equal(t, len(transferableOutput.Bytes()), consumedBytes)
		assert.Equal(t, assetX, restoredOutput.AssetID())
		assert.Equal(t, output.Type(), restoredOutput.Output().Type())
	}
}

func TestTransferableOutput_UnknownType(t *testing.T) {
	registry := DefaultOutputRegistry()
	transferableOutput := NewTransferOutput(1, NewOutputOwners(0, 1, Addresses{addressA})).MakeTransferable(assetX)

	// overwrite the embedded type tag with an unregistered discriminant
	encodedOutput := transferableOutput.Bytes()
	marshalutil.New(encodedOutput[AssetIDLength:]).WriteUint32(math.MaxUint32)

	_, _, err := TransferableOutputFromBytes(encodedOutput, registry)
	assert.ErrorIs(t, err, ErrUnknownOutputType)
}

func TestTransferableOutput_Truncated(t *testing.T) {
	registry := DefaultOutputRegistry()
	transferableOutput := NewTransferOutput(1, NewOutputOwners(0, 1, Addresses{addressA})).MakeTransferable(assetX)

	encodedOutput := transferableOutput.Bytes()
	for _, length := range []int{AssetIDLength - 1, AssetIDLength + 2, len(encodedOutput) - 1} {
		_, _, err := TransferableOutputFromBytes(encodedOutput[:length], registry)
		assert.ErrorIs(t, err, ErrMalformedInput)
	}
}

func TestTransferableOutputs_CanonicalOrder(t *testing.T) {
	registry := DefaultOutputRegistry()
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	output1 := NewTransferOutput(1, owners).MakeTransferable(assetX)
	output2 := NewTransferOutput(2, owners).MakeTransferable(assetX)
	output3 := NewNFTOutput(7, []byte{1}, owners).MakeTransferable(assetY)

	// duplicates are removed and the elements are sorted by their marshaled form
	outputs := NewTransferableOutputs(output2, output1, output3, output1)
	require.Len(t, outputs, 3)
	for i := 0; i < len(outputs)-1; i++ {
		assert.Equal(t, -1, outputs[i].Compare(outputs[i+1]))
	}

	restoredOutputs, consumedBytes, err := TransferableOutputsFromBytes(outputs.Bytes(), registry)
	require.NoError(t, err)
	assert.Equal(t, outputs.Bytes(), restoredOutputs.Bytes())
	assert.Equal(t, len(outputs.Bytes()), consumedBytes)
}

func TestTransferableOutputs_RejectsUnorderedInput(t *testing.T) {
	registry := DefaultOutputRegistry()
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	output1 := NewTransferOutput(1, owners).MakeTransferable(assetX)
	output2 := NewTransferOutput(2, owners).MakeTransferable(assetX)

	marshalUtil := marshalutil.New().
		WriteUint32(2).
		WriteBytes(output2.Bytes()).
		WriteBytes(output1.Bytes())

	_, _, err := TransferableOutputsFromBytes(marshalUtil.Bytes(), registry)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestTransferableOutputs_TotalAmount(t *testing.T) {
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	outputs := NewTransferableOutputs(
		NewTransferOutput(100, owners).MakeTransferable(assetX),
		NewTransferOutput(23, owners).MakeTransferable(assetX),
		NewTransferOutput(1000, owners).MakeTransferable(assetY),
		NewNFTOutput(7, []byte{1}, owners).MakeTransferable(assetX),
	)

	total, valid := outputs.TotalAmount(assetX)
	assert.True(t, valid)
	assert.Equal(t, uint64(123), total)

	overflowingOutputs := NewTransferableOutputs(
		NewTransferOutput(math.MaxUint64, owners).MakeTransferable(assetX),
		NewTransferOutput(1, owners).MakeTransferable(assetX),
	)
	_, valid = overflowingOutputs.TotalAmount(assetX)
	assert.False(t, valid)
}
