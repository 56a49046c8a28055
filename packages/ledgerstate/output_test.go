package ledgerstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

var (
	addressA = Address{1}
	addressB = Address{2}
	addressC = Address{3}
)

// fixedClock is a Clock that always returns the same time.
type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func TestOutputOwners_RoundTrip(t *testing.T) {
	owners := NewOutputOwners(1337, 2, Addresses{addressC, addressA, addressB})

	restoredOwners, consumedBytes, err := OutputOwnersFromBytes(owners.Bytes())
	require.NoError(t, err)

	assert.Equal(t, owners.Bytes(), restoredOwners.Bytes())
	assert.Equal(t, len(owners.Bytes()), consumedBytes)
	assert.Equal(t, uint64(1337), restoredOwners.Locktime())
	assert.Equal(t, uint32(2), restoredOwners.Threshold())
	assert.Equal(t, Addresses{addressA, addressB, addressC}, restoredOwners.Addresses())
}

func TestOutputOwners_EncodingIsOrderInvariant(t *testing.T) {
	permutations := []Addresses{
		{addressA, addressB, addressC},
		{addressB, addressA, addressC},
		{addressC, addressB, addressA},
	}

	expectedBytes := NewOutputOwners(0, 1, permutations[0]).Bytes()
	for _, permutation := range permutations {
		assert.Equal(t, expectedBytes, NewOutputOwners(0, 1, permutation).Bytes())
	}
}

func TestOutputOwners_DecodeResortsAddresses(t *testing.T) {
	// hand-craft an encoding with the addresses out of canonical order
	marshalUtil := marshalutil.New().
		WriteUint64(0).
		WriteUint32(1).
		WriteUint32(2).
		WriteBytes(addressB.Bytes()).
		WriteBytes(addressA.Bytes())

	restoredOwners, _, err := OutputOwnersFromBytes(marshalUtil.Bytes())
	require.NoError(t, err)

	assert.Equal(t, Addresses{addressA, addressB}, restoredOwners.Addresses())
}

func TestOutputOwners_Truncated(t *testing.T) {
	owners := NewOutputOwners(0, 2, Addresses{addressA, addressB, addressC})
	encodedOwners := owners.Bytes()

	// cut into the declared address region
	_, _, err := OutputOwnersFromBytes(encodedOwners[:len(encodedOwners)-AddressLength-1])
	assert.ErrorIs(t, err, ErrMalformedInput)

	// cut into the fixed size header
	_, _, err = OutputOwnersFromBytes(encodedOwners[:marshalutil.Uint64Size+2])
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestOutputOwners_Accessors(t *testing.T) {
	owners := NewOutputOwners(0, 1, Addresses{addressB, addressA})

	assert.Equal(t, 0, owners.AddressIndex(addressA))
	assert.Equal(t, 1, owners.AddressIndex(addressB))
	assert.Equal(t, -1, owners.AddressIndex(addressC))

	address, err := owners.Address(1)
	require.NoError(t, err)
	assert.Equal(t, addressB, address)

	_, err = owners.Address(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = owners.Address(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// the accessor returns a copy that does not alias the internal state
	addresses := owners.Addresses()
	addresses[0] = addressC
	assert.Equal(t, Addresses{addressA, addressB}, owners.Addresses())
}

func TestOutputOwners_LocktimeBoundary(t *testing.T) {
	locktime := uint64(1000000)
	owners := NewOutputOwners(locktime, 1, Addresses{addressA})

	assert.False(t, owners.MeetsThreshold(Addresses{addressA}, time.Unix(int64(locktime), 0)))
	assert.True(t, owners.MeetsThreshold(Addresses{addressA}, time.Unix(int64(locktime)+1, 0)))

	assert.Empty(t, owners.Spenders(Addresses{addressA}, time.Unix(int64(locktime), 0)))
	assert.Equal(t, Addresses{addressA}, owners.Spenders(Addresses{addressA}, time.Unix(int64(locktime)+1, 0)))
}

func TestOutputOwners_ThresholdCounting(t *testing.T) {
	owners := NewOutputOwners(0, 2, Addresses{addressA, addressB, addressC})
	asOf := time.Unix(1, 0)

	assert.True(t, owners.MeetsThreshold(Addresses{addressA, addressC}, asOf))
	assert.Equal(t, Addresses{addressA, addressC}, owners.Spenders(Addresses{addressA, addressC}, asOf))

	assert.False(t, owners.MeetsThreshold(Addresses{addressA}, asOf))
	assert.Equal(t, Addresses{addressA}, owners.Spenders(Addresses{addressA}, asOf))
}

func TestOutputOwners_SpendersStopsAtThreshold(t *testing.T) {
	owners := NewOutputOwners(0, 2, Addresses{addressA, addressB, addressC})
	asOf := time.Unix(1, 0)

	// all three candidates match but collection stops once the threshold is reached
	assert.Equal(t, Addresses{addressA, addressB}, owners.Spenders(Addresses{addressA, addressB, addressC}, asOf))
}

func TestOutputOwners_DuplicateCandidatesDoubleCount(t *testing.T) {
	owners := NewOutputOwners(0, 2, Addresses{addressA, addressB})
	asOf := time.Unix(1, 0)

	// the matching is a plain cross-product scan, so a duplicated candidate is counted twice
	assert.True(t, owners.MeetsThreshold(Addresses{addressA, addressA}, asOf))
	assert.Equal(t, Addresses{addressA, addressA}, owners.Spenders(Addresses{addressA, addressA}, asOf))
}

func TestOutputOwners_NowVariants(t *testing.T) {
	locktime := uint64(500)
	owners := NewOutputOwners(locktime, 1, Addresses{addressA})

	lockedClock := fixedClock{now: time.Unix(int64(locktime), 0)}
	unlockedClock := fixedClock{now: time.Unix(int64(locktime)+1, 0)}

	assert.False(t, owners.MeetsThresholdNow(Addresses{addressA}, lockedClock))
	assert.True(t, owners.MeetsThresholdNow(Addresses{addressA}, unlockedClock))
	assert.Empty(t, owners.SpendersNow(Addresses{addressA}, lockedClock))
	assert.Equal(t, Addresses{addressA}, owners.SpendersNow(Addresses{addressA}, unlockedClock))
}

func TestOutputOwners_Validate(t *testing.T) {
	assert.NoError(t, NewOutputOwners(0, 2, Addresses{addressA, addressB}).Validate())

	// a threshold that exceeds the amount of addresses makes the output unspendable
	unspendableOwners := NewOutputOwners(0, 3, Addresses{addressA, addressB})
	assert.ErrorIs(t, unspendableOwners.Validate(), ErrInvalidThreshold)
	assert.False(t, unspendableOwners.MeetsThreshold(Addresses{addressA, addressB}, time.Unix(1, 0)))
}

func TestTransferOutput_RoundTrip(t *testing.T) {
	output := NewTransferOutput(123456789, NewOutputOwners(42, 1, Addresses{addressB, addressA}))

	restoredOutput, consumedBytes, err := TransferOutputFromBytes(output.Bytes())
	require.NoError(t, err)

	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
	assert.Equal(t, len(output.Bytes()), consumedBytes)
	assert.Equal(t, uint64(123456789), restoredOutput.Amount())
	assert.Equal(t, uint64(42), restoredOutput.Locktime())
	assert.Equal(t, TransferOutputType, restoredOutput.Type())
}

func TestNFTOutput_RoundTrip(t *testing.T) {
	output := NewNFTOutput(7, []byte{0x01, 0x02, 0x03}, NewOutputOwners(0, 1, Addresses{addressA}))

	restoredOutput, consumedBytes, err := NFTOutputFromBytes(output.Bytes())
	require.NoError(t, err)

	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
	assert.Equal(t, len(output.Bytes()), consumedBytes)
	assert.Equal(t, uint32(7), restoredOutput.GroupID())
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, restoredOutput.Payload())
	assert.Equal(t, NFTOutputType, restoredOutput.Type())

	// the payload length prefix sits right behind the groupID
	marshalUtil := marshalutil.New(output.Bytes())
	marshalUtil.ReadSeek(marshalutil.Uint32Size)
	payloadSize, err := marshalUtil.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), payloadSize)
}

func TestNFTOutput_TruncatedPayload(t *testing.T) {
	output := NewNFTOutput(7, []byte{1, 2, 3, 4, 5}, NewOutputOwners(0, 1, Addresses{addressA}))

	// cut into the declared payload region
	_, _, err := NFTOutputFromBytes(output.Bytes()[:marshalutil.Uint32Size*2+3])
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNFTOutput_Validate(t *testing.T) {
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	assert.NoError(t, NewNFTOutput(0, make([]byte, MaxPayloadSize), owners).Validate())
	assert.ErrorIs(t, NewNFTOutput(0, make([]byte, MaxPayloadSize+1), owners).Validate(), ErrPayloadTooLarge)

	// an oversized payload still decodes - the cap is only checked by Validate
	oversizedOutput := NewNFTOutput(0, make([]byte, MaxPayloadSize+1), owners)
	restoredOutput, _, err := NFTOutputFromBytes(oversizedOutput.Bytes())
	require.NoError(t, err)
	assert.ErrorIs(t, restoredOutput.Validate(), ErrPayloadTooLarge)
}

func TestOutput_Compare(t *testing.T) {
	owners := NewOutputOwners(0, 1, Addresses{addressA})

	smallOutput := NewTransferOutput(1, owners)
	bigOutput := NewTransferOutput(2, owners)

	assert.Equal(t, -1, smallOutput.Compare(bigOutput))
	assert.Equal(t, 1, bigOutput.Compare(smallOutput))
	assert.Equal(t, 0, smallOutput.Compare(NewTransferOutput(1, owners)))
}

func TestOutput_CloneDoesNotAlias(t *testing.T) {
	output := NewNFTOutput(7, []byte{1, 2, 3}, NewOutputOwners(0, 1, Addresses{addressA}))

	clonedOutput := output.Clone().(*NFTOutput)
	clonedOutput.payload[0] = 99

	assert.Equal(t, []byte{1, 2, 3}, output.Payload())
}
