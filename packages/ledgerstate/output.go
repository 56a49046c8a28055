package ledgerstate

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
	"github.com/assetledger/assetledger/packages/clock"
)

// region OutputType ///////////////////////////////////////////////////////////////////////////////////////////////////

// OutputType represents the type of an Output. It is the discriminant that selects the
// concrete variant when an Output is parsed from its binary representation.
type OutputType uint32

const (
	// TransferOutputType represents an Output that transfers a fungible amount of an asset.
	TransferOutputType OutputType = iota

	// NFTOutputType represents an Output that transfers a non-fungible token.
	NFTOutputType
)

// String returns a human readable representation of the OutputType.
func (o OutputType) String() string {
	switch o {
	case TransferOutputType:
		return "TransferOutputType"
	case NFTOutputType:
		return "NFTOutputType"
	default:
		return "UnknownOutputType"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Output is a generic interface for the different types of Outputs. An Output describes
// a transferable value together with the conditions that authorize spending it.
type Output interface {
	// Type returns the OutputType which allows us to generically handle Outputs of different types.
	Type() OutputType

	// Locktime returns the earliest timestamp (in unix seconds) at which the Output becomes spendable.
	Locktime() uint64

	// Threshold returns the minimum amount of owned Addresses that need to co-sign a spend.
	Threshold() uint32

	// Addresses returns a copy of the Addresses that are authorized to spend the Output.
	Addresses() Addresses

	// AddressIndex returns the position of the given Address in the canonical address
	// list or -1 if the Address is not part of the Output.
	AddressIndex(address Address) int

	// Address returns the Address at the given position of the canonical address list.
	Address(index int) (Address, error)

	// UnlockedAt indicates if the time lock of the Output has expired at the given time.
	UnlockedAt(asOf time.Time) bool

	// MeetsThreshold indicates if the given candidates are allowed to spend the Output at the given time.
	MeetsThreshold(candidates Addresses, asOf time.Time) bool

	// Spenders returns the owned Addresses that are matched by the given candidates at the given time.
	Spenders(candidates Addresses, asOf time.Time) Addresses

	// MeetsThresholdNow behaves like MeetsThreshold using the current time of the given Clock.
	MeetsThresholdNow(candidates Addresses, clk clock.Clock) bool

	// SpendersNow behaves like Spenders using the current time of the given Clock.
	SpendersNow(candidates Addresses, clk clock.Clock) Addresses

	// MakeTransferable pairs the Output with the given AssetID.
	MakeTransferable(assetID AssetID) *TransferableOutput

	// Validate performs the strict syntactical checks that the permissive decoders skip.
	Validate() error

	// Clone creates a copy of the Output.
	Clone() Output

	// Bytes returns a marshaled version of the Output.
	Bytes() []byte

	// Base58 returns a base58 encoded version of the marshaled Output.
	Base58() string

	// Compare offers a comparator for Outputs which returns -1 if the other Output is
	// bigger, 1 if it is smaller and 0 if they are the same.
	Compare(other Output) int

	// String returns a human readable version of the Output for debug purposes.
	String() string
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputRegistry ///////////////////////////////////////////////////////////////////////////////////////////////

// OutputDecoder parses an Output of a specific OutputType from the given MarshalUtil.
type OutputDecoder func(marshalUtil *marshalutil.MarshalUtil) (Output, error)

// OutputRegistry maps OutputTypes to the decoders of the corresponding Output variants.
// It is an explicitly constructed value that is handed to the decode entry points, so
// that adding a new Output variant requires no change to the existing ones. A registry
// is populated once at startup and read-only afterwards.
type OutputRegistry struct {
	decoders map[OutputType]OutputDecoder
}

// NewOutputRegistry creates an empty OutputRegistry.
func NewOutputRegistry() *OutputRegistry {
	return &OutputRegistry{
		decoders: make(map[OutputType]OutputDecoder),
	}
}

// DefaultOutputRegistry creates an OutputRegistry that holds the built-in Output variants.
func DefaultOutputRegistry() *OutputRegistry {
	registry := NewOutputRegistry()
	_ = registry.Register(TransferOutputType, func(marshalUtil *marshalutil.MarshalUtil) (Output, error) {
		return TransferOutputFromMarshalUtil(marshalUtil)
	})
	_ = registry.Register(NFTOutputType, func(marshalUtil *marshalutil.MarshalUtil) (Output, error) {
		return NFTOutputFromMarshalUtil(marshalUtil)
	})

	return registry
}

// Register adds the decoder of an Output variant to the OutputRegistry. It returns an
// error if the OutputType is already taken.
func (o *OutputRegistry) Register(outputType OutputType, decoder OutputDecoder) error {
	if _, exists := o.decoders[outputType]; exists {
		return errors.Errorf("OutputType (%s) is already registered", outputType)
	}
	o.decoders[outputType] = decoder

	return nil
}

// Dispatch parses an Output of the given OutputType from the remaining bytes of the
// given MarshalUtil. It fails with ErrUnknownOutputType if the OutputType has no
// registered decoder.
func (o *OutputRegistry) Dispatch(outputType OutputType, marshalUtil *marshalutil.MarshalUtil) (Output, error) {
	decoder, exists := o.decoders[outputType]
	if !exists {
		return nil, errors.Errorf("failed to dispatch OutputType (%d): %w", uint32(outputType), ErrUnknownOutputType)
	}

	return decoder(marshalUtil)
}

// OutputFromBytes unmarshals the OutputType tag followed by the corresponding Output
// variant from a sequence of bytes.
func (o *OutputRegistry) OutputFromBytes(data []byte) (output Output, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = o.OutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Output from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputFromMarshalUtil unmarshals the OutputType tag followed by the corresponding
// Output variant using a MarshalUtil (for easier unmarshaling).
func (o *OutputRegistry) OutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output Output, err error) {
	outputType, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, ErrMalformedInput)
		return
	}

	return o.Dispatch(OutputType(outputType), marshalUtil)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
