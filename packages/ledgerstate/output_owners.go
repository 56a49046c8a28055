package ledgerstate

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
	"github.com/assetledger/assetledger/packages/clock"
)

// region OutputOwners /////////////////////////////////////////////////////////////////////////////////////////////////

// OutputOwners holds the spend authorization conditions that are shared by every Output
// variant: a time lock, a signature threshold and the set of authorized Addresses. The
// Addresses are kept in their canonical order at all times, so that semantically equal
// address sets always produce byte-identical encodings.
type OutputOwners struct {
	locktime  uint64
	threshold uint32
	addresses Addresses
}

// NewOutputOwners creates a new OutputOwners from the given fields. The Addresses are
// copied and brought into their canonical order. The threshold is taken as-is - it is
// not validated against the amount of Addresses (see Validate).
func NewOutputOwners(locktime uint64, threshold uint32, addresses Addresses) *OutputOwners {
	return &OutputOwners{
		locktime:  locktime,
		threshold: threshold,
		addresses: addresses.Clone().Sort(),
	}
}

// OutputOwnersFromBytes unmarshals an OutputOwners from a sequence of bytes.
func OutputOwnersFromBytes(data []byte) (outputOwners *OutputOwners, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if outputOwners, err = OutputOwnersFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse OutputOwners from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputOwnersFromMarshalUtil unmarshals an OutputOwners using a MarshalUtil (for easier
// unmarshaling). The parsed Addresses are re-sorted into their canonical order, which
// makes the decoder accept non-canonical input while still producing a canonical result.
func OutputOwnersFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (outputOwners *OutputOwners, err error) {
	outputOwners = &OutputOwners{}
	if outputOwners.locktime, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse locktime (%v): %w", err, ErrMalformedInput)
		return
	}
	if outputOwners.threshold, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse threshold (%v): %w", err, ErrMalformedInput)
		return
	}

	addressCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse address count (%v): %w", err, ErrMalformedInput)
		return
	}
	for i := uint32(0); i < addressCount; i++ {
		address, addressErr := AddressFromMarshalUtil(marshalUtil)
		if addressErr != nil {
			err = errors.Errorf("failed to parse Address at index %d: %w", i, addressErr)
			return
		}
		outputOwners.addresses = append(outputOwners.addresses, address)
	}
	outputOwners.addresses.Sort()

	return
}

// Locktime returns the earliest timestamp (in unix seconds) at which the Output becomes
// spendable. The time lock is strict: an Output is still locked at exactly its locktime.
func (o *OutputOwners) Locktime() uint64 {
	return o.locktime
}

// Threshold returns the minimum amount of owned Addresses that need to co-sign a spend.
func (o *OutputOwners) Threshold() uint32 {
	return o.threshold
}

// Addresses returns a copy of the canonical address list.
func (o *OutputOwners) Addresses() Addresses {
	return o.addresses.Clone()
}

// AddressIndex returns the position of the given Address in the canonical address list
// or -1 if the Address is not part of the OutputOwners.
func (o *OutputOwners) AddressIndex(address Address) int {
	for i, ownedAddress := range o.addresses {
		if ownedAddress == address {
			return i
		}
	}

	return -1
}

// Address returns the Address at the given position of the canonical address list.
func (o *OutputOwners) Address(index int) (address Address, err error) {
	if index < 0 || index >= len(o.addresses) {
		err = errors.Errorf("address index (%d) is not within bounds [0, %d): %w", index, len(o.addresses), ErrOutOfRange)
		return
	}

	return o.addresses[index], nil
}

// UnlockedAt indicates if the time lock has expired at the given time. The comparison is
// strict: asOf equal to the locktime still counts as locked.
func (o *OutputOwners) UnlockedAt(asOf time.Time) bool {
	return uint64(asOf.Unix()) > o.locktime
}

// MeetsThreshold indicates if the given candidates are allowed to spend the Output at
// the given time: the time lock has to be expired and at least threshold many owned
// Addresses have to be matched by the candidates.
func (o *OutputOwners) MeetsThreshold(candidates Addresses, asOf time.Time) bool {
	if !o.UnlockedAt(asOf) {
		return false
	}

	return uint32(len(o.Spenders(candidates, asOf))) >= o.threshold
}

// Spenders returns the owned Addresses that are matched by the given candidates at the
// given time. It walks the canonical address list in order, scans the candidates for a
// byte-equal match and stops early once threshold many matches are collected. Duplicate
// entries in either list produce duplicate matches - the matching is a plain
// cross-product scan and performs no deduplication.
func (o *OutputOwners) Spenders(candidates Addresses, asOf time.Time) (spenders Addresses) {
	if !o.UnlockedAt(asOf) {
		return
	}

	for _, ownedAddress := range o.addresses {
		for _, candidate := range candidates {
			if ownedAddress != candidate {
				continue
			}

			spenders = append(spenders, ownedAddress)
			if uint32(len(spenders)) >= o.threshold {
				return
			}
		}
	}

	return
}

// MeetsThresholdNow behaves like MeetsThreshold using the current time of the given Clock.
func (o *OutputOwners) MeetsThresholdNow(candidates Addresses, clk clock.Clock) bool {
	return o.MeetsThreshold(candidates, clk.Now())
}

// SpendersNow behaves like Spenders using the current time of the given Clock.
func (o *OutputOwners) SpendersNow(candidates Addresses, clk clock.Clock) Addresses {
	return o.Spenders(candidates, clk.Now())
}

// Validate performs the strict syntactical checks that the permissive constructors and
// decoders skip: a threshold that exceeds the amount of Addresses makes the Output
// unspendable forever.
func (o *OutputOwners) Validate() error {
	if o.threshold > uint32(len(o.addresses)) {
		return errors.Errorf("threshold (%d) exceeds amount of addresses (%d): %w", o.threshold, len(o.addresses), ErrInvalidThreshold)
	}

	return nil
}

// Bytes returns a marshaled version of the OutputOwners. The address count is derived
// from the live address list at call time, which keeps the method free of side effects
// on the receiver.
func (o *OutputOwners) Bytes() []byte {
	marshalUtil := marshalutil.New().
		WriteUint64(o.locktime).
		WriteUint32(o.threshold).
		WriteUint32(uint32(len(o.addresses)))
	for _, address := range o.addresses {
		marshalUtil.WriteBytes(address.Bytes())
	}

	return marshalUtil.Bytes()
}

// Clone creates a copy of the OutputOwners.
func (o *OutputOwners) Clone() *OutputOwners {
	return &OutputOwners{
		locktime:  o.locktime,
		threshold: o.threshold,
		addresses: o.addresses.Clone(),
	}
}

// String returns a human readable version of the OutputOwners for debug purposes.
func (o *OutputOwners) String() string {
	return stringify.Struct("OutputOwners",
		stringify.StructField("locktime", o.locktime),
		stringify.StructField("threshold", o.threshold),
		stringify.StructField("addresses", o.addresses),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
