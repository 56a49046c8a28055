package ledgerstate

import (
	"bytes"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// AddressLength contains the amount of bytes that a marshaled version of the Address contains.
const AddressLength = 32

// Address is the fixed width identifier of the owner of funds in the ledger. Addresses
// are totally ordered by the byte-lexicographic order of their marshaled form.
type Address [AddressLength]byte

// NewAddress derives the Address that corresponds to the given public key.
func NewAddress(publicKey ed25519.PublicKey) (address Address) {
	return blake2b.Sum256(publicKey[:])
}

// AddressFromBytes unmarshals an Address from a sequence of bytes.
func AddressFromBytes(data []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromBase58EncodedString creates an Address from a base58 encoded string.
func AddressFromBase58EncodedString(base58String string) (address Address, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if address, _, err = AddressFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse Address from bytes: %w", err)
		return
	}

	return
}

// AddressFromMarshalUtil unmarshals an Address using a MarshalUtil (for easier unmarshaling).
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressBytes, err := marshalUtil.ReadBytes(AddressLength)
	if err != nil {
		err = errors.Errorf("failed to parse Address (%v): %w", err, ErrMalformedInput)
		return
	}
	copy(address[:], addressBytes)

	return
}

// Bytes returns a marshaled version of the Address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Compare returns -1 if the other Address is bigger, 1 if it is smaller and 0 if they
// are the same.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// Base58 returns a base58 encoded version of the Address.
func (a Address) Base58() string {
	return base58.Encode(a[:])
}

// String returns a human readable version of the Address for debug purposes.
func (a Address) String() string {
	return stringify.Struct("Address",
		stringify.StructField("base58", a.Base58()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Addresses ////////////////////////////////////////////////////////////////////////////////////////////////////

// Addresses represents a list of Addresses.
type Addresses []Address

// Sort brings the Addresses into their canonical (ascending byte-lexicographic) order.
func (a Addresses) Sort() Addresses {
	sort.Slice(a, func(i, j int) bool {
		return a[i].Compare(a[j]) < 0
	})

	return a
}

// Clone creates a copy of the Addresses.
func (a Addresses) Clone() (clonedAddresses Addresses) {
	clonedAddresses = make(Addresses, len(a))
	copy(clonedAddresses, a)

	return
}

// String returns a human readable version of the Addresses for debug purposes.
func (a Addresses) String() string {
	structBuilder := stringify.StructBuilder("Addresses")
	for _, address := range a {
		structBuilder.AddField(stringify.StructField(address.Base58(), address))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
