package ledgerstate

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/iotaledger/hive.go/types"
	"github.com/iotaledger/hive.go/typeutils"
	"github.com/mr-tron/base58"

	"github.com/assetledger/assetledger/packages/binary/marshalutil"
)

// region TransferableOutput ///////////////////////////////////////////////////////////////////////////////////////////

// TransferableOutput pairs an AssetID with exactly one Output. It is the unit that is
// actually placed on the wire: the binary representation carries the OutputType tag in
// front of the Output so that the correct variant can be selected during decoding.
type TransferableOutput struct {
	assetID AssetID
	output  Output
}

// NewTransferableOutput pairs the given AssetID with the given Output.
func NewTransferableOutput(assetID AssetID, output Output) *TransferableOutput {
	if output == nil {
		panic("NewTransferableOutput called without an Output")
	}

	return &TransferableOutput{
		assetID: assetID,
		output:  output,
	}
}

// TransferableOutputFromBytes unmarshals a TransferableOutput from a sequence of bytes,
// using the given OutputRegistry to dispatch on the embedded OutputType tag.
func TransferableOutputFromBytes(data []byte, registry *OutputRegistry) (output *TransferableOutput, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = TransferableOutputFromMarshalUtil(marshalUtil, registry); err != nil {
		err = errors.Errorf("failed to parse TransferableOutput from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransferableOutputFromMarshalUtil unmarshals a TransferableOutput using a MarshalUtil
// (for easier unmarshaling). The consumed length of the embedded Output is taken from
// the read cursor of the MarshalUtil, it is never recomputed by re-encoding the result.
func TransferableOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil, registry *OutputRegistry) (output *TransferableOutput, err error) {
	output = &TransferableOutput{}
	if output.assetID, err = AssetIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AssetID: %w", err)
		return
	}
	if output.output, err = registry.OutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Output: %w", err)
		return
	}

	return
}

// AssetID returns the identifier of the asset that the TransferableOutput carries.
func (t *TransferableOutput) AssetID() AssetID {
	return t.assetID
}

// Output returns the Output that the TransferableOutput owns.
func (t *TransferableOutput) Output() Output {
	return t.output
}

// Clone creates a copy of the TransferableOutput.
func (t *TransferableOutput) Clone() *TransferableOutput {
	return &TransferableOutput{
		assetID: t.assetID,
		output:  t.output.Clone(),
	}
}

// Bytes returns a marshaled version of the TransferableOutput.
func (t *TransferableOutput) Bytes() []byte {
	return byteutils.ConcatBytes(
		t.assetID.Bytes(),
		marshalutil.New().WriteUint32(uint32(t.output.Type())).Bytes(),
		t.output.Bytes(),
	)
}

// Base58 returns a base58 encoded version of the marshaled TransferableOutput.
func (t *TransferableOutput) Base58() string {
	return base58.Encode(t.Bytes())
}

// Compare offers a comparator for TransferableOutputs which returns -1 if the other
// TransferableOutput is bigger, 1 if it is smaller and 0 if they are the same.
func (t *TransferableOutput) Compare(other *TransferableOutput) int {
	return bytes.Compare(t.Bytes(), other.Bytes())
}

// String returns a human readable version of the TransferableOutput for debug purposes.
func (t *TransferableOutput) String() string {
	return stringify.Struct("TransferableOutput",
		stringify.StructField("assetID", t.assetID),
		stringify.StructField("output", t.output),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransferableOutputs //////////////////////////////////////////////////////////////////////////////////////////

// TransferableOutputs represents a deterministically ordered collection of
// TransferableOutputs, as it is embedded in larger ledger records.
type TransferableOutputs []*TransferableOutput

// NewTransferableOutputs returns a deterministically ordered collection of
// TransferableOutputs. It removes duplicates in the parameters and sorts the elements by
// the byte-lexicographic order of their marshaled form.
func NewTransferableOutputs(optionalOutputs ...*TransferableOutput) (transferableOutputs TransferableOutputs) {
	seenOutputs := make(map[string]types.Empty)
	sortedOutputs := make([]struct {
		output           *TransferableOutput
		outputSerialized []byte
	}, 0)

	// filter duplicates (keep the marshaled form so the sort doesn't marshal a second time)
	for _, output := range optionalOutputs {
		marshaledOutput := output.Bytes()
		marshaledOutputAsString := typeutils.BytesToString(marshaledOutput)

		if _, seenAlready := seenOutputs[marshaledOutputAsString]; seenAlready {
			continue
		}
		seenOutputs[marshaledOutputAsString] = types.Void

		sortedOutputs = append(sortedOutputs, struct {
			output           *TransferableOutput
			outputSerialized []byte
		}{output, marshaledOutput})
	}

	sort.Slice(sortedOutputs, func(i, j int) bool {
		return bytes.Compare(sortedOutputs[i].outputSerialized, sortedOutputs[j].outputSerialized) < 0
	})

	transferableOutputs = make(TransferableOutputs, len(sortedOutputs))
	for i, sortedOutput := range sortedOutputs {
		transferableOutputs[i] = sortedOutput.output
	}

	return
}

// TransferableOutputsFromBytes unmarshals a collection of TransferableOutputs from a
// sequence of bytes.
func TransferableOutputsFromBytes(data []byte, registry *OutputRegistry) (outputs TransferableOutputs, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if outputs, err = TransferableOutputsFromMarshalUtil(marshalUtil, registry); err != nil {
		err = errors.Errorf("failed to parse TransferableOutputs from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransferableOutputsFromMarshalUtil unmarshals a collection of TransferableOutputs
// using a MarshalUtil (for easier unmarshaling). The elements have to be in strictly
// ascending canonical order.
func TransferableOutputsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil, registry *OutputRegistry) (outputs TransferableOutputs, err error) {
	outputCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse output count (%v): %w", err, ErrMalformedInput)
		return
	}

	var previousOutput *TransferableOutput
	for i := uint32(0); i < outputCount; i++ {
		output, outputErr := TransferableOutputFromMarshalUtil(marshalUtil, registry)
		if outputErr != nil {
			err = errors.Errorf("failed to parse TransferableOutput at index %d: %w", i, outputErr)
			return
		}

		if previousOutput != nil && previousOutput.Compare(output) != -1 {
			err = errors.Errorf("order of TransferableOutputs is invalid: %w", ErrMalformedInput)
			return
		}
		previousOutput = output

		outputs = append(outputs, output)
	}

	return
}

// TotalAmount sums the amounts of all fungible TransferOutputs that carry the given
// asset. The valid flag turns false if the sum overflows.
func (t TransferableOutputs) TotalAmount(assetID AssetID) (total uint64, valid bool) {
	valid = true
	for _, transferableOutput := range t {
		if transferableOutput.AssetID() != assetID {
			continue
		}

		transferOutput, isTransferOutput := transferableOutput.Output().(*TransferOutput)
		if !isTransferOutput {
			continue
		}

		if total, valid = SafeAddUint64(total, transferOutput.Amount()); !valid {
			return
		}
	}

	return
}

// Clone creates a copy of the TransferableOutputs.
func (t TransferableOutputs) Clone() (clonedOutputs TransferableOutputs) {
	clonedOutputs = make(TransferableOutputs, len(t))
	for i, output := range t {
		clonedOutputs[i] = output.Clone()
	}

	return
}

// Bytes returns a marshaled version of the TransferableOutputs.
func (t TransferableOutputs) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint32(uint32(len(t)))
	for _, output := range t {
		marshalUtil.WriteBytes(output.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the TransferableOutputs for debug purposes.
func (t TransferableOutputs) String() string {
	structBuilder := stringify.StructBuilder("TransferableOutputs")
	for i, output := range t {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), output))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
