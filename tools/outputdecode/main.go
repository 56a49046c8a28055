package main

import (
	"encoding/hex"
	"fmt"
	"log"

	"github.com/mr-tron/base58"
	flag "github.com/spf13/pflag"

	"github.com/assetledger/assetledger/packages/ledgerstate"
)

var (
	base58Flag = flag.String("base58", "", "base58 encoded TransferableOutput to decode")
	hexFlag    = flag.String("hex", "", "hex encoded TransferableOutput to decode")
)

func main() {
	flag.Parse()

	encodedOutput, err := readInput()
	if err != nil {
		log.Fatalf("failed to read input: %s", err)
	}

	output, consumedBytes, err := ledgerstate.TransferableOutputFromBytes(encodedOutput, ledgerstate.DefaultOutputRegistry())
	if err != nil {
		log.Fatalf("failed to decode TransferableOutput: %s", err)
	}
	if consumedBytes != len(encodedOutput) {
		log.Fatalf("decoded TransferableOutput consumed %d of %d bytes", consumedBytes, len(encodedOutput))
	}

	fmt.Println(output)
}

func readInput() ([]byte, error) {
	switch {
	case *base58Flag != "":
		return base58.Decode(*base58Flag)
	case *hexFlag != "":
		return hex.DecodeString(*hexFlag)
	default:
		return nil, fmt.Errorf("either --base58 or --hex needs to be provided")
	}
}
