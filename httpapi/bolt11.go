package httpapi

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// decodedInvoice is the small slice of a BOLT11 invoice the quote/pay
// handlers need: the requested amount and the payee's node identity. Full
// signature verification and public-key recovery (zpay32's approach when
// no 'n' tagged field is present) are out of scope here — invoices this
// adaptor accepts must carry an explicit destination tag.
type decodedInvoice struct {
	AmountMsat uint64
	Payee      string // hex-encoded 33-byte compressed pubkey
}

const (
	fieldTypeN         = 19
	signatureBase32Len = 104
)

// decodeBolt11 extracts the amount and destination from invoice, adapted
// from the BOLT11 human-readable-part/tagged-field layout (amount encoded
// in the HRP's suffix, destination in the 'n' tagged field of the data
// part, signature in the trailing 104 base32 groups).
func decodeBolt11(invoice string) (decodedInvoice, error) {
	hrp, data, err := bech32.Decode(invoice)
	if err != nil {
		return decodedInvoice{}, fmt.Errorf("bech32 decode: %w", err)
	}
	if len(hrp) < 2 || hrp[:2] != "ln" {
		return decodedInvoice{}, fmt.Errorf("not a lightning invoice")
	}

	var out decodedInvoice
	if amountPart := amountSuffix(hrp); amountPart != "" {
		msat, err := decodeAmountMsat(amountPart)
		if err != nil {
			return decodedInvoice{}, err
		}
		out.AmountMsat = msat
	}

	if len(data) < signatureBase32Len {
		return decodedInvoice{}, fmt.Errorf("invoice data too short")
	}
	taggedData := data[:len(data)-signatureBase32Len]

	payee, err := findDestination(taggedData)
	if err != nil {
		return decodedInvoice{}, err
	}
	out.Payee = payee
	return out, nil
}

// amountSuffix strips the "ln<network>" prefix, returning whatever digits
// and multiplier letter follow (empty if the invoice carries no amount).
func amountSuffix(hrp string) string {
	for i := 2; i < len(hrp); i++ {
		if hrp[i] >= '0' && hrp[i] <= '9' {
			return hrp[i:]
		}
	}
	return ""
}

// decodeAmountMsat converts a BOLT11 amount suffix (digits plus an
// optional m/u/n/p multiplier, denominated in BTC) to millisatoshis.
func decodeAmountMsat(s string) (uint64, error) {
	multiplier := s[len(s)-1]
	digits := s
	var divisor uint64 = 1
	switch multiplier {
	case 'm':
		digits, divisor = s[:len(s)-1], 1_000
	case 'u':
		digits, divisor = s[:len(s)-1], 1_000_000
	case 'n':
		digits, divisor = s[:len(s)-1], 1_000_000_000
	case 'p':
		digits, divisor = s[:len(s)-1], 1_000_000_000_000
	}
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount: %w", err)
	}
	const msatPerBTC = 100_000_000_000
	if divisor > msatPerBTC {
		return value / (divisor / msatPerBTC), nil
	}
	return value * (msatPerBTC / divisor), nil
}

// findDestination scans the tagged-field data for fieldTypeN (the
// destination pubkey), returning its 33 bytes hex-encoded.
func findDestination(data []byte) (string, error) {
	for i := 0; i+3 <= len(data); {
		fieldType := data[i]
		length := int(data[i+1])<<5 | int(data[i+2])
		start := i + 3
		end := start + length
		if end > len(data) {
			break
		}
		if fieldType == fieldTypeN {
			pubkeyBytes, err := bech32.ConvertBits(data[start:end], 5, 8, false)
			if err != nil {
				return "", fmt.Errorf("decoding destination field: %w", err)
			}
			if len(pubkeyBytes) < 33 {
				return "", fmt.Errorf("destination field too short")
			}
			return hex.EncodeToString(pubkeyBytes[:33]), nil
		}
		i = end
	}
	return "", fmt.Errorf("invoice carries no destination (n) field")
}
