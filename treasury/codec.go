// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"bytes"

	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	typeBalanceValue     tlv.Type = 1
	typeBalanceSpendable tlv.Type = 2
)

// serializeBalance encodes an account balance as a TLV stream.
func serializeBalance(balance ledger.Balance) ([]byte, error) {
	value := uint64(balance.Value)
	spendable := uint64(balance.Spendable)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeBalanceValue, &value),
		tlv.MakePrimitiveRecord(typeBalanceSpendable, &spendable),
	)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// deserializeBalance decodes an account balance written by
// serializeBalance.
func deserializeBalance(b []byte) (ledger.Balance, error) {
	var value, spendable uint64

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeBalanceValue, &value),
		tlv.MakePrimitiveRecord(typeBalanceSpendable, &spendable),
	)
	if err != nil {
		return ledger.Balance{}, err
	}

	if err := stream.Decode(bytes.NewReader(b)); err != nil {
		return ledger.Balance{}, treasuryError(ErrMalformedRecord,
			"unable to decode account balance", err)
	}

	return ledger.Balance{
		Value:     lux.Amount(value),
		Spendable: lux.Amount(spendable),
	}, nil
}
