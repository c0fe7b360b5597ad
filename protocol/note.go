// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"bytes"
	"crypto/rand"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	typeNoteValue   tlv.Type = 1
	typeNoteOwner   tlv.Type = 2
	typeNoteBlinder tlv.Type = 3
)

// Plaintext is the decoded content of a note.
type Plaintext struct {
	// Value is the amount the note is worth.
	Value lux.Amount

	// Owner is the raw public key of the address that can spend the
	// note.
	Owner []byte

	// Blinder makes notes of the same value and owner distinct.
	Blinder [32]byte
}

// EncodeNote serializes a plaintext as a TLV stream.
func EncodeNote(p *Plaintext) ([]byte, error) {
	value := uint64(p.Value)
	owner := p.Owner

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeNoteValue, &value),
		tlv.MakePrimitiveRecord(typeNoteOwner, &owner),
		tlv.MakePrimitiveRecord(typeNoteBlinder, &p.Blinder),
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

// DecodeNote parses a note written by EncodeNote.
func DecodeNote(b []byte) (*Plaintext, error) {
	var (
		p     Plaintext
		value uint64
	)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeNoteValue, &value),
		tlv.MakePrimitiveRecord(typeNoteOwner, &p.Owner),
		tlv.MakePrimitiveRecord(typeNoteBlinder, &p.Blinder),
	)
	if err != nil {
		return nil, err
	}

	if err := stream.Decode(bytes.NewReader(b)); err != nil {
		return nil, driverError(ErrMalformedNote,
			"unable to decode note", err)
	}
	if len(p.Owner) != keyring.AddressKeySize {
		return nil, driverError(ErrMalformedNote,
			"note owner is not an address key", nil)
	}
	p.Value = lux.Amount(value)

	return &p, nil
}

// Nullifier returns the nullifier of the note.
func (p *Plaintext) Nullifier() ledger.Nullifier {
	preimage := make([]byte, 0, len(p.Owner)+len(p.Blinder))
	preimage = append(preimage, p.Owner...)
	preimage = append(preimage, p.Blinder[:]...)

	return chainhash.DoubleHashH(preimage)
}

// NewNote creates a note worth value for the owner address, with a random
// blinder.
func NewNote(owner keyring.Identifier, value lux.Amount) (ledger.Note,
	error) {

	var blinder [32]byte
	if _, err := rand.Read(blinder[:]); err != nil {
		return ledger.Note{}, err
	}

	return NewNoteWithBlinder(owner, value, blinder)
}

// NewNoteWithBlinder creates a note worth value for the owner address using
// the given blinder.
func NewNoteWithBlinder(owner keyring.Identifier, value lux.Amount,
	blinder [32]byte) (ledger.Note, error) {

	if owner.Kind() != keyring.KindAddress {
		return ledger.Note{}, driverError(ErrMalformedNote,
			"notes can only be owned by addresses", nil)
	}

	p := &Plaintext{
		Value:   value,
		Owner:   owner.Bytes(),
		Blinder: blinder,
	}

	data, err := EncodeNote(p)
	if err != nil {
		return ledger.Note{}, err
	}

	return ledger.Note{Nullifier: p.Nullifier(), Data: data}, nil
}
