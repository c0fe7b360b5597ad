// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"context"
	"testing"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/stretchr/testify/require"
)

var testSeed = keyring.Seed{1, 2, 3}

// testProfile derives the profile at index from testSeed.
func testProfile(t *testing.T, index uint32) *keyring.Profile {
	t.Helper()

	p, err := keyring.NewGenerator(testSeed).Derive(index)
	require.NoError(t, err)

	return p
}

// mintNotes creates one note per value for the owner.
func mintNotes(t *testing.T, owner keyring.Identifier,
	values ...lux.Amount) []ledger.Note {

	t.Helper()

	notes := make([]ledger.Note, 0, len(values))
	for _, v := range values {
		note, err := NewNote(owner, v)
		require.NoError(t, err)
		notes = append(notes, note)
	}

	return notes
}

// noteValues decodes the values of the notes.
func noteValues(t *testing.T, notes []ledger.Note) []lux.Amount {
	t.Helper()

	values := make([]lux.Amount, 0, len(notes))
	for _, n := range notes {
		p, err := DecodeNote(n.Data)
		require.NoError(t, err)
		values = append(values, p.Value)
	}

	return values
}

// TestNoteCodec checks the note encoding and the nullifier derivation.
func TestNoteCodec(t *testing.T) {
	t.Parallel()

	owner := testProfile(t, 0).Address()
	blinder := [32]byte{9}

	note, err := NewNoteWithBlinder(owner, 42, blinder)
	require.NoError(t, err)

	p, err := DecodeNote(note.Data)
	require.NoError(t, err)
	require.Equal(t, lux.Amount(42), p.Value)
	require.Equal(t, owner.Bytes(), p.Owner)
	require.Equal(t, blinder, p.Blinder)
	require.Equal(t, note.Nullifier, p.Nullifier())

	// Same owner and blinder give the same nullifier.
	again, err := NewNoteWithBlinder(owner, 7, blinder)
	require.NoError(t, err)
	require.Equal(t, note.Nullifier, again.Nullifier)

	// Random blinders make notes distinct.
	n1, err := NewNote(owner, 42)
	require.NoError(t, err)
	n2, err := NewNote(owner, 42)
	require.NoError(t, err)
	require.NotEqual(t, n1.Nullifier, n2.Nullifier)

	_, err = NewNote(testProfile(t, 0).Account(), 1)
	require.True(t, IsError(err, ErrMalformedNote))

	_, err = DecodeNote([]byte{0xff})
	require.True(t, IsError(err, ErrMalformedNote))

	// A note without owner is malformed.
	data, err := EncodeNote(&Plaintext{Value: 1})
	require.NoError(t, err)
	_, err = DecodeNote(data)
	require.True(t, IsError(err, ErrMalformedNote))
}

// TestBalance checks the aggregation of value and spendable amounts.
func TestBalance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := NewDriver()
	p := testProfile(t, 3)
	stranger := testProfile(t, 4)

	notes := mintNotes(t, p.Address(), 5, 1, 10, 3, 7, 2)
	notes = append(notes, mintNotes(t, stranger.Address(), 1000)...)

	balance, err := d.Balance(ctx, testSeed, 3, notes)
	require.NoError(t, err)
	require.Equal(t, lux.Amount(28), balance.Value)

	// The four largest owned notes: 10 + 7 + 5 + 3.
	require.Equal(t, lux.Amount(25), balance.Spendable)
	require.True(t, balance.Valid())

	// With no more notes than a transaction can spend everything is
	// spendable.
	balance, err = d.Balance(ctx, testSeed, 3, notes[:3])
	require.NoError(t, err)
	require.Equal(t, ledger.Balance{Value: 16, Spendable: 16}, balance)

	balance, err = d.Balance(ctx, testSeed, 3, nil)
	require.NoError(t, err)
	require.Equal(t, ledger.Balance{}, balance)

	// The same notes seen from another index belong to someone else.
	balance, err = d.Balance(ctx, testSeed, 4, notes)
	require.NoError(t, err)
	require.Equal(t, ledger.Balance{Value: 1000, Spendable: 1000}, balance)

	bad := append([]ledger.Note{{Data: []byte{0xff}}}, notes...)
	_, err = d.Balance(ctx, testSeed, 3, bad)
	require.True(t, IsError(err, ErrMalformedNote))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = d.Balance(cancelled, testSeed, 3, notes)
	require.ErrorIs(t, err, context.Canceled)
}

// TestPickCombination checks the lexicographic selection policy.
func TestPickCombination(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		values   []lux.Amount
		amount   lux.Amount
		expected []int
		ok       bool
	}{
		{
			name:     "few notes covering",
			values:   []lux.Amount{1, 2, 3},
			amount:   6,
			expected: []int{0, 1, 2},
			ok:       true,
		},
		{
			name:   "few notes short",
			values: []lux.Amount{1, 2, 3},
			amount: 7,
		},
		{
			name:     "no notes zero amount",
			values:   nil,
			amount:   0,
			expected: []int{},
			ok:       true,
		},
		{
			name:     "few notes zero amount",
			values:   []lux.Amount{1, 2, 3},
			amount:   0,
			expected: []int{},
			ok:       true,
		},
		{
			name:     "many notes zero amount",
			values:   []lux.Amount{1, 2, 3, 4, 100},
			amount:   0,
			expected: []int{},
			ok:       true,
		},
		{
			name:     "smallest four suffice",
			values:   []lux.Amount{1, 2, 3, 4, 100},
			amount:   10,
			expected: []int{0, 1, 2, 3},
			ok:       true,
		},
		{
			name:     "large note needed",
			values:   []lux.Amount{1, 2, 3, 4, 100},
			amount:   11,
			expected: []int{0, 1, 2, 4},
			ok:       true,
		},
		{
			name:     "exactly the four largest",
			values:   []lux.Amount{1, 2, 3, 4, 5, 6},
			amount:   18,
			expected: []int{2, 3, 4, 5},
			ok:       true,
		},
		{
			name:   "beyond the four largest",
			values: []lux.Amount{1, 2, 3, 4, 5, 6},
			amount: 19,
		},
		{
			name:     "middle combination",
			values:   []lux.Amount{1, 1, 5, 5, 5, 20},
			amount:   16,
			expected: []int{0, 1, 2, 5},
			ok:       true,
		},
		{
			name: "saturating sums",
			values: []lux.Amount{
				1, 2, lux.MaxAmount - 1, lux.MaxAmount,
				lux.MaxAmount,
			},
			amount:   lux.MaxAmount,
			expected: []int{0, 1, 2, 3},
			ok:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			picked, ok := pickCombination(tc.values, tc.amount, 4)
			require.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			require.Equal(t, tc.expected, picked)
		})
	}
}

// TestPickCombinationExhaustive compares the greedy construction with a
// plain lexicographic enumeration of every combination.
func TestPickCombinationExhaustive(t *testing.T) {
	t.Parallel()

	values := []lux.Amount{1, 1, 2, 3, 5, 8, 13, 21}

	firstCovering := func(amount lux.Amount) ([]int, bool) {
		n := len(values)
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				for c := b + 1; c < n; c++ {
					for d := c + 1; d < n; d++ {
						sum := values[a] + values[b] +
							values[c] + values[d]
						if sum >= amount {
							return []int{a, b, c, d},
								true
						}
					}
				}
			}
		}
		return nil, false
	}

	for amount := lux.Amount(1); amount <= 50; amount++ {
		want, wantOK := firstCovering(amount)
		got, ok := pickCombination(values, amount, 4)

		require.Equal(t, wantOK, ok, "amount %v", amount)
		require.Equal(t, want, got, "amount %v", amount)
	}
}

// TestPickNotes checks that the driver only picks notes of the address and
// that the picked notes cover the amount.
func TestPickNotes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := NewDriver()
	p := testProfile(t, 1)
	stranger := testProfile(t, 2)

	notes := mintNotes(t, p.Address(), 50, 10, 40, 20, 30)
	notes = append(notes, mintNotes(t, stranger.Address(), 500)...)

	balance, err := d.Balance(ctx, testSeed, 1, notes)
	require.NoError(t, err)
	require.Equal(t, lux.Amount(140), balance.Spendable)

	for _, amount := range []lux.Amount{0, 1, 60, 100, 140} {
		picked, err := d.PickNotes(ctx, p.Address(), notes, amount)
		require.NoError(t, err)
		require.LessOrEqual(t, len(picked), MaxInputNotes)

		total, err := lux.Sum(noteValues(t, picked)...)
		require.NoError(t, err)
		require.GreaterOrEqual(t, total, amount)
	}

	picked, err := d.PickNotes(ctx, p.Address(), notes, 100)
	require.NoError(t, err)
	require.Equal(t, []lux.Amount{10, 20, 30, 40}, noteValues(t, picked))

	// Nothing is spent for nothing.
	picked, err = d.PickNotes(ctx, p.Address(), notes, 0)
	require.NoError(t, err)
	require.Empty(t, picked)

	_, err = d.PickNotes(ctx, p.Address(), notes, 141)
	require.True(t, IsError(err, ErrNoCombination))
}
