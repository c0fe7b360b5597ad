// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bookkeeper_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/btcsuite/shieldwallet/bookkeeper"
	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/btcsuite/shieldwallet/protocol"
	"github.com/btcsuite/shieldwallet/treasury"
	"github.com/stretchr/testify/require"
)

// A compile-time assertion to ensure that the reference collaborators
// implement the interfaces of the bookkeeper.
var (
	_ bookkeeper.Treasury         = (treasury.Store)(nil)
	_ bookkeeper.ProfileGenerator = (*keyring.Generator)(nil)
	_ bookkeeper.ProtocolDriver   = (*protocol.Driver)(nil)
)

// testHarness wires a bookkeeper to the reference collaborators.
type testHarness struct {
	keeper   *bookkeeper.Bookkeeper
	store    *treasury.Memory
	gen      *keyring.Generator
	profile  *keyring.Profile
	entry    bookkeeper.BookEntry
	stranger *keyring.Profile
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	seed, err := keyring.GenerateSeed()
	require.NoError(t, err)

	gen := keyring.NewGenerator(seed)
	t.Cleanup(gen.Zero)

	store := treasury.NewMemory()
	keeper, err := bookkeeper.New(&bookkeeper.Config{
		Treasury:  store,
		Generator: gen,
		Driver:    protocol.NewDriver(),
	})
	require.NoError(t, err)

	profile, err := gen.Default()
	require.NoError(t, err)

	entry, err := keeper.As(profile)
	require.NoError(t, err)

	stranger, err := keyring.NewGenerator(keyring.Seed{1}).Default()
	require.NoError(t, err)

	return &testHarness{
		keeper:   keeper,
		store:    store,
		gen:      gen,
		profile:  profile,
		entry:    entry,
		stranger: stranger,
	}
}

// fund mints notes of the given values for the profile's address.
func (h *testHarness) fund(t *testing.T, values ...lux.Amount) []ledger.Note {
	t.Helper()

	notes := make([]ledger.Note, 0, len(values))
	for _, v := range values {
		note, err := protocol.NewNote(h.profile.Address(), v)
		require.NoError(t, err)
		notes = append(notes, note)
	}

	err := h.store.InsertNotes(
		context.Background(), h.profile.Address(), notes...,
	)
	require.NoError(t, err)

	return notes
}

// noteTotal returns the total value of the notes.
func noteTotal(t *testing.T, notes []ledger.Note) lux.Amount {
	t.Helper()

	var total lux.Amount
	for _, n := range notes {
		p, err := protocol.DecodeNote(n.Data)
		require.NoError(t, err)

		var overflow bool
		total, overflow = total.Add(p.Value)
		require.False(t, overflow)
	}

	return total
}

// TestEndToEndPick checks the pick properties against randomly funded
// addresses.
func TestEndToEndPick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(0x5eed))

	for round := 0; round < 20; round++ {
		h := newTestHarness(t)

		values := make([]lux.Amount, rng.Intn(9))
		for i := range values {
			values[i] = lux.Amount(rng.Intn(1000) + 1)
		}
		h.fund(t, values...)

		balance, err := h.entry.Balance(ctx, keyring.KindAddress)
		require.NoError(t, err)
		require.LessOrEqual(t, balance.Spendable, balance.Value)

		for _, amount := range []lux.Amount{
			0, 1, balance.Spendable / 2, balance.Spendable,
			balance.Spendable + 1, balance.Value + 1,
		} {
			picked, err := h.keeper.Pick(
				ctx, h.profile.Address(), amount,
			)
			if amount > balance.Spendable {
				require.True(t, bookkeeper.IsError(
					err, bookkeeper.ErrInsufficientFunds,
				))
				continue
			}

			require.NoError(t, err)
			require.LessOrEqual(
				t, len(picked), protocol.MaxInputNotes,
			)
			require.GreaterOrEqual(t, noteTotal(t, picked), amount)
		}
	}
}

// TestEndToEndScenario walks through the life of a profile: an account
// balance is recorded, notes are received, some are spent and transfers are
// drafted.
func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newTestHarness(t)
	p := h.profile

	// A fresh profile has nothing.
	for _, kind := range []keyring.Kind{
		keyring.KindAccount, keyring.KindAddress,
	} {
		balance, err := h.entry.Balance(ctx, kind)
		require.NoError(t, err)
		require.Equal(t, ledger.Balance{}, balance)
	}

	account := ledger.Balance{
		Value:     2 * bookkeeper.DefaultGasLimit,
		Spendable: 2 * bookkeeper.DefaultGasLimit,
	}
	require.NoError(t, h.store.SetAccount(ctx, p.Account(), account))

	balance, err := h.keeper.Balance(ctx, p.Account())
	require.NoError(t, err)
	require.Equal(t, account, balance)

	// Six notes, only the four largest can back a single spend.
	notes := h.fund(t, 10, 20, 30, 40, 50, 60)
	balance, err = h.entry.Balance(ctx, keyring.KindAddress)
	require.NoError(t, err)
	require.Equal(t, ledger.Balance{Value: 210, Spendable: 180}, balance)

	// Notes of another profile never count.
	foreign, err := protocol.NewNote(h.stranger.Address(), 1000)
	require.NoError(t, err)
	require.NoError(t, h.store.InsertNotes(ctx, p.Address(), foreign))

	balance, err = h.entry.Balance(ctx, keyring.KindAddress)
	require.NoError(t, err)
	require.Equal(t, lux.Amount(210), balance.Value)

	// The account of a foreign seed can not be resolved.
	_, err = h.keeper.Balance(ctx, h.stranger.Address())
	require.True(t, keyring.IsError(err, keyring.ErrForeignIdentifier))

	picked, err := h.keeper.Pick(ctx, p.Address(), 180)
	require.NoError(t, err)
	require.Equal(t, lux.Amount(180), noteTotal(t, picked))

	picked, err = h.keeper.Pick(ctx, p.Address(), 0)
	require.NoError(t, err)
	require.Empty(t, picked)

	_, err = h.keeper.Pick(ctx, p.Address(), 181)
	require.True(t, bookkeeper.IsError(err, bookkeeper.ErrInsufficientFunds))

	_, err = h.keeper.Pick(ctx, p.Account(), 1)
	require.True(t, bookkeeper.IsError(err, bookkeeper.ErrNotShielded))

	_, err = h.keeper.Balance(ctx, keyring.Identifier{Key: "0OIl"})
	require.True(t, bookkeeper.IsError(
		err, bookkeeper.ErrUnknownIdentifierType,
	))

	// Spending the two smallest notes lowers both amounts.
	spent, err := h.store.SpendNotes(ctx, ledger.Nullifiers(notes[:2])...)
	require.NoError(t, err)
	require.Equal(t, 2, spent)

	balance, err = h.entry.Balance(ctx, keyring.KindAddress)
	require.NoError(t, err)
	require.Equal(t, ledger.Balance{Value: 180, Spendable: 180}, balance)

	// Drafts.
	draft, err := h.entry.Unshield(100).Gas(20, 1).Build(ctx)
	require.NoError(t, err)
	require.Equal(t, p.Account(), draft.To)
	require.GreaterOrEqual(t, noteTotal(t, draft.Inputs), lux.Amount(120))

	draft, err = h.entry.Shield(bookkeeper.DefaultGasLimit).Build(ctx)
	require.NoError(t, err)
	require.Equal(t, p.Address(), draft.To)

	_, err = h.entry.Shield(bookkeeper.DefaultGasLimit + 1).Build(ctx)
	require.True(t, bookkeeper.IsError(err, bookkeeper.ErrInsufficientFunds))

	other, err := h.gen.Derive(1)
	require.NoError(t, err)

	draft, err = h.entry.Transfer(150).To(other.Address()).Gas(30, 1).
		Build(ctx)
	require.NoError(t, err)
	require.Equal(t, p.Address(), draft.From)
	require.Len(t, draft.Inputs, 4)
}
