// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bookkeeper

import (
	"context"
	"testing"

	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestEntry returns an entry over mocks for a freshly derived profile.
func newTestEntry(t *testing.T) (BookEntry, *mockCollaborators) {
	t.Helper()

	b, m := newMockBookkeeper(t)
	entry, err := b.As(testProfile(t, 1))
	require.NoError(t, err)

	return entry, m
}

// expectAccount sets up the mocks so that the account id has balance.
func (m *mockCollaborators) expectAccount(id keyring.Identifier,
	balance ledger.Balance) {

	m.generator.On("TypeOf", id).Return(keyring.KindAccount)
	m.treasury.On("Account", mock.Anything, id).Return(balance, nil)
}

// TestGasFee checks the fee computation of the gas configuration.
func TestGasFee(t *testing.T) {
	t.Parallel()

	fee, err := Gas{Limit: 1000, Price: 3}.Fee()
	require.NoError(t, err)
	require.Equal(t, lux.Amount(3000), fee)

	_, err = Gas{Limit: lux.MaxAmount, Price: 2}.Fee()
	require.ErrorIs(t, err, lux.ErrAmountOverflow)

	require.Equal(t, "shield", DraftShield.String())
}

// TestTransferIncomplete checks the transfers rejected before any lookup.
func TestTransferIncomplete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entry, m := newTestEntry(t)

	// Construction never reaches the collaborators.
	tx := entry.Transfer(10)
	_ = entry.Shield(10)
	_ = entry.Unshield(10)
	m.generator.AssertNotCalled(t, "TypeOf", mock.Anything)

	_, err := tx.Build(ctx)
	require.True(t, IsError(err, ErrIncompleteTransfer))

	to := keyring.Identifier{Key: "nowhere"}
	m.generator.On("TypeOf", to).Return(keyring.KindUnknown)
	_, err = entry.Transfer(10).To(to).Build(ctx)
	require.True(t, IsError(err, ErrUnknownIdentifierType))

	_, err = entry.Shield(0).Build(ctx)
	require.True(t, IsError(err, ErrZeroAmount))

	_, err = entry.Unshield(0).Build(ctx)
	require.True(t, IsError(err, ErrZeroAmount))

	_, err = entry.Unshield(1).Gas(lux.MaxAmount, 2).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))
	require.ErrorIs(t, err, lux.ErrAmountOverflow)

	_, err = entry.Unshield(lux.MaxAmount).Build(ctx)
	require.ErrorIs(t, err, lux.ErrAmountOverflow)
}

// TestTransferShielded checks a transfer to another address, funded by the
// notes of the profile's address.
func TestTransferShielded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entry, m := newTestEntry(t)
	from := entry.Profile().Address()
	to := testProfile(t, 9).Address()
	notes := testNotes(4)

	m.generator.On("TypeOf", to).Return(keyring.KindAddress)
	m.expectAddress(
		from, testSeed, notes, ledger.Balance{Value: 90, Spendable: 70},
	)

	// 40 plus a fee of 10 * 3.
	m.driver.On("PickNotes", mock.Anything, from, notes, lux.Amount(70)).
		Return(notes[:2], nil)

	memo := []byte("rent")
	draft, err := entry.Transfer(40).To(to).Gas(10, 3).Memo(memo).
		Build(ctx)
	require.NoError(t, err)

	// The memo is copied when set.
	memo[0] = 'R'

	require.Equal(t, &Draft{
		Kind:     DraftTransfer,
		From:     from,
		To:       to,
		Amount:   40,
		GasLimit: 10,
		GasPrice: 3,
		Fee:      30,
		Memo:     []byte("rent"),
		Inputs:   notes[:2],
	}, draft)

	// One more LUX can not be funded.
	_, err = entry.Transfer(41).To(to).Gas(10, 3).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))
}

// TestTransferTransparent checks a transfer to another account, funded by
// the profile's account.
func TestTransferTransparent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entry, m := newTestEntry(t)
	from := entry.Profile().Account()
	to := testProfile(t, 9).Account()

	m.generator.On("TypeOf", to).Return(keyring.KindAccount)
	m.expectAccount(from, ledger.Balance{
		Value:     DefaultGasLimit + 500,
		Spendable: DefaultGasLimit + 100,
	})

	draft, err := entry.Transfer(100).To(to).Build(ctx)
	require.NoError(t, err)
	require.Equal(t, DraftTransfer, draft.Kind)
	require.Equal(t, from, draft.From)
	require.Equal(t, to, draft.To)
	require.Equal(t, DefaultGasLimit, draft.GasLimit)
	require.Equal(t, DefaultGasPrice, draft.GasPrice)
	require.Empty(t, draft.Inputs)
	require.Nil(t, draft.Memo)

	_, err = entry.Transfer(101).To(to).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))

	m.driver.AssertNotCalled(
		t, "PickNotes", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything,
	)
}

// TestShield checks that shielding is funded by the account.
func TestShield(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entry, m := newTestEntry(t)
	p := entry.Profile()

	m.expectAccount(p.Account(), ledger.Balance{Value: 50, Spendable: 50})

	draft, err := entry.Shield(45).Gas(5, 1).Build(ctx)
	require.NoError(t, err)
	require.Equal(t, DraftShield, draft.Kind)
	require.Equal(t, p.Account(), draft.From)
	require.Equal(t, p.Address(), draft.To)
	require.Equal(t, lux.Amount(45), draft.Amount)
	require.Equal(t, lux.Amount(5), draft.Fee)
	require.Empty(t, draft.Inputs)

	// A fee that overflows is never drafted.
	_, err = entry.Shield(1).Gas(lux.MaxAmount, 2).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))
	require.ErrorIs(t, err, lux.ErrAmountOverflow)

	_, err = entry.Shield(46).Gas(5, 1).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))

	// The default fee is far above the account balance.
	_, err = entry.Shield(1).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))
}

// TestUnshield checks that unshielding picks the notes of the address.
func TestUnshield(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	entry, m := newTestEntry(t)
	p := entry.Profile()
	notes := testNotes(3)

	m.expectAddress(
		p.Address(), testSeed, notes,
		ledger.Balance{Value: 1000, Spendable: 1000},
	)
	m.driver.On("PickNotes", mock.Anything, p.Address(), notes,
		lux.Amount(1000)).Return(notes, nil)

	draft, err := entry.Unshield(800).Gas(100, 2).Memo([]byte("out")).
		Build(ctx)
	require.NoError(t, err)
	require.Equal(t, DraftUnshield, draft.Kind)
	require.Equal(t, p.Address(), draft.From)
	require.Equal(t, p.Account(), draft.To)
	require.Equal(t, notes, draft.Inputs)
	require.Equal(t, []byte("out"), draft.Memo)

	_, err = entry.Unshield(801).Gas(100, 2).Build(ctx)
	require.True(t, IsError(err, ErrInsufficientFunds))
}
