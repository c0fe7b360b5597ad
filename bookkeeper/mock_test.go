// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// This file contains mock implementations of the bookkeeper collaborators.
// They are used to isolate the bookkeeping logic from the stores and the
// protocol engine.

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

// mockTreasury is a mock implementation of the Treasury interface.
type mockTreasury struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockTreasury implements the
// Treasury interface.
var _ Treasury = (*mockTreasury)(nil)

// Account implements the Treasury interface.
func (m *mockTreasury) Account(ctx context.Context,
	id keyring.Identifier) (ledger.Balance, error) {

	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Balance), args.Error(1)
}

// Address implements the Treasury interface.
func (m *mockTreasury) Address(ctx context.Context,
	id keyring.Identifier) ([]ledger.Note, error) {

	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]ledger.Note), args.Error(1)
}

// mockGenerator is a mock implementation of the ProfileGenerator interface.
type mockGenerator struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockGenerator implements the
// ProfileGenerator interface.
var _ ProfileGenerator = (*mockGenerator)(nil)

// TypeOf implements the ProfileGenerator interface.
func (m *mockGenerator) TypeOf(id keyring.Identifier) keyring.Kind {
	args := m.Called(id)
	return args.Get(0).(keyring.Kind)
}

// SeedFrom implements the ProfileGenerator interface.
func (m *mockGenerator) SeedFrom(ctx context.Context,
	id keyring.Identifier) (keyring.Seed, error) {

	args := m.Called(ctx, id)
	return args.Get(0).(keyring.Seed), args.Error(1)
}

// mockDriver is a mock implementation of the ProtocolDriver interface.
type mockDriver struct {
	mock.Mock
}

// A compile-time assertion to ensure that mockDriver implements the
// ProtocolDriver interface.
var _ ProtocolDriver = (*mockDriver)(nil)

// Balance implements the ProtocolDriver interface.
func (m *mockDriver) Balance(ctx context.Context, seed keyring.Seed,
	index uint32, notes []ledger.Note) (ledger.Balance, error) {

	args := m.Called(ctx, seed, index, notes)
	return args.Get(0).(ledger.Balance), args.Error(1)
}

// PickNotes implements the ProtocolDriver interface.
func (m *mockDriver) PickNotes(ctx context.Context, id keyring.Identifier,
	notes []ledger.Note, amount lux.Amount) ([]ledger.Note, error) {

	args := m.Called(ctx, id, notes, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]ledger.Note), args.Error(1)
}

// mockCollaborators holds the mocks a test bookkeeper is built on.
type mockCollaborators struct {
	treasury  *mockTreasury
	generator *mockGenerator
	driver    *mockDriver
}

// newMockBookkeeper returns a bookkeeper over fresh mocks. The expectations
// of the mocks are asserted when the test ends.
func newMockBookkeeper(t *testing.T) (*Bookkeeper, *mockCollaborators) {
	t.Helper()

	m := &mockCollaborators{
		treasury:  &mockTreasury{},
		generator: &mockGenerator{},
		driver:    &mockDriver{},
	}

	b, err := New(&Config{
		Treasury:  m.treasury,
		Generator: m.generator,
		Driver:    m.driver,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		m.treasury.AssertExpectations(t)
		m.generator.AssertExpectations(t)
		m.driver.AssertExpectations(t)
	})

	return b, m
}

// expectAddress sets up the mocks so that the address id owns notes whose
// balance, as computed by the driver, is balance.
func (m *mockCollaborators) expectAddress(id keyring.Identifier,
	seed keyring.Seed, notes []ledger.Note, balance ledger.Balance) {

	m.generator.On("TypeOf", id).Return(keyring.KindAddress)
	m.treasury.On("Address", mock.Anything, id).Return(notes, nil)
	m.generator.On("SeedFrom", mock.Anything, id).Return(seed, nil)
	m.driver.On("Balance", mock.Anything, seed, id.Index, notes).
		Return(balance, nil)
}
