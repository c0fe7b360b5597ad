// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/shieldwallet/bookkeeper"
	"github.com/btcsuite/shieldwallet/keyring"
	"github.com/btcsuite/shieldwallet/ledger"
	"github.com/btcsuite/shieldwallet/pkg/lux"
	"github.com/btcsuite/shieldwallet/protocol"
	"github.com/btcsuite/shieldwallet/treasury"
)

// session is what a command runs against: the treasury, the profile
// selected with --index and the book entry of that profile.
type session struct {
	store   treasury.Store
	profile *keyring.Profile
	entry   bookkeeper.BookEntry
	keeper  *bookkeeper.Bookkeeper

	gasLimit lux.Amount
	gasPrice lux.Amount
	memo     []byte

	out io.Writer
}

// commandHandler runs a command with its positional arguments.
type commandHandler func(ctx context.Context, s *session, args []string) error

type walletCommand struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	handler commandHandler
}

// cmdCreate is handled before a session exists, see walletMain.
const cmdCreate = "create"

var walletCommands = map[string]walletCommand{
	"profile": {
		help:    "Show the account and the address of the profile",
		handler: handleProfile,
	},
	"balance": {
		usage:   "<account|address>",
		help:    "Show the balance of the account or the address",
		minArgs: 1, maxArgs: 1,
		handler: handleBalance,
	},
	"setaccount": {
		usage:   "<value> [spendable]",
		help:    "Record the balance of the account",
		minArgs: 1, maxArgs: 2,
		handler: handleSetAccount,
	},
	"importnote": {
		usage:   "<value>",
		help:    "Attribute a new note worth value to the address",
		minArgs: 1, maxArgs: 1,
		handler: handleImportNote,
	},
	"spendnotes": {
		usage:   "<nullifier> [nullifier...]",
		help:    "Forget the notes whose nullifiers were published",
		minArgs: 1, maxArgs: -1,
		handler: handleSpendNotes,
	},
	"pick": {
		usage:   "<amount>",
		help:    "Select the notes of the address covering amount",
		minArgs: 1, maxArgs: 1,
		handler: handlePick,
	},
	"transfer": {
		usage:   "<to> <amount>",
		help:    "Draft a transfer to an account or an address",
		minArgs: 2, maxArgs: 2,
		handler: handleTransfer,
	},
	"shield": {
		usage:   "<amount>",
		help:    "Draft a transfer from the account to the address",
		minArgs: 1, maxArgs: 1,
		handler: handleShield,
	},
	"unshield": {
		usage:   "<amount>",
		help:    "Draft a transfer from the address to the account",
		minArgs: 1, maxArgs: 1,
		handler: handleUnshield,
	},
}

// commandUsage returns the help text listing every command.
func commandUsage() string {
	names := make([]string, 0, len(walletCommands)+1)
	for name := range walletCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	fmt.Fprintf(&b, "  %-32s %s\n", cmdCreate,
		"Create a new wallet, restoring a seed if one is given")
	for _, name := range names {
		c := walletCommands[name]
		fmt.Fprintf(&b, "  %-32s %s\n",
			strings.TrimSpace(name+" "+c.usage), c.help)
	}

	return b.String()
}

// lookupCommand returns the command named by the first argument after
// checking the number of arguments it was given.
func lookupCommand(args []string) (walletCommand, []string, error) {
	name, params := args[0], args[1:]

	c, ok := walletCommands[name]
	if !ok {
		return walletCommand{}, nil, fmt.Errorf("unknown command %q",
			name)
	}

	if len(params) < c.minArgs ||
		(c.maxArgs >= 0 && len(params) > c.maxArgs) {

		return walletCommand{}, nil, fmt.Errorf("usage: %s %s", name,
			c.usage)
	}

	return c, params, nil
}

// parseAmount parses a DUSK amount argument.
func parseAmount(arg string) (lux.Amount, error) {
	amount, err := lux.ParseAmount(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", arg, err)
	}

	return amount, nil
}

func handleProfile(_ context.Context, s *session, _ []string) error {
	p := s.profile
	fmt.Fprintf(s.out, "index:   %d\n", p.Index())
	fmt.Fprintf(s.out, "account: %v\n", p.Account())
	fmt.Fprintf(s.out, "address: %v\n", p.Address())

	return nil
}

func handleBalance(ctx context.Context, s *session, args []string) error {
	kind, err := keyring.ParseKind(args[0])
	if err != nil {
		return err
	}

	balance, err := s.entry.Balance(ctx, kind)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "value:     %v\n", balance.Value)
	fmt.Fprintf(s.out, "spendable: %v\n", balance.Spendable)

	return nil
}

func handleSetAccount(ctx context.Context, s *session, args []string) error {
	value, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	spendable := value
	if len(args) > 1 {
		spendable, err = parseAmount(args[1])
		if err != nil {
			return err
		}
	}

	balance := ledger.Balance{Value: value, Spendable: spendable}
	err = s.store.SetAccount(ctx, s.profile.Account(), balance)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%v: %v\n", s.profile.Account(), balance)

	return nil
}

func handleImportNote(ctx context.Context, s *session, args []string) error {
	value, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	note, err := protocol.NewNote(s.profile.Address(), value)
	if err != nil {
		return err
	}

	err = s.store.InsertNotes(ctx, s.profile.Address(), note)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%v\n", note.Nullifier)

	return nil
}

func handleSpendNotes(ctx context.Context, s *session, args []string) error {
	nullifiers := make([]ledger.Nullifier, 0, len(args))
	for _, arg := range args {
		n, err := chainhash.NewHashFromStr(arg)
		if err != nil {
			return fmt.Errorf("invalid nullifier %q: %w", arg, err)
		}
		nullifiers = append(nullifiers, *n)
	}

	spent, err := s.store.SpendNotes(ctx, nullifiers...)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "spent %d of %d notes\n", spent, len(nullifiers))

	return nil
}

func handlePick(ctx context.Context, s *session, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	notes, err := s.keeper.Pick(ctx, s.profile.Address(), amount)
	if err != nil {
		return err
	}

	for _, n := range notes {
		fmt.Fprintf(s.out, "%v\n", n.Nullifier)
	}

	return nil
}

func handleTransfer(ctx context.Context, s *session, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	draft, err := s.entry.Transfer(amount).
		To(keyring.Identifier{Key: args[0]}).
		Gas(s.gasLimit, s.gasPrice).
		Memo(s.memo).
		Build(ctx)
	if err != nil {
		return err
	}

	writeDraft(s.out, draft)

	return nil
}

func handleShield(ctx context.Context, s *session, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	draft, err := s.entry.Shield(amount).
		Gas(s.gasLimit, s.gasPrice).
		Memo(s.memo).
		Build(ctx)
	if err != nil {
		return err
	}

	writeDraft(s.out, draft)

	return nil
}

func handleUnshield(ctx context.Context, s *session, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	draft, err := s.entry.Unshield(amount).
		Gas(s.gasLimit, s.gasPrice).
		Memo(s.memo).
		Build(ctx)
	if err != nil {
		return err
	}

	writeDraft(s.out, draft)

	return nil
}

// writeDraft prints a draft in the key: value layout of the other commands.
func writeDraft(w io.Writer, d *bookkeeper.Draft) {
	fmt.Fprintf(w, "kind:     %v\n", d.Kind)
	fmt.Fprintf(w, "from:     %v\n", d.From)
	fmt.Fprintf(w, "to:       %v\n", d.To)
	fmt.Fprintf(w, "amount:   %v\n", d.Amount)
	fmt.Fprintf(w, "gaslimit: %d\n", uint64(d.GasLimit))
	fmt.Fprintf(w, "gasprice: %v\n", d.GasPrice)
	fmt.Fprintf(w, "fee:      %v\n", d.Fee)
	if len(d.Memo) > 0 {
		fmt.Fprintf(w, "memo:     %q\n", d.Memo)
	}
	for _, n := range d.Inputs {
		fmt.Fprintf(w, "input:    %v\n", n.Nullifier)
	}
}
