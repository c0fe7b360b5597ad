// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !js

package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/shieldwallet/keyring"
	"golang.org/x/term"
)

// readPassphrase reads a line without echo when stdin is a terminal, and a
// plain line from the reader otherwise so passphrases can be piped in.
func readPassphrase(reader *bufio.Reader) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pass, err := term.ReadPassword(fd)
		fmt.Print("\n")
		return pass, err
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}

	return []byte(line), nil
}

// promptList prompts the user with the given prefix, list of valid responses,
// and default list entry to use.  The function will repeat the prompt to the
// user until they enter a valid response.
func promptList(reader *bufio.Reader, prefix string, validResponses []string,
	defaultEntry string) (string, error) {

	// Setup the prompt according to the parameters.
	validStrings := strings.Join(validResponses, "/")
	var prompt string
	if defaultEntry != "" {
		prompt = fmt.Sprintf("%s (%s) [%s]: ", prefix, validStrings,
			defaultEntry)
	} else {
		prompt = fmt.Sprintf("%s (%s): ", prefix, validStrings)
	}

	// Prompt the user until one of the valid responses is given.
	for {
		fmt.Print(prompt)
		reply, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		reply = strings.TrimSpace(strings.ToLower(reply))
		if reply == "" {
			reply = defaultEntry
		}

		for _, validResponse := range validResponses {
			if reply == validResponse {
				return reply, nil
			}
		}
	}
}

// promptListBool prompts the user for a boolean (yes/no) with the given
// prefix. The function will repeat the prompt to the user until they enter a
// valid response.
func promptListBool(reader *bufio.Reader, prefix string,
	defaultEntry string) (bool, error) {

	// Setup the valid responses.
	valid := []string{"n", "no", "y", "yes"}
	response, err := promptList(reader, prefix, valid, defaultEntry)
	if err != nil {
		return false, err
	}
	return response == "yes" || response == "y", nil
}

// PassPrompt prompts the user for a passphrase with the given prefix.  The
// function will ask the user to confirm the passphrase and will repeat the
// prompts until they enter a matching response.
func PassPrompt(reader *bufio.Reader, prefix string,
	confirm bool) ([]byte, error) {

	// Prompt the user until they enter a passphrase.
	prompt := fmt.Sprintf("%s: ", prefix)
	for {
		fmt.Print(prompt)
		pass, err := readPassphrase(reader)
		if err != nil {
			return nil, err
		}
		pass = bytes.TrimSpace(pass)
		if len(pass) == 0 {
			continue
		}

		if !confirm {
			return pass, nil
		}

		fmt.Print("Confirm passphrase: ")
		confirm, err := readPassphrase(reader)
		if err != nil {
			return nil, err
		}
		confirm = bytes.TrimSpace(confirm)
		if !bytes.Equal(pass, confirm) {
			fmt.Println("The entered passphrases do not match")
			continue
		}

		return pass, nil
	}
}

// Passphrase prompts for the passphrase of an existing wallet.
func Passphrase(reader *bufio.Reader) ([]byte, error) {
	return PassPrompt(reader, "Enter the wallet passphrase", false)
}

// NewPassphrase prompts for the passphrase protecting the seed of a new
// wallet, asking for a confirmation.
func NewPassphrase(reader *bufio.Reader) ([]byte, error) {
	return PassPrompt(reader, "Enter the passphrase for your new wallet",
		true)
}

// Seed prompts the user whether they want to restore an existing seed. When
// the user answers no, a seed is generated and displayed, and the user must
// confirm it was backed up. When the user answers yes, the hex encoded seed
// is read until it is valid.
func Seed(reader *bufio.Reader) (keyring.Seed, error) {
	useUserSeed, err := promptListBool(reader, "Do you have an "+
		"existing wallet seed you want to use?", "no")
	if err != nil {
		return keyring.Seed{}, err
	}

	if !useUserSeed {
		seed, err := keyring.GenerateSeed()
		if err != nil {
			return keyring.Seed{}, err
		}

		fmt.Printf("Your wallet generation seed is:\n%x\n\n", seed[:])
		fmt.Println("IMPORTANT: Keep the seed in a safe place as you\n" +
			"will NOT be able to restore your wallet without it.")
		fmt.Println("Anyone who has access to the seed can also\n" +
			"restore your wallet and spend all your funds.")

		for {
			fmt.Print(`Once you have stored the seed in a safe ` +
				`and secure location, enter "OK" to continue: `)
			confirmSeed, err := reader.ReadString('\n')
			if err != nil {
				seed.Zero()
				return keyring.Seed{}, err
			}
			confirmSeed = strings.TrimSpace(confirmSeed)
			confirmSeed = strings.Trim(confirmSeed, `"`)
			if confirmSeed == "OK" {
				break
			}
		}

		return seed, nil
	}

	for {
		fmt.Print("Enter existing wallet seed (hex): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return keyring.Seed{}, err
		}

		// Seeds are often copied in groups, ignore the whitespace.
		hexSeed := strings.Join(strings.Fields(line), "")

		seed, err := keyring.SeedFromHex(hexSeed)
		if err != nil {
			fmt.Printf("Invalid seed specified: %v\n", err)
			continue
		}

		return seed, nil
	}
}
