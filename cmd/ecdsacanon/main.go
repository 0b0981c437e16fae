package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	flags "github.com/jessevdk/go-flags"
)

// out receives command results.  Log output goes to standard error.
var out io.Writer = os.Stdout

// decodeHex decodes a hex string with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// newParser creates the command line parser with all commands registered.
func newParser(cfg *config) (*flags.Parser, error) {
	parser := flags.NewParser(cfg, flags.Default)

	commands := []struct {
		name, short, long string
		data              interface{}
	}{{
		"sign",
		"Sign with a software key and print the canonical signature",
		"Loads a secp256k1 private key into a software signer, signs the " +
			"Keccak-256 hash of MESSAGE (or the --digest given) and prints " +
			"the low-s signature with its legacy v value.",
		&signCommand{},
	}, {
		"normalize",
		"Normalize raw signer output from a JSON or CSV file",
		"Reads r, s and recovery ids captured from a signer and prints " +
			"each signature in canonical low-s form.",
		&normalizeCommand{},
	}, {
		"verify",
		"Check that a canonical signature recovers a public key",
		"Parses a signature produced by sign or normalize, recovers the " +
			"public key for the digest and compares it with --pubkey.",
		&verifyCommand{},
	}}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return nil, err
		}
	}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		if err := cfg.setupLogging(); err != nil {
			return err
		}
		return command.Execute(args)
	}
	return parser, nil
}

func main() {
	cfg := defaultConfig()
	parser, err := newParser(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, err = parser.Parse()
	if logRotator != nil {
		logRotator.Close()
	}
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
