package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cbor-go/cbor-go/logging"
)

// readInput returns the contents of the file named by the single positional
// argument, or of stdin when there is none, hex-decoded if hexMode is set.
func readInput(e *env, args []string, hexMode bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch len(args) {
	case 0:
		data, err = io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		e.logger.Logf(logging.Info, "read %d bytes from stdin", len(data))
	case 1:
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
		e.logger.Logf(logging.Info, "read %d bytes from %s", len(data), args[0])
	default:
		return nil, fmt.Errorf("expected at most one file argument, got %d", len(args))
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput decodes hex text whose digit pairs may be split by spaces,
// tabs or newlines, as printed by `cbor encode --hex` or `xxd -p`.
func decodeHexInput(data []byte) ([]byte, error) {
	digits := strings.Join(strings.Fields(string(data)), "")
	if digits == "" {
		return nil, fmt.Errorf("hex input holds no digits")
	}

	p, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return p, nil
}

// writeOutput writes p raw, or as a line of hex when hexMode is set.
func writeOutput(e *env, p []byte, hexMode bool) error {
	if hexMode {
		_, err := fmt.Fprintln(e.stdout, hex.EncodeToString(p))
		return err
	}
	_, err := e.stdout.Write(p)
	return err
}
