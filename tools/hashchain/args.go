package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func parseStatement(args []string) (uint64, int, error) {
	initValue, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("init value: %w", err)
	}
	stepNum, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("step count: %w", err)
	}
	return initValue, stepNum, nil
}

// writeHex writes v hex encoded to path, or to stdout when path is empty.
func writeHex(path string, v io.WriterTo) error {
	if path == "" {
		return encodeHex(os.Stdout, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeHex(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeHex(w io.Writer, v io.WriterTo) error {
	if _, err := v.WriteTo(hex.NewEncoder(w)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func readHex(path string, v io.ReaderFrom) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = v.ReadFrom(hex.NewDecoder(strings.NewReader(strings.TrimSpace(string(raw)))))
	return err
}
