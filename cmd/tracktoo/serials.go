package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// resolveSerials decides where the serial numbers for a run come from, in
// priority order: command-line arguments, an explicit input file, piped
// stdin, the configured input file if it exists, and finally an interactive
// prompt when stdin is a terminal.
func resolveSerials(args []string, inputFlag, configuredInput string, stdin *os.File, stdout io.Writer) ([]string, error) {
	if len(args) > 0 {
		return cleanSerials(args), nil
	}

	if inputFlag != "" {
		return readSerialFile(inputFlag)
	}

	if stdin != nil && !stdinIsTerminal(stdin) {
		serials, err := readSerialLines(stdin)
		if err != nil {
			return nil, fmt.Errorf("read serial numbers from stdin: %w", err)
		}
		return serials, nil
	}

	if configuredInput != "" {
		serials, err := readSerialFile(configuredInput)
		if err == nil {
			return serials, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if stdin != nil && stdinIsTerminal(stdin) {
		return promptSerials(stdin, stdout)
	}

	return nil, errors.New("no serial numbers given; pass them as arguments or via --input")
}

func stdinIsTerminal(stdin *os.File) bool {
	fd := stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readSerialFile reads serial numbers from the first column of a CSV-shaped
// file, one serial per line. Exports from spreadsheet tools often carry a
// UTF-8 byte order mark, which is stripped.
func readSerialFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open serial number file: %w", err)
	}
	defer file.Close()

	serials, err := readSerialLines(file)
	if err != nil {
		return nil, fmt.Errorf("read serial number file %q: %w", path, err)
	}
	return serials, nil
}

func readSerialLines(r io.Reader) ([]string, error) {
	var serials []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if serial := firstColumn(line); serial != "" {
			serials = append(serials, serial)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return serials, nil
}

func firstColumn(line string) string {
	if i := strings.IndexByte(line, ','); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func cleanSerials(values []string) []string {
	serials := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			serials = append(serials, trimmed)
		}
	}
	return serials
}

func promptSerials(stdin io.Reader, stdout io.Writer) ([]string, error) {
	fmt.Fprintln(stdout, "Enter serial numbers, one per line. Finish with an empty line:")
	var serials []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		serial := strings.TrimSpace(scanner.Text())
		if serial == "" {
			break
		}
		serials = append(serials, serial)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read serial numbers: %w", err)
	}
	return serials, nil
}
