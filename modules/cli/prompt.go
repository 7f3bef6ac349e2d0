package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errNoInput = errors.New("no input")

// promptString asks for a value until a non-empty line is read.
func (m *Module) promptString(label string) (string, error) {
	for {
		fmt.Fprintf(m.out, "%s: ", label)
		line, err := m.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errNoInput
			}
			return "", err
		}
	}
}

// promptInt asks for an integer, returning def on an empty line.
func (m *Module) promptInt(label string, def int) (int, error) {
	for {
		fmt.Fprintf(m.out, "%s [%d]: ", label, def)
		line, err := m.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return 0, err
			}
			return def, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil {
			return n, nil
		}
		fmt.Fprintf(m.errOut, "Error: %q is not a valid integer.\n", line)
		if err != nil {
			return 0, errNoInput
		}
	}
}
