package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// ErrMalformedEntry reports a trace line that cannot be parsed.
var ErrMalformedEntry = errors.New("malformed trace entry")

// A Parser reads text traces. Each non-empty line holds an address in 0x/0X
// hexadecimal or decimal, optionally followed by an access type (READ or
// WRITE) and a decimal timestamp. Blank lines and lines starting with # are
// ignored.
//
// By default malformed lines are skipped with a warning. With Strict set,
// the first malformed line aborts the parse.
type Parser struct {
	Strict bool
	Logger *log.Logger
}

// Parse reads all accesses from r.
func (p Parser) Parse(r io.Reader) ([]Access, error) {
	var accesses []Access

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		access, err := parseLine(line, uint64(len(accesses)))
		if err != nil {
			if p.Strict {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}

			p.logger().Printf("skipping trace line %d: %s", lineNum, err)

			continue
		}

		accesses = append(accesses, access)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return accesses, nil
}

func (p Parser) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}

	return log.Default()
}

func parseLine(line string, position uint64) (Access, error) {
	fields := strings.Fields(line)

	addr, err := parseAddress(fields[0])
	if err != nil {
		return Access{}, err
	}

	access := Access{Address: addr, Type: Read, Timestamp: position}

	if len(fields) >= 2 {
		access.Type, err = parseAccessType(fields[1])
		if err != nil {
			return Access{}, err
		}
	}

	if len(fields) >= 3 {
		access.Timestamp, err = strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return Access{}, fmt.Errorf("%w: bad timestamp %q",
				ErrMalformedEntry, fields[2])
		}
	}

	if len(fields) > 3 {
		return Access{}, fmt.Errorf("%w: too many fields in %q",
			ErrMalformedEntry, line)
	}

	return access, nil
}

func parseAddress(s string) (uint64, error) {
	var addr uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		addr, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		addr, err = strconv.ParseUint(s, 10, 64)
	}

	if err != nil {
		return 0, fmt.Errorf("%w: bad address %q", ErrMalformedEntry, s)
	}

	return addr, nil
}

func parseAccessType(s string) (AccessType, error) {
	switch strings.ToUpper(s) {
	case "READ", "R":
		return Read, nil
	case "WRITE", "W":
		return Write, nil
	default:
		return Read, fmt.Errorf("%w: bad access type %q", ErrMalformedEntry, s)
	}
}
