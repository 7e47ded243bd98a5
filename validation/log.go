package validation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLog is wrapped by ParseLog for lines that are not valid
// records.
var ErrMalformedLog = errors.New("malformed validation log")

// WriteLog writes a log in the text format shared with other
// implementations: one record per line,
// `index address block set way tag HIT|MISS`.
func WriteLog(w io.Writer, records []Record) error {
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%d 0x%08X %d %d %d %d %s\n",
			r.Index, r.Address, r.Block, r.Set, r.Way, r.Tag,
			outcomeString(r.Hit))
		if err != nil {
			return fmt.Errorf("write validation log: %w", err)
		}
	}

	return nil
}

// ParseLog reads a log in the WriteLog text format. Blank lines and lines
// starting with `#` are ignored.
func ParseLog(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v",
				lineNum, ErrMalformedLog, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read validation log: %w", err)
	}

	return records, nil
}

func parseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return Record{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("index %q: %w", fields[0], err)
	}

	address, err := parseAddress(fields[1])
	if err != nil {
		return Record{}, err
	}

	block, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("block %q: %w", fields[2], err)
	}

	set, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("set %q: %w", fields[3], err)
	}

	way, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("way %q: %w", fields[4], err)
	}

	tag, err := strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("tag %q: %w", fields[5], err)
	}

	var hit bool
	switch strings.ToUpper(fields[6]) {
	case "HIT":
		hit = true
	case "MISS":
		hit = false
	default:
		return Record{}, fmt.Errorf("outcome %q: want HIT or MISS", fields[6])
	}

	return Record{
		Index:   index,
		Address: address,
		Block:   block,
		Set:     set,
		Way:     way,
		Tag:     tag,
		Hit:     hit,
	}, nil
}

func parseAddress(field string) (uint64, error) {
	s := field
	base := 10

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}

	address, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("address %q: %w", field, err)
	}

	return address, nil
}
