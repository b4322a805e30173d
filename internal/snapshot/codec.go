// Package snapshot implements the backup codec: a gzip-compressed CSV table
// of usernames, display names and role membership flags.
package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/entities"
)

const (
	headerUsername    = "Username"
	headerDisplayName = "Display Name"
)

// Row is one decoded backup entry. Flags is keyed by platform role id and
// carries an explicit value for every managed role in the catalog.
type Row struct {
	Username    string
	DisplayName string
	Flags       map[string]bool
}

// Encode serializes a roster into the backup format. Users appear in the
// roster's listing order, role columns in catalog declaration order with
// Other-category roles excluded. Every field is double-quoted.
func Encode(roster *entities.Roster, catalog *entities.Catalog) ([]byte, error) {
	managed := catalog.Managed()

	var csvBuf bytes.Buffer
	header := make([]string, 0, 2+len(managed))
	header = append(header, headerUsername, headerDisplayName)
	for _, role := range managed {
		header = append(header, role.Name)
	}
	writeRecord(&csvBuf, header)

	for _, user := range roster.Users() {
		record := make([]string, 0, len(header))
		record = append(record, user.Username, user.DisplayName)
		for _, role := range managed {
			flag := "0"
			if user.HasRole(role.ID) {
				flag = "1"
			}
			record = append(record, flag)
		}
		writeRecord(&csvBuf, record)
	}

	var out bytes.Buffer
	zw, err := gzip.NewWriterLevel(&out, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("open gzip writer: %w", err)
	}
	if _, err := zw.Write(csvBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish backup: %w", err)
	}
	return out.Bytes(), nil
}

// writeRecord emits one CSV record with every field quoted, per the backup
// file contract.
func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// Decode parses a backup produced by Encode. It fails with
// ErrMalformedBackup when the header is missing or does not match the
// catalog's managed role names, when a row's column count differs from the
// header, or when a flag cell is not exactly "0" or "1". Usernames unknown
// to the caller are not an error.
func Decode(data []byte, catalog *entities.Catalog) ([]Row, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a gzip stream: %v", entities.ErrMalformedBackup, err)
	}
	defer func() { _ = zr.Close() }()

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated gzip stream: %v", entities.ErrMalformedBackup, err)
	}

	reader := csv.NewReader(bytes.NewReader(text))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", entities.ErrMalformedBackup)
	}

	roleColumns, err := matchHeader(header, catalog)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", entities.ErrMalformedBackup, line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, header has %d",
				entities.ErrMalformedBackup, line, len(record), len(header))
		}

		row := Row{
			Username:    record[0],
			DisplayName: record[1],
			Flags:       make(map[string]bool, len(roleColumns)),
		}
		for col, roleID := range roleColumns {
			switch record[col] {
			case "0":
				row.Flags[roleID] = false
			case "1":
				row.Flags[roleID] = true
			default:
				return nil, fmt.Errorf("%w: row %d column %d: flag %q is not 0 or 1",
					entities.ErrMalformedBackup, line, col+1, record[col])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// matchHeader validates header shape and maps role columns to role ids. The
// role-name set must equal the catalog's managed roles exactly.
func matchHeader(header []string, catalog *entities.Catalog) (map[int]string, error) {
	managed := catalog.Managed()
	if len(header) != 2+len(managed) {
		return nil, fmt.Errorf("%w: header has %d columns, expected %d",
			entities.ErrMalformedBackup, len(header), 2+len(managed))
	}
	if header[0] != headerUsername || header[1] != headerDisplayName {
		return nil, fmt.Errorf("%w: header must start with %q,%q",
			entities.ErrMalformedBackup, headerUsername, headerDisplayName)
	}

	columns := make(map[int]string, len(managed))
	seen := make(map[string]bool, len(managed))
	for col := 2; col < len(header); col++ {
		role, ok := catalog.ByName(header[col])
		if !ok || role.Category.Kind == entities.KindOther {
			return nil, fmt.Errorf("%w: unknown role column %q", entities.ErrMalformedBackup, header[col])
		}
		if seen[role.ID] {
			return nil, fmt.Errorf("%w: duplicate role column %q", entities.ErrMalformedBackup, header[col])
		}
		seen[role.ID] = true
		columns[col] = role.ID
	}
	return columns, nil
}
