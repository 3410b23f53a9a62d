package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spacesedan/sentireport/internal/models"
)

const DEFAULT_TEXT_COLUMN = "tweet_text"

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrEmptyFile     = errors.New("no data")
	ErrParse         = errors.New("parse error")
	ErrMissingColumn = errors.New("text column not found")
	ErrNoRows        = errors.New("file has a header but no rows")

	ErrDuplicateColumn = errors.New("text column appears more than once")
)

type Options struct {
	TextColumn string
	Comma      rune
}

func (o Options) withDefaults() Options {
	if o.TextColumn == "" {
		o.TextColumn = DEFAULT_TEXT_COLUMN
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

func LoadCSV(path string, opts Options) (models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("[Loader] %w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("[Loader] failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(f, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("[Loader] File loaded successfully",
		slog.String("path", path),
		slog.Int("posts", len(ds)))

	return ds, nil
}

// ReadCSV reads a header row followed by data rows. A row too short to reach
// the text column yields a post with a nil Text; an empty cell yields "".
// Quotes inside unquoted cells are kept as text.
func ReadCSV(r io.Reader, opts Options) (models.Dataset, error) {
	opts = opts.withDefaults()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("[Loader] failed to read input: %w", err)
	}
	if err := validateEncoding(data); err != nil {
		return nil, err
	}
	if err := checkQuotes(data, opts.Comma); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("[Loader] %w", ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("[Loader] %w: %w", ErrParse, err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	textIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) != opts.TextColumn {
			continue
		}
		if textIdx >= 0 {
			return nil, fmt.Errorf("[Loader] %w: %q appears in columns %d and %d",
				ErrDuplicateColumn, opts.TextColumn, textIdx+1, i+1)
		}
		textIdx = i
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("[Loader] %w: %q (have %s)", ErrMissingColumn, opts.TextColumn, strings.Join(header, ", "))
	}
	names := dedupeNames(header)

	var ds models.Dataset
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("[Loader] %w: %w", ErrParse, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("[Loader] %w: line %d has %d fields, header has %d",
				ErrParse, line, len(record), len(header))
		}

		ds = append(ds, toPost(row, names, textIdx, record))
	}

	if len(ds) == 0 {
		return nil, fmt.Errorf("[Loader] %w", ErrNoRows)
	}

	return ds, nil
}

func validateEncoding(data []byte) error {
	if utf8.Valid(data) {
		return nil
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			line := bytes.Count(data[:i], []byte("\n")) + 1
			return fmt.Errorf("[Loader] %w: invalid UTF-8 on line %d", ErrParse, line)
		}
		i += size
	}
	return nil
}

// checkQuotes finds a quoted field that never closes. Quote handling follows
// csv.Reader with LazyQuotes: a quote opens a field only at its start, and
// inside a quoted field a quote closes it only before a delimiter, a line end,
// or the end of input.
func checkQuotes(data []byte, comma rune) error {
	runes := []rune(string(data))
	fieldStart := true
	inQuotes := false
	line, openedAt := 1, 0

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\n' {
			line++
		}

		if inQuotes {
			if c != '"' {
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '"' {
				i++
				continue
			}
			if i+1 == len(runes) || runes[i+1] == comma || runes[i+1] == '\n' || runes[i+1] == '\r' {
				inQuotes = false
			}
			continue
		}

		switch {
		case c == comma || c == '\n':
			fieldStart = true
		case c == '"' && fieldStart:
			inQuotes = true
			openedAt = line
			fieldStart = false
		default:
			fieldStart = false
		}
	}

	if inQuotes {
		return fmt.Errorf("[Loader] %w: quoted field opened on line %d is never closed", ErrParse, openedAt)
	}
	return nil
}

// dedupeNames suffixes repeated column names with .1, .2, ... so no cell is lost.
func dedupeNames(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			names[i] = name
			continue
		}
		names[i] = fmt.Sprintf("%s.%d", name, n)
	}
	return names
}

func toPost(row int, header []string, textIdx int, record []string) models.Post {
	post := models.Post{Row: row}

	if textIdx < len(record) {
		t := record[textIdx]
		post.Text = &t
	}

	for i, value := range record {
		if i == textIdx {
			continue
		}
		if post.Fields == nil {
			post.Fields = make(map[string]string, len(record)-1)
		}
		post.Fields[header[i]] = value
	}

	return post
}
