// Package export renders console records as quoted CSV.
package export

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultFilename is used when no filename is supplied
const DefaultFilename = "export.csv"

// ContentType is the media type of rendered output
const ContentType = "text/csv; charset=utf-8"

// Column maps a row key to its header label
type Column struct {
	Key   string
	Label string
}

// Header returns the label, falling back to the key
func (c Column) Header() string {
	if c.Label == "" {
		return c.Key
	}
	return c.Label
}

// Row is one mapped record
type Row map[string]any

// Build renders rows under columns. Every field is quoted and embedded
// quotes are doubled. Rows are separated by "\n" with no trailing
// newline. Zero rows render as the empty string. When columns is empty
// the keys of the first row are used in sorted order.
func Build(columns []Column, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	if len(columns) == 0 {
		columns = columnsOf(rows[0])
	}

	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(c.Header()))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, c := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(Format(row[c.Key])))
		}
	}
	return b.String()
}

// BuildFrom maps items with mapRow and renders them with Build
func BuildFrom[T any](items []T, columns []Column, mapRow func(T) Row) string {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, mapRow(item))
	}
	return Build(columns, rows)
}

func columnsOf(row Row) []Column {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	columns := make([]Column, len(keys))
	for i, k := range keys {
		columns[i] = Column{Key: k}
	}
	return columns
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Format converts a cell value to text; nil becomes empty
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// SafeFilename replaces characters outside [A-Za-z0-9_.-] with "_"
func SafeFilename(name string) string {
	if name == "" {
		name = DefaultFilename
	}
	return unsafeChars.ReplaceAllString(name, "_")
}

// TimestampedFilename returns prefix_YYYY-MM-DD_HH-mm.csv with now in loc
func TimestampedFilename(prefix string, now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return SafeFilename(prefix + "_" + now.Format("2006-01-02_15-04") + ".csv")
}
