package dto

import (
	"bytes"
	"strconv"
	"strings"
)

// ID is a surrogate key read from a JSON body. The catalog page sends ids it
// scraped from table cells, so both 12 and "12" are accepted. Null, blank or
// unparsable input decodes to zero, which callers treat as missing.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.TrimSpace(string(bytes.Trim(b, `"`)))
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		*id = 0
		return nil
	}
	*id = ID(n)
	return nil
}

// Presente reports whether the id was supplied.
func (id ID) Presente() bool { return id != 0 }
