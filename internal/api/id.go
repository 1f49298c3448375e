package api

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID is an entity identifier on the wire. The web client serializes ids
// as JSON strings ("7") while API callers send numbers (7); both decode.
type ID int

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid id %q", data)
	}

	*id = ID(n)
	return nil
}

func (id ID) Int() int { return int(id) }
