package services

import (
	"bytes"
	"encoding/json"
)

// OptionalID tells an omitted id apart from an explicit null in a PATCH body.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func notFoundOr(err error, isNotFound bool) error {
	if isNotFound {
		return ErrNotFound
	}
	return err
}
