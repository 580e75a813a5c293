package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexString is a text leaf the intake form may have stored as either a
// string or a number (birth year, phone parts, raw salary). It decodes
// all of those into their string form and always encodes as a string.
type FlexString string

func (f FlexString) String() string { return string(f) }

// MarshalBSONValue implements bson.ValueMarshaler.
func (f FlexString) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(f))
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (f *FlexString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*f = FlexString(rv.StringValue())
	case bsontype.Int32:
		*f = FlexString(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*f = FlexString(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Double:
		*f = FlexString(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.Null, bsontype.Undefined:
		*f = ""
	default:
		return fmt.Errorf("models: cannot decode BSON %s into FlexString", t)
	}
	return nil
}

// UnmarshalJSON accepts a JSON string, number or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("models: cannot decode JSON %s into FlexString", data)
		}
		*f = FlexString(n.String())
		return nil
	}
}
