package cadence

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v4"
)

// MsgPackDataConverter encodes workflow and activity payloads with msgpack.
// Struct fields are keyed by their json tags so schema types travel as is.
type MsgPackDataConverter struct{}

func NewMsgPackDataConverter() *MsgPackDataConverter {
	return &MsgPackDataConverter{}
}

// ToData encodes the values one after another into a single payload
func (c *MsgPackDataConverter) ToData(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseJSONTag(true)
	for i, v := range values {
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode argument %d (%v): %s", i, reflect.TypeOf(v), err)
		}
	}
	return buf.Bytes(), nil
}

// FromData decodes a payload produced by ToData into the given pointers
func (c *MsgPackDataConverter) FromData(input []byte, valuePtrs ...interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(input))
	dec.UseJSONTag(true)
	for i, ptr := range valuePtrs {
		if err := dec.Decode(ptr); err != nil {
			return fmt.Errorf("decode argument %d (%v): %s", i, reflect.TypeOf(ptr), err)
		}
	}
	return nil
}
