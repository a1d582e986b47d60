package database

import (
	"bytes"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	ugorji "github.com/ugorji/go/codec"
)

// DefaultCodec is the format used to store data in the database when none is configured.
const DefaultCodec = "msgpack"

var codecs = map[string]codec.MarshalUnmarshaler{
	"msgpack": msgpack.Codec,
	"json":    json.Codec,
	"cbor":    &ugorjiCodec{name: "cbor", handle: &ugorji.CborHandle{}},
	"binc":    &ugorjiCodec{name: "binc", handle: &ugorji.BincHandle{}},
}

// Codec returns the storage codec for the given name.
// A database must always be opened with the codec it has been initialized with.
func Codec(name string) (codec.MarshalUnmarshaler, error) {
	if name == "" {
		name = DefaultCodec
	}

	c, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("unsupported database codec: %s", name)
	}
	return c, nil
}

// ugorjiCodec encodes to and decodes from CBOR (http://cbor.io/) or Binc (https://github.com/ugorji/binc).
type ugorjiCodec struct {
	name   string
	handle ugorji.Handle
}

func (c *ugorjiCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := ugorji.NewEncoder(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *ugorjiCodec) Unmarshal(b []byte, v any) error {
	return ugorji.NewDecoder(bytes.NewReader(b), c.handle).Decode(v)
}

func (c *ugorjiCodec) Name() string {
	return c.name
}
