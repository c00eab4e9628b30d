package persist

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec is a type that knows how to encode and decode. Prepare() is called
// with the document that will be operated on, and then Decode(), Encode(), and
// Discard() can be used to read and write the data in it in the format
// supported by the Codec. Finalize() releases the association with the
// Document; it does not close the Document.
//
// The Zero-value of all Codecs are assumed to be usable.
type Codec interface {
	// Format returns the human-readable name of the format that the Codec works
	// with.
	Format() string

	// Prepare sets up the Codec for use on the given Document. Further calls to
	// Decode and Encode will operate on this Document.
	Prepare(doc Document) error

	// Decode reads the next value from the Document and stores it in the value
	// pointed to by v. If the Document is already at EOF, Decode returns
	// io.EOF and does not modify v.
	Decode(v interface{}) error

	// Encode encodes v to the Document.
	Encode(v interface{}) error

	// Discard reads the next data item in the stream and discards it. At EOF
	// it returns io.EOF.
	Discard() error

	// Finalize releases any resources that were set up in Prepare().
	Finalize() error
}

// CBORCodec is used to work with CBOR-formatted data in a Document. The zero
// value uses the library's default modes; set EncMode and DecMode before
// calling Prepare to change them.
type CBORCodec struct {
	EncMode cbor.EncMode
	DecMode cbor.DecMode

	enc *cbor.Encoder
	dec *cbor.Decoder
}

// Format returns "cbor", the name of the format that the CBORCodec works with.
func (c *CBORCodec) Format() string {
	return "cbor"
}

// Prepare readies the CBORCodec for use with the given Document. Only the
// directions the Document's mode allows are set up.
func (c *CBORCodec) Prepare(doc Document) error {
	if doc == nil {
		return fmt.Errorf("cannot prepare codec on nil document")
	}
	c.enc = nil
	c.dec = nil

	ops := doc.Mode().AllowedOperations
	if ops.canWrite() {
		if c.EncMode != nil {
			c.enc = c.EncMode.NewEncoder(doc)
		} else {
			c.enc = cbor.NewEncoder(doc)
		}
	}
	if ops.canRead() {
		if c.DecMode != nil {
			c.dec = c.DecMode.NewDecoder(doc)
		} else {
			c.dec = cbor.NewDecoder(doc)
		}
	}
	return nil
}

// Decode decodes the next CBOR data item from the Document.
func (c *CBORCodec) Decode(v interface{}) error {
	if c.dec == nil {
		return fmt.Errorf("no document to decode; call Prepare() on a readable document first")
	}
	if v == nil {
		return fmt.Errorf("cannot decode to nil; use Discard() if trying to skip")
	}
	return c.dec.Decode(v)
}

// Encode encodes v to the Document as one CBOR data item.
func (c *CBORCodec) Encode(v interface{}) error {
	if c.enc == nil {
		return fmt.Errorf("no document to encode to; call Prepare() on a writable document first")
	}
	return c.enc.Encode(v)
}

// Discard skips the next CBOR data item in the Document.
func (c *CBORCodec) Discard() error {
	if c.dec == nil {
		return fmt.Errorf("no document to decode; call Prepare() on a readable document first")
	}
	return c.dec.Skip()
}

// Finalize disassociates from the Document passed in Prepare().
func (c *CBORCodec) Finalize() error {
	c.enc = nil
	c.dec = nil
	return nil
}
