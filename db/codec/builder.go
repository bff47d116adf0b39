package codec

import (
	"bytes"

	"github.com/pingcap/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Builder is a reusable scratch object for serializing documents. Builders
// are leased from a transaction context, used for one serialization step, and
// returned; Reset makes a returned builder indistinguishable from a new one.
type Builder struct {
	buf bytes.Buffer
	enc *msgpack.Encoder
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.enc = msgpack.NewEncoder(&b.buf)
	return b
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buf.Reset()
	b.enc.Reset(&b.buf)
}

// Bytes returns the serialized data accumulated so far. The slice aliases the
// builder's internal buffer and is invalidated by Reset.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *Builder) Len() int {
	return b.buf.Len()
}

// AddDocument appends the msgpack encoding of v.
func (b *Builder) AddDocument(v interface{}) error {
	return errors.Trace(b.enc.Encode(v))
}

// AddRef appends a cross-document reference, encoded per opts: expanded to a
// "collection/key" string through the handler, or in compact id form.
func (b *Builder) AddRef(opts *Options, ref DocumentRef) error {
	if opts.ExpandReferences {
		s, err := opts.Handler.RefToString(ref)
		if err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(b.enc.EncodeString(s))
	}
	return errors.Trace(b.enc.Encode(ref))
}

// DecodeDocument decodes one msgpack document into v.
func DecodeDocument(data []byte, v interface{}) error {
	return errors.Trace(msgpack.Unmarshal(data, v))
}

// DecodeRef decodes a reference written by Builder.AddRef with the same
// options.
func DecodeRef(opts *Options, data []byte) (DocumentRef, error) {
	if opts.ExpandReferences {
		var s string
		if err := msgpack.Unmarshal(data, &s); err != nil {
			return DocumentRef{}, errors.Trace(err)
		}
		return opts.Handler.RefFromString(s)
	}
	var ref DocumentRef
	if err := msgpack.Unmarshal(data, &ref); err != nil {
		return DocumentRef{}, errors.Trace(err)
	}
	return ref, nil
}
