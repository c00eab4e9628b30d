package value

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrUnsupportedKey is returned when a map key is an array or a map.
	ErrUnsupportedKey = errors.New("map key must be a scalar value")

	// ErrDuplicateKey is returned when a map holds the same key twice.
	ErrDuplicateKey = errors.New("duplicate map key")

	// ErrInvalidText is returned when a text value is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")

	// ErrUnsupportedItem is returned when decoding CBOR that holds a data item
	// with no Value equivalent, such as a tag or an out-of-range integer.
	ErrUnsupportedItem = errors.New("unsupported CBOR data item")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// core deterministic encoding: sorted map keys, shortest floats and
	// definite lengths, so identical Values always give identical bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("building CBOR encode mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		DefaultMapType: reflect.TypeOf(map[interface{}]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("building CBOR decode mode: %v", err))
	}
}

// EncMode returns the CBOR encoding mode used for Values, for callers that
// need to stream them.
func EncMode() cbor.EncMode {
	return encMode
}

// DecMode returns the CBOR decoding mode used for Values.
func DecMode() cbor.DecMode {
	return decMode
}

// Encode serializes v as a single CBOR data item.
func Encode(v Value) ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	native, err := toCBORNative(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(native)
}

// Decode parses data, which must hold exactly one CBOR data item, into a
// Value.
func Decode(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalCBOR(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	return Encode(v)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(data []byte) error {
	var raw interface{}
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := fromCBORNative(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// DecodeInto fills dst, which must be a pointer, from v using the CBOR struct
// mapping of the fields of dst (the `cbor` struct tag). This is how a typed
// view is placed over a dynamic record.
func (v Value) DecodeInto(dst interface{}) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	return decMode.Unmarshal(data, dst)
}

// FromStruct converts any CBOR-encodable Go value into a Value.
func FromStruct(src interface{}) (Value, error) {
	data, err := encMode.Marshal(src)
	if err != nil {
		return Value{}, err
	}
	return Decode(data)
}

func toCBORNative(v Value) (interface{}, error) {
	switch v.kind {
	case Null:
		return nil, nil
	case Bool:
		return v.b, nil
	case Int:
		return v.i, nil
	case Uint:
		return v.u, nil
	case Float:
		return v.f, nil
	case Text:
		return v.s, nil
	case Bytes:
		return v.bs, nil
	case Array:
		elems := make([]interface{}, len(v.elems))
		for idx, e := range v.elems {
			native, err := toCBORNative(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", idx, err)
			}
			elems[idx] = native
		}
		return elems, nil
	case Map:
		m := make(map[interface{}]interface{}, len(v.pairs))
		for idx, p := range v.pairs {
			key, err := keyToCBORNative(p.Key)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", idx, err)
			}
			native, err := toCBORNative(p.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Key, err)
			}
			m[key] = native
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown value kind %v", v.kind)
	}
}

// keyToCBORNative is like toCBORNative but gives a comparable Go value, so
// byte strings become cbor.ByteString.
func keyToCBORNative(k Value) (interface{}, error) {
	switch k.kind {
	case Array, Map:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedKey, k.kind)
	case Bytes:
		return cbor.ByteString(k.bs), nil
	default:
		return toCBORNative(k)
	}
}

func fromCBORNative(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return NewBool(t), nil
	case int64:
		return NewInt(t), nil
	case uint64:
		return NewUint(t), nil
	case float64:
		return NewFloat(t), nil
	case float32:
		return NewFloat(float64(t)), nil
	case string:
		return NewText(t), nil
	case []byte:
		return NewBytes(t), nil
	case cbor.ByteString:
		return NewBytes([]byte(t)), nil
	case []interface{}:
		elems := make([]Value, len(t))
		for idx, e := range t {
			ev, err := fromCBORNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", idx, err)
			}
			elems[idx] = ev
		}
		return Value{kind: Array, elems: elems}, nil
	case map[interface{}]interface{}:
		pairs := make([]Pair, 0, len(t))
		for k, e := range t {
			kv, err := fromCBORNative(k)
			if err != nil {
				return Value{}, fmt.Errorf("map key: %w", err)
			}
			ev, err := fromCBORNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", kv, err)
			}
			pairs = append(pairs, Pair{Key: kv, Value: ev})
		}
		// Go maps have no order; sort so decoding the same bytes always
		// gives the same entry order.
		sort.Slice(pairs, func(i, j int) bool {
			return lessKey(pairs[i].Key, pairs[j].Key)
		})
		return Value{kind: Map, pairs: pairs}, nil
	case big.Int:
		return Value{}, fmt.Errorf("%w: integer %s out of range", ErrUnsupportedItem, t.String())
	case *big.Int:
		return Value{}, fmt.Errorf("%w: integer %s out of range", ErrUnsupportedItem, t.String())
	case cbor.Tag:
		return Value{}, fmt.Errorf("%w: tag %d", ErrUnsupportedItem, t.Number)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedItem, raw)
	}
}

// lessKey orders scalar keys first by kind and then by their content.
func lessKey(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case Bool:
		return !a.b && b.b
	case Int:
		return a.i < b.i
	case Uint:
		return a.u < b.u
	case Float:
		return a.f < b.f
	case Text:
		return a.s < b.s
	case Bytes:
		return bytes.Compare(a.bs, b.bs) < 0
	default:
		return false
	}
}
