// Package value contains Value, the self-describing document that every replay
// record is stored as. A Value is one of null, bool, integer, float, text, byte
// string, an ordered array of Values, or a map of scalar Values to Values.
//
// Values are immutable once built; constructors copy the slices they are given.
// The zero Value is Null.
package value

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the type of data held in a Value.
type Kind int

const (
	// Null is the kind of the zero Value.
	Null Kind = iota
	Bool
	// Int holds any integer that fits in an int64.
	Int
	// Uint holds only integers greater than math.MaxInt64; smaller unsigned
	// integers are normalized to Int.
	Uint
	Float
	Text
	Bytes
	Array
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	case Array:
		return "array"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsScalar returns whether values of the kind can be used as map keys.
func (k Kind) IsScalar() bool {
	return k != Array && k != Map
}

// Value is a dynamic document.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	bs    []byte
	elems []Value
	pairs []Pair
}

// Pair is a single entry of a Map Value.
type Pair struct {
	Key   Value
	Value Value
}

// NewNull returns a Null Value. It is equivalent to the zero Value.
func NewNull() Value {
	return Value{}
}

// NewBool returns a Bool Value.
func NewBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

// NewInt returns an Int Value.
func NewInt(i int64) Value {
	return Value{kind: Int, i: i}
}

// NewUint returns an integer Value. If u fits in an int64 the result is of
// kind Int, otherwise it is of kind Uint.
func NewUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return NewInt(int64(u))
	}
	return Value{kind: Uint, u: u}
}

// NewFloat returns a Float Value.
func NewFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// NewText returns a Text Value.
func NewText(s string) Value {
	return Value{kind: Text, s: s}
}

// NewBytes returns a Bytes Value holding a copy of b.
func NewBytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: Bytes, bs: cp}
}

// NewArray returns an Array Value of the given elements.
func NewArray(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: Array, elems: cp}
}

// NewMap returns a Map Value of the given pairs. Entry order is kept as given
// but carries no meaning; two maps with the same entries are Equal regardless
// of order. Keys are not checked here; see Validate.
func NewMap(pairs ...Pair) Value {
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return Value{kind: Map, pairs: cp}
}

// Object builds a Map keyed by text, with entries sorted by key. It is a
// shorthand for the common record shape.
func Object(fields map[string]Value) Value {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	pairs := make([]Pair, len(names))
	for idx, k := range names {
		pairs[idx] = Pair{Key: NewText(k), Value: fields[k]}
	}
	return Value{kind: Map, pairs: pairs}
}

// Kind returns the kind of data in the Value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// AsBool returns the boolean held by v. ok is false if v is not a Bool.
func (v Value) AsBool() (b bool, ok bool) {
	return v.b, v.kind == Bool
}

// AsInt returns the integer held by v. ok is false if v is not an Int.
func (v Value) AsInt() (i int64, ok bool) {
	return v.i, v.kind == Int
}

// AsUint returns the integer held by v as a uint64. ok is false if v is not
// an integer or is a negative Int.
func (v Value) AsUint() (u uint64, ok bool) {
	switch v.kind {
	case Uint:
		return v.u, true
	case Int:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	}
	return 0, false
}

// AsFloat returns the float held by v. ok is false if v is not a Float.
func (v Value) AsFloat() (f float64, ok bool) {
	return v.f, v.kind == Float
}

// AsText returns the string held by v. ok is false if v is not Text.
func (v Value) AsText() (s string, ok bool) {
	return v.s, v.kind == Text
}

// AsBytes returns a copy of the byte string held by v. ok is false if v is
// not Bytes.
func (v Value) AsBytes() (b []byte, ok bool) {
	if v.kind != Bytes {
		return nil, false
	}
	cp := make([]byte, len(v.bs))
	copy(cp, v.bs)
	return cp, true
}

// Len returns the number of elements of an Array or entries of a Map. It is 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.elems)
	case Map:
		return len(v.pairs)
	default:
		return 0
	}
}

// Elements returns a copy of the elements of an Array. It returns nil for
// every other kind.
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}
	cp := make([]Value, len(v.elems))
	copy(cp, v.elems)
	return cp
}

// Pairs returns a copy of the entries of a Map. It returns nil for every
// other kind.
func (v Value) Pairs() []Pair {
	if v.kind != Map {
		return nil
	}
	cp := make([]Pair, len(v.pairs))
	copy(cp, v.pairs)
	return cp
}

// Lookup returns the value stored under key in a Map.
func (v Value) Lookup(key Value) (Value, bool) {
	for _, p := range v.pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Field returns the value stored under the text key name in a Map.
func (v Value) Field(name string) (Value, bool) {
	return v.Lookup(NewText(name))
}

// Equal returns whether a and b hold the same data. Map entries are compared
// without regard to order, and NaN floats are equal to each other.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Int:
		return a.i == b.i
	case Uint:
		return a.u == b.u
	case Float:
		if math.IsNaN(a.f) && math.IsNaN(b.f) {
			return true
		}
		return a.f == b.f && math.Signbit(a.f) == math.Signbit(b.f)
	case Text:
		return a.s == b.s
	case Bytes:
		return bytes.Equal(a.bs, b.bs)
	case Array:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for idx := range a.elems {
			if !Equal(a.elems[idx], b.elems[idx]) {
				return false
			}
		}
		return true
	case Map:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for _, p := range a.pairs {
			other, ok := b.Lookup(p.Key)
			if !ok || !Equal(p.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Validate checks that v can be serialized: text must be valid UTF-8, every
// map key must be a scalar and no map may hold the same key twice. Float keys
// 0 and -0 count as the same key.
func Validate(v Value) error {
	switch v.kind {
	case Text:
		if !utf8.ValidString(v.s) {
			return fmt.Errorf("%w: %q", ErrInvalidText, v.s)
		}
	case Array:
		for idx, e := range v.elems {
			if err := Validate(e); err != nil {
				return fmt.Errorf("[%d]: %w", idx, err)
			}
		}
	case Map:
		for idx, p := range v.pairs {
			if !p.Key.kind.IsScalar() {
				return fmt.Errorf("%w: key of entry %d is %s", ErrUnsupportedKey, idx, p.Key.kind)
			}
			if err := Validate(p.Key); err != nil {
				return fmt.Errorf("key of entry %d: %w", idx, err)
			}
			for _, earlier := range v.pairs[:idx] {
				if sameKey(earlier.Key, p.Key) {
					return fmt.Errorf("%w: %s", ErrDuplicateKey, p.Key)
				}
			}
			if err := Validate(p.Value); err != nil {
				return fmt.Errorf("%s: %w", p.Key, err)
			}
		}
	}
	return nil
}

// sameKey reports whether a and b collide as map keys once encoded. It is
// Equal except that float zeros of either sign are one key.
func sameKey(a, b Value) bool {
	if a.kind == Float && b.kind == Float && a.f == 0 && b.f == 0 {
		return true
	}
	return Equal(a, b)
}

// String gives a compact single-line rendering of v, meant for display and
// debugging. It is not a serialization format.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Int:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case Uint:
		sb.WriteString(strconv.FormatUint(v.u, 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case Text:
		sb.WriteString(strconv.Quote(v.s))
	case Bytes:
		fmt.Fprintf(sb, "h'%x'", v.bs)
	case Array:
		sb.WriteRune('[')
		for idx, e := range v.elems {
			if idx > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteRune(']')
	case Map:
		sb.WriteRune('{')
		for idx, p := range v.pairs {
			if idx > 0 {
				sb.WriteString(", ")
			}
			p.Key.writeTo(sb)
			sb.WriteString(": ")
			p.Value.writeTo(sb)
		}
		sb.WriteRune('}')
	}
}
