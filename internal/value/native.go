package value

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v2"
)

// FromNative converts a tree of plain Go values into a Value. It accepts the
// shapes produced by yaml.v2 and encoding/json decoding into an empty
// interface: nil, bools, all int, uint and float types, strings, []byte,
// slices of interface{}, yaml.MapSlice, and maps keyed by string or
// interface{}. Maps with string keys are sorted by key.
func FromNative(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return NewBool(t), nil
	case int:
		return NewInt(int64(t)), nil
	case int8:
		return NewInt(int64(t)), nil
	case int16:
		return NewInt(int64(t)), nil
	case int32:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case uint:
		return NewUint(uint64(t)), nil
	case uint8:
		return NewUint(uint64(t)), nil
	case uint16:
		return NewUint(uint64(t)), nil
	case uint32:
		return NewUint(uint64(t)), nil
	case uint64:
		return NewUint(t), nil
	case float32:
		return NewFloat(float64(t)), nil
	case float64:
		return NewFloat(t), nil
	case string:
		return NewText(t), nil
	case []byte:
		return NewBytes(t), nil
	case []interface{}:
		elems := make([]Value, len(t))
		for idx, e := range t {
			ev, err := FromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", idx, err)
			}
			elems[idx] = ev
		}
		return Value{kind: Array, elems: elems}, nil
	case yaml.MapSlice:
		pairs := make([]Pair, len(t))
		for idx, item := range t {
			p, err := nativePair(item.Key, item.Value)
			if err != nil {
				return Value{}, err
			}
			pairs[idx] = p
		}
		return Value{kind: Map, pairs: pairs}, nil
	case map[string]interface{}:
		names := make([]string, 0, len(t))
		for k := range t {
			names = append(names, k)
		}
		sort.Strings(names)
		pairs := make([]Pair, len(names))
		for idx, k := range names {
			p, err := nativePair(k, t[k])
			if err != nil {
				return Value{}, err
			}
			pairs[idx] = p
		}
		return Value{kind: Map, pairs: pairs}, nil
	case map[interface{}]interface{}:
		pairs := make([]Pair, 0, len(t))
		for k, e := range t {
			p, err := nativePair(k, e)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, p)
		}
		sort.Slice(pairs, func(i, j int) bool {
			return lessKey(pairs[i].Key, pairs[j].Key)
		})
		return Value{kind: Map, pairs: pairs}, nil
	default:
		return Value{}, fmt.Errorf("cannot convert %s to a value", reflect.TypeOf(x))
	}
}

func nativePair(k, e interface{}) (Pair, error) {
	kv, err := FromNative(k)
	if err != nil {
		return Pair{}, fmt.Errorf("map key: %w", err)
	}
	if !kv.kind.IsScalar() {
		return Pair{}, fmt.Errorf("%w: got %s", ErrUnsupportedKey, kv.kind)
	}
	ev, err := FromNative(e)
	if err != nil {
		return Pair{}, fmt.Errorf("%s: %w", kv, err)
	}
	return Pair{Key: kv, Value: ev}, nil
}

// Native converts v into plain Go values: nil, bool, int64, uint64, float64,
// string, []byte, []interface{}, and yaml.MapSlice for maps so that entry
// order is kept when the result is marshaled.
func (v Value) Native() interface{} {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i
	case Uint:
		return v.u
	case Float:
		return v.f
	case Text:
		return v.s
	case Bytes:
		b, _ := v.AsBytes()
		return b
	case Array:
		elems := make([]interface{}, len(v.elems))
		for idx, e := range v.elems {
			elems[idx] = e.Native()
		}
		return elems
	case Map:
		items := make(yaml.MapSlice, len(v.pairs))
		for idx, p := range v.pairs {
			items[idx] = yaml.MapItem{Key: p.Key.Native(), Value: p.Value.Native()}
		}
		return items
	default:
		return nil
	}
}

// FromYAML parses a YAML document into a Value. Top-level map entry order is
// kept; nested maps are sorted by key.
//
// YAML has no byte-string type distinct from text, so Bytes never come out of
// this function; use Decode for exact round trips.
func FromYAML(data []byte) (Value, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	if _, isMap := raw.(map[interface{}]interface{}); isMap {
		var top yaml.MapSlice
		if err := yaml.Unmarshal(data, &top); err != nil {
			return Value{}, err
		}
		return FromNative(top)
	}
	return FromNative(raw)
}

// ToYAML renders v as a YAML document.
func ToYAML(v Value) ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v.Native())
}
