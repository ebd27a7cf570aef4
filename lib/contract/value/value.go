package value

import (
	"encoding/binary"
	"encoding/json"
	"errors"
)

type Type byte

const (
	Nil     Type = 0x00
	UInt    Type = 0x02
	String  Type = 0x03
	Boolean Type = 0x04
	Object  Type = 0x05
)

const (
	True  = 0x01
	False = 0x00
)

func (t Type) String() string {
	switch t {
	case UInt:
		return "uint"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Object:
		return "object"
	default:
		return "nil"
	}
}

// Value is the result of a contract method.
type Value struct {
	Type  Type
	value interface{}
}

func ToValue(iv interface{}) (v *Value, err error) {
	v = &Value{}

	switch t := iv.(type) {
	case nil:
		v.Type = Nil
	case string:
		v.Type = String
		v.value = t
	case bool:
		v.Type = Boolean
		v.value = t
	case uint:
		v.Type = UInt
		v.value = uint64(t)
	case uint32:
		v.Type = UInt
		v.value = uint64(t)
	case uint64:
		v.Type = UInt
		v.value = t
	case json.RawMessage:
		v.Type = Object
		v.value = t
	default:
		var b []byte
		if b, err = json.Marshal(iv); err != nil {
			v.Type = Nil
			err = errors.New("not yet supported type")
			return
		}
		v.Type = Object
		v.value = json.RawMessage(b)
	}

	return
}

// MustToValue is for the values which are always supported.
func MustToValue(iv interface{}) *Value {
	v, err := ToValue(iv)
	if err != nil {
		panic(err)
	}

	return v
}

func (v *Value) Interface() interface{} {
	return v.value
}

func (v *Value) Serialize() (encoded []byte, err error) {
	switch v.Type {
	case Nil:
		encoded = []byte{}
	case UInt:
		encoded = make([]byte, 8)
		binary.LittleEndian.PutUint64(encoded, v.value.(uint64))
	case String:
		encoded = []byte(v.value.(string))
	case Boolean:
		if v.value.(bool) {
			encoded = []byte{True}
		} else {
			encoded = []byte{False}
		}
	case Object:
		encoded = []byte(v.value.(json.RawMessage))
	}

	encoded = append([]byte{byte(v.Type)}, encoded...)

	return
}

func (v *Value) Deserialize(b []byte) error {
	if len(b) < 1 {
		return errors.New("empty value")
	}

	encoded := b[1:]
	switch Type(b[0]) {
	case Nil:
		v.Type, v.value = Nil, nil
	case UInt:
		if len(encoded) != 8 {
			return errors.New("invalid uint value")
		}
		v.Type, v.value = UInt, binary.LittleEndian.Uint64(encoded)
	case String:
		v.Type, v.value = String, string(encoded)
	case Boolean:
		if len(encoded) != 1 {
			return errors.New("invalid boolean value")
		}
		v.Type, v.value = Boolean, encoded[0] == True
	case Object:
		v.Type, v.value = Object, json.RawMessage(encoded)
	default:
		return errors.New("unknown value type")
	}

	return nil
}

// MarshalJSON writes the plain value; objects are written as they are.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil || v.Type == Nil {
		return []byte("null"), nil
	}

	return json.Marshal(v.value)
}

func (v *Value) String() string {
	if v.Type == String {
		return v.value.(string)
	}

	b, _ := v.MarshalJSON()
	return string(b)
}
