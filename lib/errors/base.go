package errors

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
)

type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty" rlp:"-"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	var new Error
	new = *o

	new.Data = map[string]interface{}{}
	if o.Data != nil && len(o.Data) > 0 {
		for k, v := range o.Data {
			new.Data[k] = v
		}
	}

	return &new
}

// Equal reports whether err is an `*Error` of the same kind; cloned errors
// keep the code of their origin, so the code decides.
func (o *Error) Equal(err error) bool {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return false
	}

	return e.Code == o.Code
}

// Slug is the message in lower-case words joined by "-", like
// "proposal-is-closed".
func (o *Error) Slug() string {
	return strings.Join(strings.Fields(strings.ToLower(o.Message)), "-")
}

func (o *Error) EncodeRLP(w io.Writer) (err error) {
	if o == nil {
		return rlp.Encode(w, []uint{})
	}

	var d [][2]string
	if o.Data != nil && len(o.Data) > 0 {
		var keys []string
		for k := range o.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b, _ := json.Marshal(o.Data[k])
			d = append(d, [2]string{k, string(b)})
		}
	}

	return rlp.Encode(w, struct {
		Code    uint
		Message string
		Data    [][2]string
	}{
		Code:    o.Code,
		Message: o.Message,
		Data:    d,
	})
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	return target.Equal(err)
}
