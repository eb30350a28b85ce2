// Package comms is the little wire format shared by the server's push
// channel and its clients: a head naming the message kind, a JSON body.
package comms

import "encoding/json"

// Head names a message kind, with optional colon-separated fields,
// e.g. "result" or "game:millers1".
type Head string

func (h Head) Fields() []string {
	var out []string
	start := 0
	s := string(h)
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func (h Head) Type() string {
	return h.Fields()[0]
}

type Message struct {
	Head Head            `json:"head"`
	Data json.RawMessage `json:"data"`
}

func Encode(head string, v interface{}) (Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Head: Head(head), Data: data}, nil
}

func Decode(m Message, v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// CommsError carries an error across the wire with its code intact.
type CommsError struct {
	Code string `json:"code"`
	Msg  string `json:"message"`
}

func (e *CommsError) Error() string { return e.Msg }

type coded interface {
	ErrorCode() string
}

func WrapError(err error) *CommsError {
	if err == nil {
		return nil
	}
	if c, ok := err.(coded); ok {
		return &CommsError{Code: c.ErrorCode(), Msg: err.Error()}
	}
	return &CommsError{Code: "ERROR", Msg: err.Error()}
}
