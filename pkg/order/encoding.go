package order

import (
	"flag"
	"fmt"
)

var (
	_ flag.Value = (*Order)(nil)
)

// Set implements [flag.Value].
func (o *Order) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (o Order) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Order) UnmarshalText(text []byte) error {
	return o.Set(string(text))
}

// MarshalYAML implements yaml.Marshaler.
func (o Order) MarshalYAML() (interface{}, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", o)
	}
	return o.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Order) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return o.Set(s)
}
