package hightime

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler using the Compact form.
func (d Duration) MarshalYAML() (any, error) {
	return d.Compact(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: duration must be a scalar", ErrType, value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML implements yaml.Marshaler using the ISO 8601 form.
func (t Instant) MarshalYAML() (any, error) {
	return t.ISOFormat('T', TimespecAuto), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Instant) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: instant must be a scalar", ErrType, value.Line)
	}
	return t.UnmarshalText([]byte(value.Value))
}
