package commands

import (
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/noodlebox/hightime"
)

// Formats lists the encodings RunEncode supports.
var Formats = []string{"binary", "cbor", "json", "yaml", "text"}

// RunEncode writes value in the given encoding. Binary encodings are
// printed as hex.
func RunEncode(value, format string, opts Options, w io.Writer) error {
	v, err := ParseValue(value, opts.Loc)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "binary":
		m, ok := v.(encoding.BinaryMarshaler)
		if !ok {
			return fmt.Errorf("%T has no binary form", v)
		}
		b, err := m.MarshalBinary()
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		out = []byte(hex.EncodeToString(b) + "\n")
	case "cbor":
		b, err := cbor.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		out = []byte(hex.EncodeToString(b) + "\n")
	case "json":
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		out = append(b, '\n')
	case "yaml":
		if out, err = yaml.Marshal(v); err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
	case "text":
		m, ok := v.(encoding.TextMarshaler)
		if !ok {
			return fmt.Errorf("%T has no text form", v)
		}
		b, err := m.MarshalText()
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		out = append(b, '\n')
	default:
		return fmt.Errorf("unknown format: %s (supported: binary, cbor, json, yaml, text)", format)
	}
	_, err = w.Write(out)
	return err
}

// RunDecode reads hex-encoded CBOR produced by RunEncode and prints the
// value it holds.
func RunDecode(data, kind string, opts Options, w io.Writer) error {
	b, err := hex.DecodeString(data)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	switch kind {
	case "instant":
		var v hightime.Instant
		if err := cbor.Unmarshal(b, &v); err != nil {
			return err
		}
		return printValue(w, v, opts)
	case "duration":
		var v hightime.Duration
		if err := cbor.Unmarshal(b, &v); err != nil {
			return err
		}
		return printValue(w, v, opts)
	}
	return fmt.Errorf("unknown kind: %s (supported: instant, duration)", kind)
}
