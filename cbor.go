package hightime

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// MarshalCBOR encodes d as its thirteen-slot state array.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(d.State())
}

// UnmarshalCBOR decodes a state array. Slots other than the five tiers
// are honoured, so the array need not be normalized.
func (d *Duration) UnmarshalCBOR(data []byte) error {
	var s DurationState
	if err := decMode.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: Duration.UnmarshalCBOR: %v", ErrType, err)
	}
	out, err := FromState(s)
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// instantCBOR is the CBOR form of an Instant. Base is the host binary
// form of the fields down to the microsecond. Zone names the location
// when it can be loaded again.
type instantCBOR struct {
	Base  []byte `cbor:"1,keyasint"`
	Femto uint32 `cbor:"2,keyasint"`
	Yocto uint32 `cbor:"3,keyasint"`
	Zone  string `cbor:"4,keyasint,omitempty"`
	Fold  Fold   `cbor:"5,keyasint,omitempty"`
}

// MarshalCBOR encodes t as a map keyed by small integers.
func (t Instant) MarshalCBOR() ([]byte, error) {
	base, err := t.baseTime().MarshalBinary()
	if err != nil {
		return nil, err
	}
	v := instantCBOR{Base: base, Femto: t.fsec, Yocto: t.ysec, Fold: t.fold}
	if t.loc != nil {
		v.Zone = t.loc.String()
	}
	return encMode.Marshal(v)
}

// UnmarshalCBOR implements cbor.Unmarshaler. A zone name that does not
// load falls back to the fixed offset in the base.
func (t *Instant) UnmarshalCBOR(data []byte) error {
	var v instantCBOR
	if err := decMode.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: Instant.UnmarshalCBOR: %v", ErrType, err)
	}
	if err := checkSubMicro(v.Femto, v.Yocto); err != nil {
		return err
	}
	var base time.Time
	if err := base.UnmarshalBinary(v.Base); err != nil {
		return fmt.Errorf("%w: Instant.UnmarshalCBOR: %v", ErrRange, err)
	}
	var (
		out Instant
		err error
	)
	if base.Location() == time.UTC {
		out, err = instantFromBase(base)
		out.fold = v.Fold
	} else {
		if loc, lerr := time.LoadLocation(v.Zone); v.Zone != "" && lerr == nil {
			base = base.In(loc)
		}
		out, err = FromTime(base)
	}
	if err != nil {
		return err
	}
	out.fsec, out.ysec = v.Femto, v.Yocto
	*t = out
	return nil
}
