package asn1x

/*
config.go implements the optional external configuration surface for
decode limits, loaded from a YAML document using the same decoder
conventions as sibling protocol-decoder packages in this ecosystem.
*/

import (
	"io"

	"gopkg.in/yaml.v3"
)

/*
DecodeLimits holds the tunable bounds enforced during decoding. Zero
values are treated as "use the package default" by [ApplyDecodeLimits].
*/
type DecodeLimits struct {
	// MaxRecursionDepth bounds the nesting depth of SEQUENCE/SET/CHOICE
	// decoding. See maxRecursionDepth for the package default.
	MaxRecursionDepth int `yaml:"maxRecursionDepth"`

	// MaxInputBytes bounds the size, in bytes, of a single Packet a
	// caller may feed to Unmarshal. Zero means unbounded.
	MaxInputBytes int `yaml:"maxInputBytes"`
}

var activeLimits = DecodeLimits{MaxRecursionDepth: maxRecursionDepth}

/*
ReadDecodeLimits returns an instance of [DecodeLimits] alongside an
error following an attempt to decode a YAML document from r.
*/
func ReadDecodeLimits(r io.Reader) (lim DecodeLimits, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(&lim)
	return
}

/*
MustReadDecodeLimits panics if [ReadDecodeLimits] returned an error.
*/
func MustReadDecodeLimits(r io.Reader) DecodeLimits {
	lim, err := ReadDecodeLimits(r)
	if err != nil {
		panic(err)
	}
	return lim
}

/*
ApplyDecodeLimits installs lim as the package-wide active limits used
by subsequent Marshal/Unmarshal calls. A zero field in lim falls back
to the existing active value rather than disabling the limit.
*/
func ApplyDecodeLimits(lim DecodeLimits) {
	if lim.MaxRecursionDepth > 0 {
		activeLimits.MaxRecursionDepth = lim.MaxRecursionDepth
	}
	if lim.MaxInputBytes > 0 {
		activeLimits.MaxInputBytes = lim.MaxInputBytes
	}
}

/*
ActiveDecodeLimits returns the currently active [DecodeLimits].
*/
func ActiveDecodeLimits() DecodeLimits { return activeLimits }

func inputSizeExceeded(n int) bool {
	return activeLimits.MaxInputBytes > 0 && n > activeLimits.MaxInputBytes
}
