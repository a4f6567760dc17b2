package asn1x

import (
	"strings"
	"testing"
)

func TestReadDecodeLimits(t *testing.T) {
	doc := "maxRecursionDepth: 12\nmaxInputBytes: 4096\n"

	lim, err := ReadDecodeLimits(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadDecodeLimits failed: %v", err)
	}
	if lim.MaxRecursionDepth != 12 {
		t.Errorf("MaxRecursionDepth = %d, want 12", lim.MaxRecursionDepth)
	}
	if lim.MaxInputBytes != 4096 {
		t.Errorf("MaxInputBytes = %d, want 4096", lim.MaxInputBytes)
	}
}

func TestReadDecodeLimits_unknownField(t *testing.T) {
	doc := "maxRecursionDepth: 12\nbogusField: true\n"
	if _, err := ReadDecodeLimits(strings.NewReader(doc)); err == nil {
		t.Error("expected error for unknown YAML field, got nil")
	}
}

func TestMustReadDecodeLimits_panicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustReadDecodeLimits to panic on malformed YAML")
		}
	}()
	MustReadDecodeLimits(strings.NewReader("not: [valid"))
}

func TestApplyDecodeLimits(t *testing.T) {
	orig := ActiveDecodeLimits()
	defer ApplyDecodeLimits(orig)

	ApplyDecodeLimits(DecodeLimits{MaxRecursionDepth: 8, MaxInputBytes: 1024})

	got := ActiveDecodeLimits()
	if got.MaxRecursionDepth != 8 {
		t.Errorf("MaxRecursionDepth = %d, want 8", got.MaxRecursionDepth)
	}
	if got.MaxInputBytes != 1024 {
		t.Errorf("MaxInputBytes = %d, want 1024", got.MaxInputBytes)
	}

	// a zero field must not clobber the existing active value
	ApplyDecodeLimits(DecodeLimits{})
	if got := ActiveDecodeLimits(); got.MaxRecursionDepth != 8 || got.MaxInputBytes != 1024 {
		t.Errorf("zero-valued ApplyDecodeLimits call clobbered active limits: %+v", got)
	}
}

func TestInputSizeExceeded(t *testing.T) {
	orig := ActiveDecodeLimits()
	defer func() { activeLimits = orig }()

	ApplyDecodeLimits(DecodeLimits{MaxInputBytes: 10})
	if !inputSizeExceeded(11) {
		t.Error("expected inputSizeExceeded(11) to be true with MaxInputBytes=10")
	}
	if inputSizeExceeded(10) {
		t.Error("expected inputSizeExceeded(10) to be false with MaxInputBytes=10")
	}
}

func TestUnmarshal_rejectsOversizedInput(t *testing.T) {
	i, err := NewInteger(7)
	if err != nil {
		t.Fatalf("NewInteger failed: %v", err)
	}
	pkt, err := Marshal(i, With(BER))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	orig := ActiveDecodeLimits()
	ApplyDecodeLimits(DecodeLimits{MaxInputBytes: 1})
	defer func() { activeLimits = orig }()

	var out Integer
	if err = Unmarshal(pkt, &out); err == nil {
		t.Error("expected Unmarshal to reject an input exceeding MaxInputBytes")
	}
}
