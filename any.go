package asn1x

/*
any.go contains the ASN.1 ANY wildcard type: a field whose concrete
universal type is not known ahead of time and must be discovered from
the encoded header itself.
*/

/*
Any implements the ASN.1 ANY type. Unlike every other [Primitive] in
this package, Any does not correspond to a single universal tag: its
Tag and Class fields are populated from whatever header is actually
present at decode time, and Value holds the decoded payload for that
discovered type (or, for a non-UNIVERSAL class, the raw undecoded
bytes).
*/
type Any struct {
	Tag   int
	Class int
	Value any
}

/*
IsPrimitive returns true, indicating the receiver is considered an
ASN.1 primitive type for the purposes of [Primitive] satisfaction.
*/
func (r Any) IsPrimitive() bool { return true }

/*
String returns the string representation of the receiver's decoded
Value, or an empty string if no value has been decoded.
*/
func (r Any) String() string {
	if s, ok := r.Value.(string); ok {
		return s
	}
	if p, ok := r.Value.(Primitive); ok {
		return p.String()
	}
	return ""
}

func (r *Any) read(pkt Packet, tlv TLV, opts *Options) (err error) {
	if pkt == nil {
		return mkerr("Nil Packet encountered during read")
	}

	// An ANY field may never carry a tag override, and may never be
	// marked OPTIONAL -- both would be ambiguous against a wildcard.
	if opts.HasTag() {
		return errorIllegalTaggedAny
	}
	if opts.Optional {
		return errorIllegalOptionalAny
	}

	if tlv.Tag == TagNull && tlv.Class == ClassUniversal {
		return errorIllegalNull
	}

	r.Tag = tlv.Tag
	r.Class = tlv.Class

	if tlv.Class != ClassUniversal {
		// Non-UNIVERSAL: keep the content octets opaque. The header is
		// not included; Tag and Class above carry it, and write rebuilds
		// the header from them.
		start := pkt.Offset()
		end := start + tlv.Length
		if end > pkt.Len() {
			return errorASN1Expect(end, pkt.Len(), "Length")
		}
		r.Value = append([]byte(nil), pkt.Data()[start:end]...)
		pkt.SetOffset(end)
		return nil
	}

	decoded, derr := decodePrimitiveByTag(tlv.Tag, pkt, tlv, opts)
	if derr != nil {
		return derr
	}
	r.Value = decoded
	return nil
}

func (r Any) write(pkt Packet, opts *Options) (n int, err error) {
	switch v := r.Value.(type) {
	case Primitive:
		n, err = v.write(pkt, opts)
	case []byte:
		off := pkt.Offset()
		if err = writeTLV(pkt, pkt.Type().newTLV(r.Class, r.Tag, len(v), false, v...), opts); err == nil {
			n = pkt.Offset() - off
		}
	default:
		err = codecErrorf("Any: no codec for value of this kind")
	}
	return
}

/*
decodePrimitiveByTag decodes the body described by tlv according to
its UNIVERSAL tag, returning the Go value the matching concrete
codec produces. This is the ANY branch's recursive call into the
ordinary primitive decoder (C4) once the wildcard has resolved to a
concrete universal type.
*/
func decodePrimitiveByTag(tag int, pkt Packet, tlv TLV, opts *Options) (val any, err error) {
	switch tag {
	case TagBoolean:
		var b Boolean
		err = b.read(pkt, tlv, opts)
		val = b
	case TagInteger, TagEnum:
		var e Enumerated
		err = e.read(pkt, tlv, opts)
		val = e
	case TagNull:
		var nul Null
		err = nul.read(pkt, tlv, opts)
		val = nul
	case TagOID:
		var o ObjectIdentifier
		err = o.read(pkt, tlv, opts)
		val = o
	case TagRelativeOID:
		var o RelativeOID
		err = o.read(pkt, tlv, opts)
		val = o
	case TagBitString:
		var bs BitString
		err = bs.read(pkt, tlv, opts)
		val = bs
	case TagObjectDescriptor:
		var od ObjectDescriptor
		err = od.read(pkt, tlv, opts)
		val = od
	default:
		// OCTET STRING and the character-string/time family, plus
		// SEQUENCE/SET/OTHER: store the content octets verbatim as an
		// OctetString. The header is not included.
		start := pkt.Offset()
		end := start + tlv.Length
		if end > pkt.Len() {
			return nil, errorASN1Expect(end, pkt.Len(), "Length")
		}
		raw := append([]byte(nil), pkt.Data()[start:end]...)
		pkt.SetOffset(end)
		val = OctetString(raw)
	}
	return
}
