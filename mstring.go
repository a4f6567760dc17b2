package asn1x

/*
mstring.go contains the ASN.1 MSTRING type: a field whose accepted
universal tags are restricted to an explicit list of character-string
types (e.g. IA5String, PrintableString, UTF8String) named via the
"mstring:" struct tag keyword, with the concrete alternative chosen by
the tag actually observed on the wire.
*/

import "reflect"

/*
MultiString implements the ASN.1 MSTRING construct: a field accepting
any one of several character-string universal types, the way ASN.1
module syntax might express something like:

	DirectoryString ::= CHOICE {
		teletexString   TeletexString,
		printableString PrintableString,
		universalString UniversalString,
		utf8String      UTF8String,
		bmpString       BMPString
	}

without resorting to the full CHOICE machinery: the accepted set is
restricted via the "mstring:" struct tag (e.g. `asn1:"mstring:ia5|printable|utf8"`)
and the concrete Go value actually decoded is held in Value, tagged
with the universal tag it was decoded (or will be encoded) as.
*/
type MultiString struct {
	value any
	tag   int
}

/*
NewMultiString returns an instance of [MultiString] bearing val as its
value. If no tag is supplied, the tag is derived from val when val
satisfies [Primitive]; otherwise, an explicit tag must be supplied by
the caller before the instance may be marshaled successfully.
*/
func NewMultiString(val any, tag ...int) (m MultiString) {
	m.value = val
	if len(tag) > 0 {
		m.tag = tag[0]
	} else if p, ok := val.(Primitive); ok {
		m.tag = p.Tag()
	}
	return
}

/*
Value returns the underlying decoded (or to-be-encoded) Go value.
*/
func (r MultiString) Value() any { return r.value }

/*
Tag returns the universal tag number under which the receiver's
Value was (or will be) encoded.
*/
func (r MultiString) Tag() int { return r.tag }

/*
String returns the string representation of the receiver's Value, or
a zero string if unset or the value cannot stringify itself.
*/
func (r MultiString) String() string {
	if p, ok := r.value.(Primitive); ok {
		return p.String()
	}
	if s, ok := r.value.(string); ok {
		return s
	}
	return ""
}

/*
IsZero returns a Boolean value indicative of an unset receiver value.
*/
func (r MultiString) IsZero() bool { return r.value == nil }

var multiStringType = reflect.TypeOf(MultiString{})

func isMultiString(v reflect.Value) bool {
	return v.IsValid() && v.Type() == multiStringType
}

// mstringTags maps the "mstring:" alias keywords to their ASN.1
// universal tag number.
var mstringTags = map[string]int{
	"t61":        TagT61String,
	"teletex":    TagT61String,
	"videotex":   TagVideotexString,
	"printable":  TagPrintableString,
	"numeric":    TagNumericString,
	"ia5":        TagIA5String,
	"graphic":    TagGraphicString,
	"visible":    TagVisibleString,
	"general":    TagGeneralString,
	"universal":  TagUniversalString,
	"utf8":       TagUTF8String,
	"bmp":        TagBMPString,
}

// mstringSamples maps a universal tag number to the zero value of the
// Go type used to decode/encode it, for lookup within the master
// codec registry (see adapt.go's createCodecForPrimitive).
var mstringSamples = map[int]any{
	TagT61String:       T61String(""),
	TagVideotexString:  VideotexString(""),
	TagPrintableString: PrintableString(""),
	TagNumericString:   NumericString(""),
	TagIA5String:       IA5String(""),
	TagGraphicString:   GraphicString(""),
	TagVisibleString:   VisibleString(""),
	TagGeneralString:   GeneralString(""),
	TagUniversalString: UniversalString(""),
	TagUTF8String:      UTF8String(""),
	TagBMPString:       BMPString(nil),
}

func acceptedMStringTags(opts *Options) (accepted map[int]bool, err error) {
	accepted = make(map[int]bool)
	for _, name := range opts.MStrings {
		tag, ok := mstringTags[lc(trimS(name))]
		if !ok {
			err = mkerrf("MSTRING: unrecognized accepted tag name: ", name)
			return
		}
		accepted[tag] = true
	}
	if len(accepted) == 0 {
		err = mkerr("MSTRING: no accepted tags declared")
	}
	return
}

func unmarshalMultiString(v reflect.Value, pkt PDU, opts *Options) (err error) {
	var accepted map[int]bool
	if accepted, err = acceptedMStringTags(opts); err != nil {
		return
	}

	var tlv TLV
	if tlv, err = pkt.PeekTLV(); err != nil {
		if optsIsOptional(opts) {
			err = nil
		}
		return
	}

	if tlv.Class != ClassUniversal {
		if !optsIsOptional(opts) {
			err = errorMStringNotUniversal
		}
		return
	}

	if !accepted[tlv.Tag] {
		if !optsIsOptional(opts) {
			err = errorMStringWrongTag
		}
		return
	}

	sample, ok := mstringSamples[tlv.Tag]
	if !ok {
		err = mkerrf("MSTRING: unsupported universal tag: ", itoa(tlv.Tag))
		return
	}

	bx, ok := createCodecForPrimitive(sample)
	if !ok {
		err = mkerrf("MSTRING: no codec registered for tag: ", itoa(tlv.Tag))
		return
	}

	if _, err = pkt.TLV(); err != nil {
		return
	}
	if err = bx.read(pkt, tlv, opts); err != nil {
		return
	}

	ms := NewMultiString(bx.getVal(), tlv.Tag)
	err = refSetValue(v, refValueOf(ms))
	return
}

func marshalMultiString(ms MultiString, pkt PDU, opts *Options) (err error) {
	if ms.value == nil {
		err = codecErrorf("MultiString: no value to encode")
		return
	}

	sample, ok := mstringSamples[ms.tag]
	if !ok {
		err = mkerrf("MultiString: unsupported universal tag: ", itoa(ms.tag))
		return
	}

	bx, ok := createCodecForPrimitive(sample)
	if !ok {
		err = mkerrf("MultiString: no codec registered for tag: ", itoa(ms.tag))
		return
	}
	bx.setVal(ms.value)

	_, err = bx.write(pkt, opts)
	return
}
