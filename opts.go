package asn1x

/*
opts.go contains all types and methods pertaining to the
custom Options type, which serves to deliver instructions
to the encoding/decoding process through use of struct
tags OR manual delivery of an Options instance.
*/

import "reflect"

/*
Options implements a simple encapsulator for encoding options. Instances
of this type serve two purposes.

  - Allow the user to specify top-level encoding options (e.g.: encode a SEQUENCE with [ClassApplication] as opposed to [ClassUniversal]
  - Simplify package internals by having a portable storage type for parsed struct field instructions which bear the "asn1:" tag prefix
*/
type Options struct {
	Explicit      bool               // if true, wrap the field in an explicit tag
	Optional      bool               // if true, the field is optional
	OmitEmpty     bool               // whether to ignore empty slice values
	Set           bool               // if true, encode as SET instead of SEQUENCE (for collections)
	Sequence      bool               // if true, encode a slice as SEQUENCE OF rather than SET OF
	Indefinite    bool               // whether a field is known to be of an indefinite length
	Automatic     bool               // whether automatic tagging is to be applied to a SEQUENCE, SET or CHOICE(s)
	Absent        bool               // if true, the field must never be present (and must be nil if a pointer)
	Extension     bool               // if true, this field collects trailing SEQUENCE extension TLVs ([]TLV)
	ComponentsOf  bool               // if true, this (anonymous) field's members are inlined into the parent
	Choices       string    // name of the registered CHOICE group for this field (see RegisterChoices)
	MStrings      []string  // accepted universal string tag names for an MSTRING field (see MultiString)
	Identifier    string    // "ia5", "numeric", "utf8" etc. (for string fields)
	Constraints   []string  // references to registered Constraint/ConstraintGroup instances
	WithComponents []string // names of registered WITH COMPONENTS presence rule sets
	Default       any       // default value, taken literally

	defaultKeyword string // name of a registered default value (via "default::name")
	depth          int    // current recursion depth of the encode/decode call chain

	tag, // if non-nil, indicates an alternative tag number.
	class, // represents the ASN.1 class: universal, application, context-specific, or private.
	choiceTag *int // tag for choice selection, if provided
	unidentified []string // for unidentified or superfluous keywords
}

/*
maxRecursionDepth bounds the depth of nested SEQUENCE/SET/CHOICE decoding
and encoding, guarding against adversarial or malformed input that would
otherwise recurse without limit.
*/
const maxRecursionDepth = 64

/*
incDepth increments the receiver's recursion depth counter. If the
resulting depth exceeds [maxRecursionDepth], the receiver is marked
with an internal overflow which subsequent composite operations
consult to abort decoding promptly.
*/
func (r *Options) incDepth() {
	if r == nil {
		return
	}
	r.depth++
}

/*
depthExceeded returns true if the receiver's recursion depth has
surpassed the active [DecodeLimits] MaxRecursionDepth (see
[ApplyDecodeLimits]).
*/
func (r *Options) depthExceeded() bool {
	return r != nil && r.depth > activeLimits.MaxRecursionDepth
}

/*
copyDepth copies the current recursion depth from src into the
receiver, used when deriving field-local options from a parent
Options instance (e.g.: COMPONENTS OF inlining) so the depth
counter is not reset to zero.
*/
func (r *Options) copyDepth(src *Options) {
	if r != nil && src != nil {
		r.depth = src.depth
	}
}

/*
defaultEquals returns a Boolean value indicative of v matching the
receiver's configured default value -- either the literal [Options.Default],
or, if absent, a value registered under [Options.defaultKeyword] via
[RegisterDefaultValue].
*/
func (r *Options) defaultEquals(v any) bool {
	if r == nil {
		return false
	}

	def := r.Default
	if def == nil && r.defaultKeyword != "" {
		def, _ = lookupDefaultValue(r.defaultKeyword)
	}

	if def == nil {
		return false
	}

	return deepEqual(def, v)
}

// defaultOptions returns default options (e.g., no explicit tagging, context-specific for tagged fields)
func defaultOptions() Options {
	// For tagged fields we typically default to context-specific unless overridden.
	class := ClassContextSpecific
	return Options{
		class: &class, // by default, a "tag:x" implies context-specific.
	}
}

func implicitOptions() Options {
	opts := defaultOptions()
	opts.SetClass(ClassUniversal)
	return opts
}

// addStringConfigValue appends val to dst if cond is true.
func addStringConfigValue(dst *[]string, cond bool, val string) {
	if cond {
		*dst = append(*dst, val)
	}
}

// stringifyDefault converts r.Default into its tag-ready form.
func stringifyDefault(d any) string {
	switch v := d.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return bool2str(v)
	case Integer:
		return v.String()
	default:
		return "unidentified-value"
	}
}

/*
String returns the string representation of the receiver instance.
*/
func (r Options) String() string {
	var parts []string

	addStringConfigValue(&parts, r.Tag() >= 0, "tag:"+itoa(r.Tag()))
	addStringConfigValue(&parts, validClass(r.Class()) && r.Class() > 0, lc(ClassNames[r.Class()]))
	if r.choiceTag != nil {
		addStringConfigValue(&parts, true, "choice-tag:"+itoa(*r.choiceTag))
	}
	addStringConfigValue(&parts, r.Explicit, "explicit")
	addStringConfigValue(&parts, r.Optional, "optional")
	addStringConfigValue(&parts, r.Automatic, "automatic")
	addStringConfigValue(&parts, r.Set, "set")

	// constraints (leave the single loop â€‘ counts as one branch)
	for _, c := range r.Constraints {
		parts = append(parts, "constraint:"+c)
	}

	addStringConfigValue(&parts, r.OmitEmpty, "omitempty")

	if def := stringifyDefault(r.Default); def != "" {
		parts = append(parts, def)
	}

	addStringConfigValue(&parts, r.Identifier != "", lc(r.Identifier))
	addStringConfigValue(&parts, r.Choices != "", lc(r.Choices))

	return join(parts, ",")
}

/*
NewOptions returns a new instance of [Options] alongside an error
following an attempt to parse the input tag string value.

The syntax of tag is the same as [encoding/asn1], e.g.:

	asn1:"application"
	asn1:"tag:4,explicit"
*/
func NewOptions(tag string) (Options, error) {
	var (
		opts Options
		err  error
	)

	if tag = trimS(lc(tag)); hasPfx(tag, `asn1:`) {
		tag = trimS(tag[5:])
	}

	if len(tag) == 0 {
		err = errorEmptyASN1Parameters
	} else {
		opts, err = parseOptions(tag)
	}

	return opts, err
}

func parseOptions(tagStr string) (opts Options, err error) {
	opts = implicitOptions()
	tagStr = trim(tagStr, `"`)
	tokens := split(tagStr, ",")

	for _, token := range tokens {
		token = trimS(token)
		switch {
		case hasPfx(token, "tag:"):
			numStr := trimPfx(token, "tag:")
			var tag int
			if tag, err = atoi(numStr); err != nil || tag < 0 {
				err = mkerr("invalid tag number " + numStr)
				return opts, err
			}
			opts.SetTag(tag)
			// If a tag is provided and no class keyword is present,
			// use context-specific instead of universal. This may be
			// overridden.
			opts.SetClass(ClassContextSpecific)
		case strInSlice(token, []string{"explicit", "optional", "automatic", "set", "sequence",
			"omitempty", "indefinite", "absent", "extension", "components-of"}):
			opts.setBool(token)
		case hasPfx(token, "constraint:"):
			opts.Constraints = append(opts.Constraints, trimPfx(token, "constraint:"))
		case hasPfx(token, "choices:"):
			opts.Choices = trimPfx(token, "choices:")
		case hasPfx(token, "mstring:"):
			opts.MStrings = split(trimPfx(token, "mstring:"), "|")
		case hasPfx(token, "with-components:"):
			opts.WithComponents = append(opts.WithComponents, trimPfx(token, "with-components:"))
		case hasPfx(token, "default:"):
			opts.parseOptionDefault(token)
		default:
			if isClass := opts.writeClassToken(token); !isClass {
				opts.parseOptionKeyword(token)
			}
		}
	}

	if len(opts.unidentified) > 0 {
		err = mkerr("Unidentified or superfluous keywords found: " + join(opts.unidentified, ` `))
	}

	return opts, err
}

func (r *Options) setBool(name string) {
	switch {
	case name == "explicit":
		r.Explicit = true
	case name == "automatic":
		r.Automatic = true
	case name == "omitempty":
		r.OmitEmpty = true
	case name == "optional":
		r.Optional = true
	case name == "set":
		r.Set = true
	case name == "sequence":
		r.Sequence = true
	case name == "indefinite":
		r.Indefinite = true
	case name == "absent":
		r.Absent = true
	case name == "extension":
		r.Extension = true
	case name == "components-of":
		r.ComponentsOf = true
	}
}

func (r *Options) writeClassToken(name string) (written bool) {
	// NOTE: universal NOT listed because the "universal"
	// token is NOT related to ClassUniversal, rather it
	// relates to the ASN.1 UNIVERSAL STRING type.
	switch {
	case name == "application":
		r.SetClass(ClassApplication)
		written = true
	case name == "context-specific" || name == "context specific":
		r.SetClass(ClassContextSpecific)
		written = true
	case name == "private":
		r.SetClass(ClassPrivate)
		written = true
	}

	return
}

func (r *Options) parseOptionDefault(token string) {
	if r.Default != nil || r.defaultKeyword != "" {
		// Don't re-write duplicate instances
		// of "default:...".
		return
	}

	defStr := trimPfx(token, "default:")

	if hasPfx(defStr, ":") {
		// "default::name" -- look up a registered default value by name
		// rather than taking the remainder literally.
		r.defaultKeyword = trimPfx(defStr, ":")
		return
	}

	switch {
	case isNumber(defStr):
		r.Default, _ = NewInteger(defStr)
	case isBool(defStr):
		r.Default, _ = pbool(defStr)
	default:
		// TODO : string fall-back is too broad.
		// Add other cases to reduce ineffective
		// use of string.
		r.Default = defStr
	}
}

func (r *Options) parseOptionKeyword(token string) {
	// Assume unidentified tag value is a string encoding label,
	// but only set it once.
	if strInSlice(token, adapterKeywords()) {
		if r.Identifier == "" {
			r.Identifier = swapAlias(token)
		} else {
			r.unidentified = append(r.unidentified, token)
		}
	} else {
		r.unidentified = append(r.unidentified, token)
	}
}

func swapAlias(alias string) (token string) {
	switch alias {
	case "teletex":
		token = "t61"
	default:
		token = alias
	}

	return
}

func extractOptions(field reflect.StructField, fieldNum int, automatic bool) (opts Options, err error) {
	if tagStr, ok := field.Tag.Lookup("asn1"); ok {
		var parsedOpts Options
		if parsedOpts, err = parseOptions(tagStr); err != nil {
			err = mkerr("Marshal: error parsing tag for field " + field.Name +
				"(" + itoa(fieldNum) + "): " + err.Error())
		} else {
			opts = parsedOpts
		}

		if !opts.HasTag() && automatic {
			if opts.Explicit {
				err = mkerr("EXPLICIT and AUTOMATIC are mutually exclusive")
				return
			}
			if opts.Class() == ClassUniversal {
				// UNLESS the user chose to override
				// the default class, here we impose
				// CONTEXT SPECIFIC (class 2).
				opts.SetClass(ClassContextSpecific)
			}
			opts.SetTag(fieldNum)
		}
	} else {
		opts = implicitOptions()
	}

	return
}

func headerOpts(tlv TLV) Options {
	opts := Options{}
	opts.SetTag(tlv.Tag)
	opts.SetClass(tlv.Class)
	return opts
}

func (r *Options) SetTag(n int) *Options {
	if n >= 0 {
		r.tag = &n
	}
	return r
}
func (r Options) HasTag() bool { return r.tag != nil }
func (r Options) Tag() int {
	if r.tag != nil {
		return *r.tag
	}
	return -1 // NO valid default
}

func (r *Options) SetClass(n int) {
	if n >= 0 {
		r.class = &n
	}
}

func (r Options) HasClass() bool { return r.class != nil }
func (r Options) Class() int {
	if r.class != nil {
		return *r.class
	}
	return 0 // UNIVERSAL default
}

/*
optsIsAutoTag returns a Boolean value indicative of o requesting
AUTOMATIC tagging.
*/
func optsIsAutoTag(o *Options) bool { return o != nil && o.Automatic }

/*
optsIsOmit returns a Boolean value indicative of o requesting
omission of zero-value fields.
*/
func optsIsOmit(o *Options) bool { return o != nil && o.OmitEmpty }

/*
optsIsAbsent returns a Boolean value indicative of o marking its
field as forcibly ABSENT.
*/
func optsIsAbsent(o *Options) bool { return o != nil && o.Absent }

/*
optsIsOptional returns a Boolean value indicative of o marking its
field as OPTIONAL.
*/
func optsIsOptional(o *Options) bool { return o != nil && o.Optional }

/*
optsHasDefault returns a Boolean value indicative of o carrying
either a literal default value or a registered default keyword.
*/
func optsHasDefault(o *Options) bool {
	return o != nil && (o.Default != nil || o.defaultKeyword != "")
}

/*
optsHasChoices returns a Boolean value indicative of o referencing
a registered [Choices] instance by name.
*/
func optsHasChoices(o *Options) bool { return o != nil && o.Choices != "" }

/*
deferImplicit returns o, or a freshly allocated implicit [Options]
instance if o is nil. Codec bodies which unconditionally dereference
Options fields call this first so they never operate on a nil pointer.
*/
func deferImplicit(o *Options) *Options {
	if o == nil {
		d := implicitOptions()
		o = &d
	}
	return o
}

/*
overrideOptionsRegistry associates a concrete Go type with an
[Options] instance that always takes precedence over any struct-tag
or caller-supplied Options for values of that type. See
[RegisterOverrideOptions].
*/
var overrideOptionsRegistry = map[reflect.Type]*Options{}

/*
RegisterOverrideOptions registers opts as the [Options] instance to
be used, unconditionally, whenever a value of x's concrete type is
marshaled or unmarshaled -- regardless of any struct-tag-derived or
caller-supplied Options in effect at that call site.
*/
func RegisterOverrideOptions(x any, opts *Options) {
	overrideOptionsRegistry[refTypeOf(x)] = opts
}

/*
lookupOverrideOptions returns the [Options] instance registered for
x's concrete type via [RegisterOverrideOptions], if any.
*/
func lookupOverrideOptions(x any) (*Options, bool) {
	if x == nil {
		return nil, false
	}
	o, ok := overrideOptionsRegistry[refTypeOf(x)]
	return o, ok
}

/*
deferOverrideOptions returns the [Options] registered for v's
concrete type via [RegisterOverrideOptions], if any; otherwise it
returns opts unchanged.
*/
func deferOverrideOptions(v reflect.Value, opts *Options) *Options {
	if v.IsValid() && v.CanInterface() {
		if o, ok := lookupOverrideOptions(v.Interface()); ok {
			return o
		}
	}
	return opts
}

func clearChildOpts(o *Options) (c *Options) {
	if o != nil {
		d := *o
		c = &d

		// remove per-field overrides
		c.tag = nil
		c.class = nil
		c.Explicit = false
	}

	return
}
