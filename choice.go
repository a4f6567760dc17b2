package asn1x

/*
choice.go contains all functionality pertaining to the ASN.1 CHOICE
type.
*/

import (
	"reflect"
	"sync"
)

/*
Choice implements a "transport" mechanism for ASN.1 CHOICE types
residing within compound types (e.g.: SEQUENCEs) or standing alone
(e.g.: as the element type of a SEQUENCE OF/SET OF). For example:

	 type MyStruct struct {
		SomeField Choice
		.. other fields ..
	 }

An instance of Choice is built using [NewChoice], optionally supplying
the ASN.1 context tag number of the chosen alternative:

	myChoice := NewChoice(someValue, 2)

Finally, we place our Choice within the compound instance in question
prior to encoding via the [Marshal] function.

	 mine := myStruct{
		SomeField: myChoice,
	 }

Use of a tag is only necessary if the list of available alternatives
contains more than one instance of a single type, which would
otherwise lead to an ambiguous Choice state. For an example of this in
the real world, see the [EmbeddedPDV] ASN.1 schema definition.
*/
type Choice struct {
	value any
	tag   int
	set   bool
}

/*
NewChoice returns an instance of [Choice] bearing val as its chosen
value. The variadic tag argument, if provided, fixes the ASN.1 context
tag number of the alternative -- this is required whenever the
alternative's concrete type cannot be resolved unambiguously through
an associated CHOICE registry (see [RegisterChoices]).
*/
func NewChoice(val any, tag ...int) (c Choice) {
	c.value = val
	if len(tag) > 0 {
		c.tag = tag[0]
		c.set = true
	}
	return
}

/*
Value returns the value held by the receiver instance, or nil if the
receiver is unset.
*/
func (r Choice) Value() any { return r.value }

/*
Tag returns the ASN.1 context tag number assigned to the receiver, or
-1 if none was assigned.
*/
func (r Choice) Tag() int {
	if r.set {
		return r.tag
	}
	return -1
}

/*
SetTag assigns tag to the receiver instance, returning the receiver
to allow for call chaining.
*/
func (r *Choice) SetTag(tag int) *Choice {
	if r != nil {
		r.tag = tag
		r.set = true
	}
	return r
}

/*
IsZero returns a Boolean value indicative of an empty value state.
*/
func (r Choice) IsZero() bool { return r.value == nil }

// isChoice is a private marker method used to identify instances of
// Choice via type assertion without resorting to reflection.
func (r Choice) isChoice() {}

// choicePtrType allows reflect-based comparisons against the concrete
// [Choice] type without repeatedly calling reflect.TypeOf.
var choicePtrType = reflect.TypeOf(Choice{})

/*
isChoice returns a Boolean value indicative of v being of the concrete
[Choice] type.
*/
func isChoice(v reflect.Value, _ *Options) bool {
	return v.IsValid() && v.Type() == choicePtrType
}

/*
isInterfaceChoice returns a Boolean value indicative of v representing
a field that must be routed through the CHOICE machinery despite not
being of the concrete [Choice] type -- namely, an interface-kind field
whose associated [Options] name a registered CHOICE group.
*/
func isInterfaceChoice(v reflect.Value, opts *Options) bool {
	if !v.IsValid() {
		return false
	}
	if v.Type() == choicePtrType {
		return true
	}
	return v.Kind() == reflect.Interface && optsHasChoices(opts)
}

// choiceAlt describes a single alternative registered to a [Choices]
// builder.
type choiceAlt struct {
	group    reflect.Type // interface type if bound to one, else concrete
	concrete reflect.Type
	tag      int
	class    int
	explicit bool
}

/*
Choices implements a CHOICE alternative builder. Alternatives are
declared with [Choices.Register] and the resulting value is either
bound to a package-level name with [RegisterChoices] for lookup via
[GetChoices], or returned directly by a per-field "<FieldName>Choices"
method (see [EmbeddedPDV] for a real-world example of the latter).
*/
type Choices struct {
	auto bool
	alts []choiceAlt
}

/*
NewChoices allocates and returns an instance of [Choices], recording
the optional auto flag. Tags omitted from subsequent [Choices.Register]
calls are assigned sequentially and marked EXPLICIT whether or not
auto is set.
*/
func NewChoices(auto ...bool) (c Choices) {
	if len(auto) > 0 {
		c.auto = auto[0]
	}
	return
}

/*
Register declares concrete as a CHOICE alternative within the receiver
instance. ifacePtr, if non-nil, must be a nil pointer to the interface
type that the alternative group is bound to (e.g.: (*MyIface)(nil));
this allows several concrete types sharing a common interface to be
resolved as a single CHOICE group when decoding into that interface.
When ifacePtr is nil, the alternative is keyed directly by its own
concrete type.

opts, if provided, supplies the wire tag ([Options.SetTag]), class
([Options.SetClass]) and EXPLICIT disposition ([Options.Explicit]) of
the alternative. When omitted (or when no tag was set), the tag is the
alternative's zero-based registration index and the alternative is
marked EXPLICIT, whether or not the receiver was built with automatic
tagging engaged.
*/
func (r *Choices) Register(ifacePtr any, concrete any, opts ...*Options) {
	if concrete == nil {
		return
	}

	ct := derefTypePtr(reflect.TypeOf(concrete))
	group := ct
	if ifacePtr != nil {
		if it := reflect.TypeOf(ifacePtr); it.Kind() == reflect.Ptr {
			group = it.Elem()
		}
	}

	tag := -1
	class := ClassContextSpecific
	explicit := true
	if len(opts) > 0 && opts[0] != nil {
		o := opts[0]
		if o.HasTag() {
			tag = o.Tag()
		}
		if o.HasClass() {
			class = o.Class()
		}
		explicit = o.Explicit
	}

	if tag == -1 {
		tag = len(r.alts)
		explicit = true
	}

	r.alts = append(r.alts, choiceAlt{
		group:    group,
		concrete: ct,
		tag:      tag,
		class:    class,
		explicit: explicit,
	})
}

/*
Len returns the integer number of registered alternatives present
within the receiver instance.
*/
func (r Choices) Len() int { return len(r.alts) }

// byTag returns the alternative registered under the given wire tag.
func (r Choices) byTag(tag int) (alt choiceAlt, ok bool) {
	for _, a := range r.alts {
		if a.tag == tag {
			return a, true
		}
	}
	return
}

/*
Choose returns a Boolean value indicative of instance's concrete type
having been registered within the receiver -- and, when tag is
supplied, having been registered specifically under that wire tag.
*/
func (r Choices) Choose(instance any, tag ...int) bool {
	if instance == nil {
		return false
	}
	ct := derefTypePtr(reflect.TypeOf(instance))
	for _, a := range r.alts {
		if a.concrete != ct {
			continue
		}
		if len(tag) == 0 {
			return true
		}
		if a.tag == tag[0] {
			return true
		}
	}
	return false
}

// lookupDescriptorByInterface returns the descriptor bound to
// interface type t, if any.
func (r Choices) lookupDescriptorByInterface(t reflect.Type) (desc *choiceDescriptor, ok bool) {
	for _, a := range r.alts {
		if a.group == t {
			if desc == nil {
				desc = newChoiceDescriptor()
			}
			desc.typeToTag[a.concrete] = a.tag
			desc.tagToType[a.tag] = a.concrete
			desc.class[a.tag] = a.class
			desc.explicit[a.tag] = a.explicit
			ok = true
		}
	}
	return
}

// buildRegistry flattens the receiver's alternatives into one
// reflect.Type-indexed choiceRegistry, grouping alternatives that
// share a common interface binding and merging repeated registrations
// of the same concrete type into a single descriptor.
func (r Choices) buildRegistry(name string) *choiceRegistry {
	reg := &choiceRegistry{name: name, reg: make(map[reflect.Type]*choiceDescriptor)}
	for _, a := range r.alts {
		cd, ok := reg.reg[a.group]
		if !ok {
			cd = newChoiceDescriptor()
			reg.reg[a.group] = cd
		}
		cd.typeToTag[a.concrete] = a.tag
		cd.tagToType[a.tag] = a.concrete
		cd.class[a.tag] = a.class
		cd.explicit[a.tag] = a.explicit
	}
	return reg
}

/*
choiceDescriptor describes the resolution tables for one CHOICE group:
the wire tag assigned to each concrete alternative type and back.
*/
type choiceDescriptor struct {
	typeToTag map[reflect.Type]int
	tagToType map[int]reflect.Type
	class     map[int]int
	explicit  map[int]bool
}

func newChoiceDescriptor() *choiceDescriptor {
	return &choiceDescriptor{
		typeToTag: make(map[reflect.Type]int),
		tagToType: make(map[int]reflect.Type),
		class:     make(map[int]int),
		explicit:  make(map[int]bool),
	}
}

/*
choiceRegistry is the named, lookup-optimized counterpart of [Choices],
produced by [RegisterChoices] and retrieved via [GetChoices].
*/
type choiceRegistry struct {
	name string
	reg  map[reflect.Type]*choiceDescriptor
}

// lookupDescriptorByConcrete scans every descriptor bound to the
// receiver for one declaring t as an alternative.
func (r *choiceRegistry) lookupDescriptorByConcrete(t reflect.Type) (name string, desc *choiceDescriptor, ok bool) {
	if r == nil {
		return
	}
	for _, cd := range r.reg {
		if _, found := cd.typeToTag[t]; found {
			return r.name, cd, true
		}
	}
	return
}

// lookupDescriptorByTag scans every descriptor bound to the receiver
// for one declaring tag as an alternative's wire tag.
func (r *choiceRegistry) lookupDescriptorByTag(tag int) (name string, desc *choiceDescriptor, ok bool) {
	if r == nil {
		return
	}
	for _, cd := range r.reg {
		if _, found := cd.tagToType[tag]; found {
			return r.name, cd, true
		}
	}
	return
}

var (
	choiceRegistryMu  sync.RWMutex
	choiceRegistryMap = map[string]*choiceRegistry{}
)

/*
RegisterChoices binds choices under name within a package-level
registry, allowing it to be retrieved later -- from any field whose
[Options] specify "choices:name" -- via [GetChoices].
*/
func RegisterChoices(name string, choices Choices) {
	choiceRegistryMu.Lock()
	defer choiceRegistryMu.Unlock()
	choiceRegistryMap[name] = choices.buildRegistry(name)
}

/*
UnregisterChoices removes the named CHOICE registry previously
installed via [RegisterChoices].
*/
func UnregisterChoices(name string) {
	choiceRegistryMu.Lock()
	defer choiceRegistryMu.Unlock()
	delete(choiceRegistryMap, name)
}

/*
GetChoices returns the named CHOICE registry previously installed via
[RegisterChoices], or false if no such registry is registered.
*/
func GetChoices(name string) (*choiceRegistry, bool) {
	if name == "" {
		return nil, false
	}
	choiceRegistryMu.RLock()
	defer choiceRegistryMu.RUnlock()
	reg, ok := choiceRegistryMap[name]
	return reg, ok
}

/*
getChoicesMethod returns an instance of func() Choices. This is used to
extract an instance of Choices containing any number of alternatives.
Any struct which contains a field of type Choice, i.e.:

	type MyStruct struct {
	       FieldName Choice `... any asn1 tags ...`
	}

... MAY extend a method bearing the name:

	<FieldName>Choices

... where <FieldName> is the actual case-accurate struct field string
name, and is prepended to the "Choices" literal string.

The method is niladic and returns only one (1) value: an instance of
Choices.

Thus, MyStruct would extend:

	FieldNameChoices() Choices

This mechanism exists to support per-field CHOICE resolution without
requiring a named, package-level registry -- e.g.: for [EmbeddedPDV],
whose "Identification" alternatives have no common interface binding.
*/
func getChoicesMethod(field string, x any) (func() Choices, bool) {
	v := reflect.ValueOf(x)
	method := v.MethodByName(field + "Choices")
	if !method.IsValid() {
		return nil, false
	}

	mType := method.Type()
	if mType.NumIn() != 0 || mType.NumOut() != 1 {
		return nil, false
	}

	choicesType := reflect.TypeOf((*Choices)(nil)).Elem()
	if !mType.Out(0).AssignableTo(choicesType) {
		return nil, false
	}

	choicesFunc := func() Choices {
		results := method.Call(nil)
		return results[0].Interface().(Choices)
	}

	return choicesFunc, true
}

/*
selectFieldChoice resolves the CHOICE alternative occupying the next
TLV of pkt using the Choices instance exposed by constructed's
"<n>Choices" method (see [getChoicesMethod]).
*/
func selectFieldChoice(n string, constructed any, pkt Packet, opts *Options) (ch Choice, err error) {
	meth, found := getChoicesMethod(n, constructed)
	if !found {
		err = errorNoChoicesAvailable
		return
	}
	choices := meth()

	switch pkt.Type() {
	case BER, DER, CER:
		var tlv TLV
		if tlv, err = pkt.TLV(); err == nil {
			pkt.SetOffset(pkt.Offset() + tlv.Length)
			ch, err = chooseChoiceCandidateBER(pkt, tlv, choices, opts)
		}
	default:
		err = mkerr("Encoding rule not supported")
	}

	return
}

/*
chooseChoiceCandidateBER decodes the EXPLICIT-tagged CHOICE alternative
described by tlv, whose wire tag must have been registered against
choices, returning the decoded alternative wrapped in a [Choice].
*/
func chooseChoiceCandidateBER(pkt Packet, tlv TLV, choices Choices, opts *Options) (ch Choice, err error) {
	alt, ok := choices.byTag(tlv.Tag)
	if !ok {
		err = mkerrf("unknown choice tag: ", itoa(tlv.Tag))
		return
	}

	inner := pkt.Type().New(tlv.Value...)
	inner.SetOffset(0)

	candidate := reflect.New(alt.concrete)
	childOpts := &Options{}
	if err = unmarshalValue(inner, candidate.Elem(), childOpts); err == nil {
		ch = NewChoice(candidate.Elem().Interface(), tlv.Tag)
	}
	_ = opts

	return
}

/*
marshalChoiceWrapper writes the alternative held by the [Choice] value
chv as an EXPLICIT context-tagged TLV into pkt. The wire tag is taken
directly from chv when set; otherwise it is resolved via the CHOICE
registry named by opts.Choices.
*/
func marshalChoiceWrapper(_ any, pkt PDU, opts *Options, chv reflect.Value) (err error) {
	ch, ok := chv.Interface().(Choice)
	if !ok {
		err = codecErrorf("marshalChoiceWrapper: value is not a Choice")
		return
	}

	inner := ch.Value()
	if inner == nil {
		err = codecErrorf("marshalChoiceWrapper: CHOICE has no value")
		return
	}

	tag := ch.tag
	hasTag := ch.set
	class := ClassContextSpecific

	if optsHasChoices(opts) {
		if reg, found := GetChoices(opts.Choices); found {
			concreteT := derefTypePtr(reflect.TypeOf(inner))
			if _, cd, found2 := reg.lookupDescriptorByConcrete(concreteT); found2 {
				if !hasTag {
					if t, found3 := cd.typeToTag[concreteT]; found3 {
						tag, hasTag = t, true
					}
				}
				if c, found3 := cd.class[tag]; found3 {
					class = c
				}
			}
		}
	}

	if !hasTag {
		err = codecErrorf("marshalChoiceWrapper: unable to determine CHOICE alternative tag")
		return
	}

	typ := pkt.Type()
	tmp := typ.New()
	tmp.SetOffset(0)

	if err = marshalValue(refValueOf(inner), tmp, &Options{}); err != nil {
		return
	}

	content := tmp.Data()
	id := emitHeader(class, tag, true)
	pkt.Append(id)
	bufPtr := getBuf()
	encodeLengthInto(typ, bufPtr, len(content))
	pkt.Append(*bufPtr...)
	putBuf(bufPtr)
	pkt.Append(content...)

	return
}

/*
unmarshalUnwrapInterfaceChoice is retained as an extension point for
callers that need to perform work prior to the generic CHOICE decode
path; no such work is currently required.
*/
func unmarshalUnwrapInterfaceChoice(_ PDU, _ reflect.Value, _ *Options) (err error) {
	return
}

// choiceOptions and choiceAlternative describe one resolved CHOICE
// alternative for the benefit of the SET/SET OF CHOICE machinery in
// set.go, which resolves alternatives by wire tag via the named
// registry rather than via [Choices] directly.
type choiceOptions struct {
	Explicit bool
	Tag      int
	UTag     int
}

type choiceAlternative struct {
	Type reflect.Type
	Opts choiceOptions
}
