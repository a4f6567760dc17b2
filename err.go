package asn1x

/*
err.go contains error constructors and literals used frequently.
throughout this package.
*/

import "sync"

var (
	errorAmbiguousChoice       error = mkerr("ambiguous alternative: multiple registered alternatives match the instance")
	errorNoChoicesAvailable    error = mkerr("no CHOICE alternatives available")
	errorNoChoiceForType       error = mkerr("no matching alternative found for input type")
	errorNilInput              error = mkerr("nil input instance")
	errorNilReceiver           error = mkerr("nil receiver instance")
	errorNoPrimitiveRead       error = mkerr("type does not implement read method")
	errorNoCompoundChoices     error = mkerr("no compound CHOICE alternatives available")
	errorNoCompoundChoiceMatch error = mkerr("no compound CHOICE alternatives matched the data")
	errorEmptyASN1Parameters   error = mkerr("ASN.1 parameters missing or truncated")
	errorEmptyIdentifier       error = mkerr("empty identifier")
	errorTagTooLarge           error = mkerr("tag too large (≥ 2^28)")
	errorTruncatedTag          error = mkerr("truncated high-tag-number form")
	errorOutOfBounds           error = mkerr("content and offset out of bounds")
	errorIndefiniteProhibited  error = mkerr("Indefinite lengths not supported by encoding rule")
	errorInvalidPacket         error = mkerr("invalid Packet instance")
	errorEmptyLength           error = mkerr("length bytes not found")
	errorTruncatedContent      error = mkerr("packet content is truncated")
	errorTruncatedLength       error = mkerr("packet length is truncated")
	errorBadLength             error = mkerr("malformed length octet(s)")
	errorLengthTooLarge        error = mkerr("length bytes too large (>4 octets)")

	// Header and tag-matching errors (see [read_header] in C1).
	errorBadObjectHeader error = mkerr("malformed tag/length header")
	errorWrongTag        error = mkerr("mandatory tag mismatch")

	// CHOICE and MSTRING errors.
	errorNoMatchingChoice   error = mkerr("no CHOICE alternative matched the input")
	errorMStringNotUniversal error = mkerr("MSTRING: class is not UNIVERSAL")
	errorMStringWrongTag     error = mkerr("MSTRING: tag not present in the accepted-tag bitmap")

	// Constructed-form and length-accounting errors.
	errorSequenceNotConstructed  error = mkerr("SEQUENCE body is not constructed")
	errorExplicitTagNotConstructed error = mkerr("EXPLICIT tag body is not constructed")
	errorTypeNotConstructed      error = mkerr("type requires a constructed encoding")
	errorSequenceLengthMismatch  error = mkerr("SEQUENCE content length does not match consumed bytes")
	errorExplicitLengthMismatch  error = mkerr("EXPLICIT tag content length does not match consumed bytes")
	errorFieldMissing            error = mkerr("mandatory field missing from SEQUENCE")

	// End-of-contents errors.
	errorMissingEOC    error = mkerr("indefinite-length encoding missing its EOC marker")
	errorUnexpectedEOC error = mkerr("EOC marker encountered outside an indefinite-length body")

	// Primitive shape errors.
	errorNullIsWrongLength    error = mkerr("NULL body must be empty")
	errorBooleanIsWrongLength error = mkerr("BOOLEAN body must be exactly one octet")

	// ANY wildcard errors.
	errorIllegalNull        error = mkerr("NULL is not a legal value in this context")
	errorIllegalTaggedAny   error = mkerr("ANY may not be combined with an explicit/implicit tag override")
	errorIllegalOptionalAny error = mkerr("ANY may not be marked OPTIONAL")

	// Auxiliary hook and recursion errors.
	errorAuxHook           error = mkerr("auxiliary pre/post decode hook refused the value")
	errorMaxRecursionDepth error = mkerr("maximum template recursion depth exceeded")
)

func errorNoChoiceMatched(name string) (err error) {
	return mkerrf(errorNoChoiceForType.Error() + " " + name)
}

func errorASN1Expect(a, b any, typ string) (err error) {
	switch typ {
	case "Tag":
		i, j := a.(int), b.(int)
		err = mkerrf("Expect" + typ + ": wrong tag: got " + itoa(j) + " (" +
			TagNames[j] + "), want " + itoa(i) + " (" + TagNames[i] + ")")
	case "Class":
		i, j := a.(int), b.(int)
		err = mkerrf("Expect" + typ + ": wrong class: got " + itoa(j) + " (" +
			ClassNames[j] + "), want " + itoa(i) + " (" + ClassNames[i] + ")")
	case "Length":
		i, j := a.(int), b.(int)
		err = mkerrf("Expect" + typ + ": wrong length: got " + itoa(j) + ", want " + itoa(i))
	case "Compound":
		i, j := a.(bool), b.(bool)
		err = mkerrf("Expect" + typ + ": wrong compound: got " + bool2str(j) + " (" +
			CompoundNames[j] + "), want " + bool2str(i) + " (" + CompoundNames[i] + ")")
	}

	return
}

func errorASN1TagInClass(expectClass, expectTag, class, tag int) (err error) {
	if class != expectClass || tag != expectTag {
		err = mkerrf("expected tag " + TagNames[expectTag] + " in class " +
			ClassNames[expectClass] + ", got tag " + itoa(tag) +
			" in class " + itoa(class))
	}

	return
}

func errorASN1ConstructedTagClass(wantTLV, gotTLV TLV) error {
	return mkerrf("Constructed: expected compound element with class " + itoa(wantTLV.Class) +
		" and tag " + itoa(wantTLV.Tag) + ", got class " + itoa(gotTLV.Class) + " and tag " + itoa(gotTLV.Tag) +
		", compound:" + bool2str(gotTLV.Compound))
}

/*
codecErrorf builds a formatted error from a mix of strings, ints,
errors and stringer-satisfying values (such as [EncodingRule]). It is
the codec-path counterpart to [mkerrf], used throughout the runtime
and PDU machinery where a caller-supplied error or integer needs to
be folded directly into the message without a prior itoa/Error() call.
*/
func codecErrorf(parts ...any) (err error) {
	return mkerr(joinErrorParts(parts...))
}

/*
joinErrorParts renders a mix of strings, ints, errors and
stringer-satisfying values into a single message, and backs every
*Errorf error-builder in this file.
*/
func joinErrorParts(parts ...any) string {
	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		case error:
			b.WriteString(v.Error())
		case interface{ String() string }:
			b.WriteString(v.String())
		default:
			b.WriteString("<not supported>")
		}
	}
	return b.String()
}

/*
choiceErrorf builds a formatted error arising from CHOICE selection
or registry lookup failures.
*/
func choiceErrorf(parts ...any) error { return mkerr("CHOICE: " + joinErrorParts(parts...)) }

/*
compositeErrorf builds a formatted error arising from SEQUENCE/SET
(composite) marshaling or unmarshaling failures.
*/
func compositeErrorf(parts ...any) error { return mkerr(joinErrorParts(parts...)) }

/*
constraintViolationf builds a formatted error describing a
[Constraint] validation failure.
*/
func constraintViolationf(parts ...any) error {
	return mkerr("CONSTRAINT VIOLATION: " + joinErrorParts(parts...))
}

/*
generalErrorf builds a formatted error for conditions that don't
belong to any single codec path.
*/
func generalErrorf(parts ...any) error { return mkerr(joinErrorParts(parts...)) }

/*
primitiveErrorf builds a formatted error arising from a [Primitive]
read or write failure.
*/
func primitiveErrorf(parts ...any) error { return mkerr(joinErrorParts(parts...)) }

/*
errorBadTypeForConstructor returns an error describing an
unsupported input type x given to a New<Type> constructor for the
named ASN.1 type.
*/
func errorBadTypeForConstructor(typeName string, x any) error {
	return mkerr("Invalid type for ASN.1 " + typeName + ": " + refTypeOf(x).String())
}

/*
errorNamedDefaultNotFound returns an error indicating that no
default value was registered under name via [RegisterDefaultValue].
*/
func errorNamedDefaultNotFound(name string) error {
	return mkerr("no registered default value found for name " + name)
}

/*
errorPrimitiveAssertionFailed returns an error indicating that x
could not be asserted as the [Primitive] type expected by the caller.
*/
func errorPrimitiveAssertionFailed(x any) error {
	return mkerr("type assertion to Primitive failed for " + refTypeOf(x).String())
}

/*
errorUnknownConstraint returns an error indicating that no
[Constraint] or [ConstraintGroup] was registered under name.
*/
func errorUnknownConstraint(name string) error {
	return mkerr("no registered constraint found for name " + name)
}

var errCache sync.Map

func mkerrf(parts ...any) error {
	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			if v, hit := errCache.Load(s); hit {
				return v.(error)
			}
		}
	}

	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		default:
			b.WriteString("<not supported>")
		}
	}
	msg := b.String()

	if v, hit := errCache.Load(msg); hit {
		return v.(error)
	}
	e := mkerr(msg)
	errCache.Store(msg, e)
	return e
}
