package cbor

// TagHook is called by the decoder for every tagged data item with the
// decoded content and the tag number. Its result replaces the default *Tag
// value. The hook is also called for the self-describe tag 55799, which is
// otherwise unwrapped silently.
//
// Hooks must not return nil.
type TagHook func(v Value, tag uint64) Value

// SimpleHook is called by the decoder for every simple value that has no
// dedicated variant (anything other than false, true, null and undefined).
// Its result replaces the default Undefined value.
//
// Hooks must not return nil.
type SimpleHook func(code uint8) Value

// DecodeOptions configures a single decoding call.
type DecodeOptions struct {
	TagHook    TagHook
	SimpleHook SimpleHook

	// MaxDepth limits the nesting of arrays, maps and tags. Zero means no
	// limit, in which case nesting is bounded only by the goroutine stack.
	// Callers decoding untrusted input should set a limit.
	MaxDepth int

	// StrictSimpleValues rejects simple values below 32 that use the one byte
	// extension form (0xf8 0x00 through 0xf8 0x1f). By default they are
	// accepted and treated like their immediate form.
	StrictSimpleValues bool
}

// WithTagHook returns a decode option that installs h.
func WithTagHook(h TagHook) func(*DecodeOptions) {
	return func(o *DecodeOptions) {
		o.TagHook = h
	}
}

// WithSimpleHook returns a decode option that installs h.
func WithSimpleHook(h SimpleHook) func(*DecodeOptions) {
	return func(o *DecodeOptions) {
		o.SimpleHook = h
	}
}

// WithMaxDepth returns a decode option that limits nesting to n levels.
func WithMaxDepth(n int) func(*DecodeOptions) {
	return func(o *DecodeOptions) {
		o.MaxDepth = n
	}
}
