package compat

// Kind tags the client generation a request was classified as.
type Kind string

const (
	KindLegacy  Kind = "legacy"
	KindV2      Kind = "v2"
	KindCurrent Kind = "current"
)

// ClientFormat describes how response bodies must be shaped for the
// calling client. Derived once per request, never persisted.
type ClientFormat struct {
	Kind           Kind
	WrapInData     bool
	IncludeSuccess bool
}

var (
	// Legacy clients expect `{success, data}` envelopes plus a handful of
	// endpoint-specific reshapes.
	Legacy = ClientFormat{Kind: KindLegacy, WrapInData: true, IncludeSuccess: true}

	// V2 clients expect the `{success, data}` envelope with no special cases.
	V2 = ClientFormat{Kind: KindV2, WrapInData: true, IncludeSuccess: true}

	// Current clients receive handler bodies untouched.
	Current = ClientFormat{Kind: KindCurrent}
)
