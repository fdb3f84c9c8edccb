package requests

// ResolveLocationRequest is the body of a single resolution call.
type ResolveLocationRequest struct {
	Text    string         `json:"text" binding:"required"`
	Options ResolveOptions `json:"options,omitempty"`
}

// ResolveOptions tunes one resolution call.
type ResolveOptions struct {
	// SkipCache bypasses the result cache for this call. The zero value
	// keeps caching on, so an omitted options block behaves normally.
	SkipCache bool `json:"skip_cache,omitempty"`
}

// DiagnoseLocationRequest asks for the pipeline breakdown of one input.
type DiagnoseLocationRequest struct {
	Text string `json:"text" binding:"required"`
}

// BatchResolveRequest resolves a list of inputs in one call.
type BatchResolveRequest struct {
	Texts   []string       `json:"texts" binding:"required,min=1,max=500"`
	Options ResolveOptions `json:"options,omitempty"`
}
