package discovery

// Reason explains why a candidate was rejected.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonFetch      Reason = "fetch"
	ReasonStatus     Reason = "status"
	ReasonRead       Reason = "read"
	ReasonUnparsable Reason = "unparsable"
)

// Verdict is the outcome of validating a single candidate URL.
// A rejected candidate is a normal outcome, not an error.
type Verdict struct {
	Format Format
	Reason Reason
	Detail string
}

// Accept returns a verdict confirming the given format.
func Accept(format Format) Verdict {
	return Verdict{Format: format}
}

// Reject returns a "not a feed" verdict.
func Reject(reason Reason, detail string) Verdict {
	return Verdict{Format: FormatUnknown, Reason: reason, Detail: detail}
}

// IsFeed reports whether the candidate parsed as a supported format.
func (v Verdict) IsFeed() bool {
	return v.Format != FormatUnknown
}
