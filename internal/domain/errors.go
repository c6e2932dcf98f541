package domain

import "errors"

// Extraction and pipeline failure modes. Pattern matching, chunking and
// risk classification have no failure mode by design; anything raised
// there indicates a rule-table bug and is treated as internal.
var (
	// ErrUnsupportedFile means no extraction path produced usable text.
	// User-correctable: re-export or re-scan the file.
	ErrUnsupportedFile = errors.New("unsupported or corrupt file")

	// ErrEmptyDocument means extraction succeeded structurally but the
	// text is blank or whitespace only.
	ErrEmptyDocument = errors.New("document contains no text")

	// ErrExternalService means the summarization collaborator errored or
	// timed out. Not retried: retrying risks duplicate billable calls
	// with no idempotency key.
	ErrExternalService = errors.New("external analysis service failed")

	// ErrAnalysisNotFound means no stored analysis exists for the id.
	ErrAnalysisNotFound = errors.New("contract analysis not found")

	// ErrSessionNotFound means no chat messages exist for the session id.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrMissingSection means the model response lacked a required
	// labeled section.
	ErrMissingSection = errors.New("required section missing from model response")
)
