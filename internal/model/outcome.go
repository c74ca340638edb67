package model

// Outcome records the result of one review-request email attempt.
// Exactly one of MessageID or Error is set; PreviewURL accompanies
// MessageID when the transport exposes a preview mailbox.
type Outcome struct {
	MessageID  string `json:"messageId,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}
