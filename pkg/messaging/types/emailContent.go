package types

// EmailContent is the rendered reminder mail. It is produced fresh on every
// run; only the subject is persisted (snapshotted into the reminder log).
type EmailContent struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}
