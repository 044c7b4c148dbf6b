package types

// ScriptRecord is the structured script produced from one generation
// response. It is created once per run and passed by value through every
// downstream stage.
type ScriptRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Keywords    string   `json:"keywords"` // space-delimited stock footage search phrase
	Script      string   `json:"script"`   // narration body
}

// PublishStatus is the outcome variant of the publish stage.
type PublishStatus string

const (
	PublishPublished PublishStatus = "published"
	PublishSkipped   PublishStatus = "skipped"
	PublishFailed    PublishStatus = "failed"
)

// PublishOutcome reports what happened to the final video. A failed publish
// does not fail the run; the operator uploads manually instead.
type PublishOutcome struct {
	Status  PublishStatus `json:"status"`
	VideoID string        `json:"video_id,omitempty"`
	URL     string        `json:"url,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}

// RunRecord tracks the full state of one pipeline run
type RunRecord struct {
	RunID       string         `json:"run_id"`
	StartedAt   string         `json:"started_at"`
	CompletedAt string         `json:"completed_at"`
	Topic       string         `json:"topic"`
	Record      *ScriptRecord  `json:"script"`
	AudioFile   string         `json:"audio_file"`
	ClipFiles   []string       `json:"clip_files"`
	VideoFile   string         `json:"video_file"`
	Publish     PublishOutcome `json:"publish"`
	Error       string         `json:"error,omitempty"`
}
