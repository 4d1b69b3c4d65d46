package pipeline

import "fmt"

// Stage names a step of a pipeline run
type Stage string

const (
	StageInit           Stage = "init"
	StageDetectPlatform Stage = "detect_platform"
	StageFetch          Stage = "fetch"
	StageNormalize      Stage = "normalize"
	StageAcquire        Stage = "acquire"
	StageDetectLanguage Stage = "detect_language"
	StageFormat         Stage = "format"
	StageParaphrase     Stage = "paraphrase"
	StageTranslate      Stage = "translate"
	StageTags           Stage = "tags"
	StageDone           Stage = "done"
)

// StageError is a fatal failure of one stage
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
