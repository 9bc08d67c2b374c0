package models

import (
	"errors"
	"time"
)

// GenerationJob records one accepted generation request and the video it
// produced. Implements [Model].
type GenerationJob struct {
	id        string
	sequence  int
	filterID  string
	model     string
	prompt    string
	videoPath string
	createdAt time.Time
	updatedAt time.Time
}

// NewGenerationJob creates an unsaved job. The repository assigns the ID and
// sequence on Create.
func NewGenerationJob(filterID, model, prompt, videoPath string) *GenerationJob {
	now := time.Now()
	return &GenerationJob{
		filterID:  filterID,
		model:     model,
		prompt:    prompt,
		videoPath: videoPath,
		createdAt: now,
		updatedAt: now,
	}
}

func (j *GenerationJob) ID() string           { return j.id }
func (j *GenerationJob) Sequence() int        { return j.sequence }
func (j *GenerationJob) FilterID() string     { return j.filterID }
func (j *GenerationJob) Model() string        { return j.model }
func (j *GenerationJob) Prompt() string       { return j.prompt }
func (j *GenerationJob) VideoPath() string    { return j.videoPath }
func (j *GenerationJob) CreatedAt() time.Time { return j.createdAt }
func (j *GenerationJob) UpdatedAt() time.Time { return j.updatedAt }

func (j *GenerationJob) SetID(id string)           { j.id = id }
func (j *GenerationJob) SetSequence(sequence int)  { j.sequence = sequence }
func (j *GenerationJob) SetVideoPath(path string)  { j.videoPath = path }
func (j *GenerationJob) SetUpdatedAt(t time.Time)  { j.updatedAt = t }
func (j *GenerationJob) SetTimestamps(t time.Time) { j.createdAt, j.updatedAt = t, t }

// Validate checks the job's data before persistence.
func (j *GenerationJob) Validate() error {
	if j.id == "" {
		return errors.New("job id is required")
	}
	if j.model == "" {
		return errors.New("job model is required")
	}
	if j.videoPath == "" {
		return errors.New("job video path is required")
	}
	return nil
}
