package entity

import "time"

type CourseEmbedding struct {
	Key        string
	Model      string
	SkillsText string
	Embedding  []float32
	CreatedAt  time.Time
}
