package entity

import (
	"time"
)

type GroupClassification struct {
	GroupId     string
	Name        string
	Category    string
	Skills      []string
	Similarity  float64
	LastUpdated time.Time
}

type UserClassification struct {
	UserId      string
	Keywords    []string
	Category    string
	Skills      []string
	Similarity  float64
	LastUpdated time.Time
}
