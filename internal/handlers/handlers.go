package handlers

import (
	"time"

	"thumbcard/internal/database"
	"thumbcard/internal/media"
	"thumbcard/internal/metadata"
)

type Handlers struct {
	db        *database.Database
	generator *media.Generator
	provider  metadata.Provider
	startTime time.Time
}

func New(db *database.Database, gen *media.Generator) *Handlers {
	return &Handlers{
		db:        db,
		generator: gen,
		provider:  gen.Provider(),
		startTime: time.Now(),
	}
}
