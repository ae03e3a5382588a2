// Package services implements the application operations on top of a storage.Repository.
package services

import (
	"errors"
	"time"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/storage"
	"github.com/julianstephens/quickhire/internal/utils"
)

// ErrNotFound is returned when the addressed record does not exist.
var ErrNotFound = storage.ErrNotFound

// ErrPartialSave reports that a multi-row save on a repository without
// transactions failed and removing the rows already written also failed.
var ErrPartialSave = errors.New("plan partially saved")

type clock func() time.Time

func (c clock) stamp() string {
	return utils.Timestamp(c())
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return constants.DefaultListLimit
	}
	return n
}

// Services bundles every service over a single repository.
type Services struct {
	Plans       *PlanService
	Experiences *ExperienceService
	Jobs        *JobService
	Events      *EventService
}

func New(repo storage.Repository) *Services {
	return &Services{
		Plans:       NewPlanService(repo),
		Experiences: NewExperienceService(repo),
		Jobs:        NewJobService(repo),
		Events:      NewEventService(repo),
	}
}
