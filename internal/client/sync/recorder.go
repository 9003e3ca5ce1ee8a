package sync

import (
	"time"

	"github.com/iudanet/fieldkeeper/internal/models"
)

// Recorder receives drain metrics.
type Recorder interface {
	ActionCompleted(kind models.Kind)
	ActionRetried(kind models.Kind)
	ActionFailed(kind models.Kind)
	DrainFinished(duration time.Duration, pending int)
	DataVersion(version int64)
}

type nopRecorder struct{}

func (nopRecorder) ActionCompleted(models.Kind)      {}
func (nopRecorder) ActionRetried(models.Kind)        {}
func (nopRecorder) ActionFailed(models.Kind)         {}
func (nopRecorder) DrainFinished(time.Duration, int) {}
func (nopRecorder) DataVersion(int64)                {}
