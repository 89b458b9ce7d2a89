package profile

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/firestore"
)

type fakeJob struct {
	err error
}

func (j fakeJob) Results() (*firestore.WriteResult, error) {
	return nil, j.err
}

func TestAwaitJobsReportsWriteFailure(t *testing.T) {
	// Enqueueing a bulk write can succeed while the write itself fails;
	// deletion must not report success until every result is in.
	jobs := []deletionJob{
		fakeJob{},
		fakeJob{err: errors.New("contention on user doc")},
		fakeJob{},
	}

	err := awaitJobs(jobs)
	if err == nil {
		t.Fatal("awaitJobs() error = nil, want failure from unapplied write")
	}
	if !strings.Contains(err.Error(), "contention on user doc") {
		t.Errorf("awaitJobs() error = %v, want wrapped write failure", err)
	}
}

func TestAwaitJobsAllApplied(t *testing.T) {
	jobs := []deletionJob{fakeJob{}, fakeJob{}}
	if err := awaitJobs(jobs); err != nil {
		t.Errorf("awaitJobs() error = %v, want nil", err)
	}
}
