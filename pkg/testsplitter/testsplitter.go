// Package testsplitter distributes a test plan over parallel job slots.
package testsplitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/ansible-network/github-actions/pkg/taskheap"
)

type testSplitter struct {
	logger    lumber.Logger
	totalJobs int
}

// NewTestSplitter returns a TestSplitter spreading targets over totalJobs slots.
func NewTestSplitter(totalJobs int, logger lumber.Logger) core.TestSplitter {
	return &testSplitter{logger: logger, totalJobs: totalJobs}
}

// Split allocates targets, longest first, to the least loaded of n slots.
// Ties go to the lowest slot index.
func Split(targets []*core.Target, n int) ([]taskheap.Slot, error) {
	if n < 1 {
		return nil, errs.ErrInvalidJobCount
	}
	sorted := make([]*core.Target, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExecutionTime > sorted[j].ExecutionTime
	})

	slotHeap := taskheap.New(n)
	for _, t := range sorted {
		slotHeap.UpdateHead(t.ExecutionTime, t.Name)
	}
	return slotHeap.Slots(), nil
}

func (s *testSplitter) Batches(collectionName string, plan []*core.Target) ([]core.Batch, error) {
	slots, err := Split(plan, s.totalJobs)
	if err != nil {
		return nil, err
	}
	batches := make([]core.Batch, 0, len(slots))
	for _, slot := range slots {
		if len(slot.Targets) == 0 {
			continue
		}
		batches = append(batches, core.Batch{
			Slot:    fmt.Sprintf("%s-%d", collectionName, len(batches)+1),
			Targets: slot.Targets,
			Total:   slot.Total,
		})
	}
	s.logger.Debugf("%s: %d targets split into %d batches", collectionName, len(plan), len(batches))
	return batches, nil
}

// Render formats batches as slot:t1,t2;slot2:t3.
func Render(batches []core.Batch) string {
	parts := make([]string, 0, len(batches))
	for _, b := range batches {
		parts = append(parts, b.Slot+constants.SlotTargetsDelimiter+strings.Join(b.Targets, constants.TargetsDelimiter))
	}
	return strings.Join(parts, constants.SlotDelimiter)
}
