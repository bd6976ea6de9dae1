package step

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"reposetup/internal/config"
	"reposetup/internal/labels"
)

// labelConcurrency bounds parallel label upserts. The set is small; this
// just keeps a slow API from serializing six round trips.
const labelConcurrency = 4

// LabelsStep upserts the fixed label set. Labels are independent, so
// upserts run concurrently and individual failures don't stop the rest.
type LabelsStep struct{}

func (s *LabelsStep) ID() string {
	return "labels"
}

func (s *LabelsStep) Title() string {
	return "Create issue labels"
}

func (s *LabelsStep) Run(ctx context.Context, api API, cfg *config.Config) Result {
	repo := cfg.Target.Owner + "/" + cfg.Target.Name
	if !cfg.Labels.Create {
		return SkippedResult(repo, s.ID(), "disabled by configuration")
	}

	set := labels.DefaultSet()

	var mu sync.Mutex
	var failures []string

	var g errgroup.Group
	g.SetLimit(labelConcurrency)
	for _, l := range set {
		g.Go(func() error {
			err := l.Validate()
			if err == nil {
				err = api.UpsertLabel(ctx, cfg.Target.Owner, cfg.Target.Name, l)
			}
			if err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", l.Name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		sort.Strings(failures)
		return FailedResult(repo, s.ID(), fmt.Sprintf("%d of %d labels failed: %s", len(failures), len(set), strings.Join(failures, "; ")))
	}
	return AppliedResultWithMessage(repo, s.ID(), fmt.Sprintf("%d labels", len(set)))
}
