package availability

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/audit"
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CopyAvailabilityInput struct {
	SourceDate  string
	TargetDates []string
	Actor       string
}

type TargetStatus string

const (
	TargetCopied           TargetStatus = "copied"
	TargetFailed           TargetStatus = "failed"
	TargetSkippedSelf      TargetStatus = "skipped_self"
	TargetSkippedDuplicate TargetStatus = "skipped_duplicate"
)

type TargetResult struct {
	Date   domain.DateKey `json:"date"`
	Status TargetStatus   `json:"status"`
	Error  string         `json:"error,omitempty"`
}

const (
	CopyStatusOK             = "ok"
	CopyStatusPartialFailure = "partial_failure"
	CopyStatusFailed         = "failed"
)

// CopyResult reports every target in input order. Writes that succeeded
// stay applied even when others failed.
type CopyResult struct {
	SourceDate  domain.DateKey `json:"sourceDate"`
	CopiedCount int            `json:"copiedCount"`
	Results     []TargetResult `json:"results"`
	Failures    []TargetResult `json:"failures"`
}

func (r *CopyResult) PartialFailure() bool {
	return r.CopiedCount > 0 && len(r.Failures) > 0
}

func (r *CopyResult) Status() string {
	switch {
	case len(r.Failures) == 0:
		return CopyStatusOK
	case r.CopiedCount > 0:
		return CopyStatusPartialFailure
	default:
		return CopyStatusFailed
	}
}

// ======================================================
// USE CASE
// ======================================================

type CopyAvailability struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	log         *zap.Logger
	concurrency int
}

func NewCopyAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
	concurrency int,
) *CopyAvailability {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &CopyAvailability{
		repo:        repo,
		audit:       audit,
		log:         log,
		concurrency: concurrency,
	}
}

// Execute copies the source date's override onto every target. All input is
// validated before the first write.
func (uc *CopyAvailability) Execute(
	ctx context.Context,
	in CopyAvailabilityInput,
) (*CopyResult, error) {

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	if len(in.TargetDates) == 0 {
		return nil, fmt.Errorf("%w: targetDates must not be empty", domain.ErrInvalidInput)
	}

	source, err := domain.ParseDateKey(in.SourceDate)
	if err != nil {
		return nil, fmt.Errorf("sourceDate: %w", err)
	}

	targets := make([]domain.DateKey, len(in.TargetDates))
	for i, raw := range in.TargetDates {
		if targets[i], err = domain.ParseDateKey(raw); err != nil {
			return nil, fmt.Errorf("targetDates[%d]: %w", i, err)
		}
	}

	src, err := uc.repo.Get(ctx, source)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: source date %s has no availability configured", domain.ErrNotFound, source)
		}
		return nil, err
	}
	payload := src.Input()

	// --------------------------------------------------
	// Fan-out
	// --------------------------------------------------
	result := &CopyResult{
		SourceDate: source,
		Results:    make([]TargetResult, len(targets)),
		Failures:   []TargetResult{},
	}

	// issued writes run to completion even if the caller goes away
	writeCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(uc.concurrency)

	seen := make(map[string]bool, len(targets))
	for i, target := range targets {
		result.Results[i].Date = target

		switch {
		case target.Equal(source):
			result.Results[i].Status = TargetSkippedSelf
			continue
		case seen[target.String()]:
			result.Results[i].Status = TargetSkippedDuplicate
			continue
		}
		seen[target.String()] = true

		i, target := i, target
		g.Go(func() error {
			write := payload
			write.TimeSlots = slices.Clone(payload.TimeSlots)

			if _, err := uc.repo.Upsert(writeCtx, target, write); err != nil {
				uc.log.Warn("availability copy target failed",
					zap.String("source", source.String()),
					zap.String("target", target.String()),
					zap.Error(err),
				)
				result.Results[i].Status = TargetFailed
				result.Results[i].Error = err.Error()
				return nil
			}

			result.Results[i].Status = TargetCopied
			return nil
		})
	}

	// per-target errors are recorded in Results, never returned
	_ = g.Wait()

	for _, r := range result.Results {
		switch r.Status {
		case TargetCopied:
			result.CopiedCount++
		case TargetFailed:
			result.Failures = append(result.Failures, r)
		}
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	if result.CopiedCount > 0 {
		dispatch(uc.audit, audit.Event{
			Actor:     in.Actor,
			Action:    audit.ActionAvailabilityCopied,
			EntityKey: source.String(),
			Metadata: map[string]any{
				"copied": result.CopiedCount,
				"failed": len(result.Failures),
				"status": result.Status(),
			},
		})
	}

	return result, nil
}
