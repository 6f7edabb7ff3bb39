package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"stayhub-backend/internal/aiclient"
	"stayhub-backend/pkg/logger"
)

// Syncer mirrors source-tree TODO comments into the issue tracker.
// Issues it created are recognized by the source label; issues filed
// by hand are never touched.
type Syncer struct {
	client *Client
	labels *LabelCache
	ai     *aiclient.Client
	log    zerolog.Logger
}

// Result summarizes one sync run
type Result struct {
	Scanned  int
	Created  int
	Updated  int
	Skipped  int
	Resolved int
}

func NewSyncer(client *Client, ai *aiclient.Client) *Syncer {
	return &Syncer{
		client: client,
		labels: NewLabelCache(client),
		ai:     ai,
		log:    logger.With("tracker.sync"),
	}
}

// Run executes one full sync: scan, warm the label cache, reconcile
// each TODO against the tracker, then resolve issues whose TODO is gone.
func (s *Syncer) Run(ctx context.Context, root string, dryRun bool) (*Result, error) {
	items, err := NewScanner(root).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result := &Result{Scanned: len(items)}
	s.log.Info().Int("todos", len(items)).Str("root", root).Msg("Scan complete")

	if err := s.labels.Warmup(ctx); err != nil {
		return nil, fmt.Errorf("label warmup failed: %w", err)
	}

	analyses, err := AnalyzeBatch(ctx, s.ai, items)
	if err != nil {
		// Analysis is enrichment, not a gate
		s.log.Warn().Err(err).Msg("Batch analysis failed, syncing without it")
	}

	existing, err := s.client.ListIssues(ctx, SourceLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to list synced issues: %w", err)
	}
	byTitle := make(map[string]Issue, len(existing))
	for _, issue := range existing {
		byTitle[issue.Title] = issue
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item.Title] = true

		if err := s.reconcile(ctx, item, byTitle, analyses, dryRun, result); err != nil {
			return nil, err
		}
	}

	// TODOs that disappeared from the tree close their issues
	for title, issue := range byTitle {
		if seen[title] || issue.State == "closed" {
			continue
		}
		result.Resolved++
		if dryRun {
			continue
		}
		issue.State = "closed"
		if _, err := s.client.UpdateIssue(ctx, issue); err != nil {
			return nil, fmt.Errorf("failed to close issue %q: %w", title, err)
		}
	}

	s.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("resolved", result.Resolved).
		Msg("Sync complete")
	return result, nil
}

func (s *Syncer) reconcile(ctx context.Context, item TodoItem, byTitle map[string]Issue, analyses map[string]Analysis, dryRun bool, result *Result) error {
	labels := LabelsFor(item)
	generated := BuildDescription(item)
	if analysis, ok := analyses[item.Title]; ok {
		generated += fmt.Sprintf("\n**Triage:** priority %s, effort %s\n\n%s\n", analysis.Priority, analysis.Effort, analysis.Summary)
	}

	existing, ok := byTitle[item.Title]
	if !ok {
		result.Created++
		if dryRun {
			return nil
		}

		if err := s.labels.EnsureAll(ctx, labels); err != nil {
			return err
		}
		// Seed an empty notes section so users have somewhere to write
		_, err := s.client.CreateIssue(ctx, Issue{
			Title:       item.Title,
			Description: MergeDescription(generated, DevNotesMarker+"\n"),
			Labels:      labels,
			State:       "open",
		})
		if err != nil {
			return fmt.Errorf("failed to create issue %q: %w", item.Title, err)
		}
		return nil
	}

	oldGenerated, notes := SplitDevNotes(existing.Description)
	merged := MergeDescription(generated, notes)

	if !changed(existing, labels, oldGenerated, generated) {
		result.Skipped++
		return nil
	}

	result.Updated++
	if dryRun {
		return nil
	}

	if err := s.labels.EnsureAll(ctx, labels); err != nil {
		return err
	}
	existing.Labels = labels
	existing.Description = merged
	existing.State = "open"
	if _, err := s.client.UpdateIssue(ctx, existing); err != nil {
		return fmt.Errorf("failed to update issue %q: %w", item.Title, err)
	}
	return nil
}

// changed compares label sets and the generated half of the
// description, ignoring trailing whitespace drift
func changed(existing Issue, labels []string, oldGenerated, newGenerated string) bool {
	if strings.TrimSpace(oldGenerated) != strings.TrimSpace(newGenerated) {
		return true
	}
	if existing.State == "closed" {
		return true
	}

	oldLabels := append([]string(nil), existing.Labels...)
	sort.Strings(oldLabels)
	if len(oldLabels) != len(labels) {
		return true
	}
	for i := range labels {
		if oldLabels[i] != labels[i] {
			return true
		}
	}
	return false
}
