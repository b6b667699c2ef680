package audit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	auditDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/events"
)

const topActorsLimit = 10

type RepositoryAPI interface {
	Create(ctx context.Context, entry *auditDatamodel.Entry) error
	List(ctx context.Context, filter ListFilter) ([]*auditDatamodel.Entry, error)
	ActorActivity(ctx context.Context, limit int) ([]ActorActivity, error)
}

type Service struct {
	repo      RepositoryAPI
	logger    *slog.Logger
	listLimit int
}

func NewService(repo RepositoryAPI, listLimit int, logger *slog.Logger) *Service {
	if listLimit <= 0 {
		listLimit = 200
	}
	return &Service{
		repo:      repo,
		logger:    logger,
		listLimit: listLimit,
	}
}

// Register subscribes the service to mutation events so every recorded mutation is persisted.
func (s *Service) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeEntityMutated, s.HandleMutation)
}

func (s *Service) HandleMutation(ctx context.Context, event events.Event) error {
	mutation, ok := event.(*events.MutationEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	details, err := json.Marshal(mutation.Details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	entry := &auditDatamodel.Entry{
		ID:        mutation.EventID(),
		Timestamp: mutation.OccurredAt(),
		Actor:     mutation.Actor,
		Action:    mutation.Action,
		Entity:    mutation.Entity,
		EntityID:  mutation.EntityID,
		Details:   string(details),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return internal.NewStoreError("failed to store audit entry", err)
	}
	return nil
}

func (s *Service) normalize(filter ListFilter) (ListFilter, error) {
	if filter.Entity != "" && !ValidEntity(filter.Entity) {
		return filter, internal.NewValidationFieldError("entity", "entity must be one of: Employee, Site, Assignment, Timesheet", internal.ErrCodeValidationFailed)
	}
	if filter.Action != "" && !ValidAction(filter.Action) {
		return filter, internal.NewValidationFieldError("action", "action must be one of: create, update, delete", internal.ErrCodeValidationFailed)
	}
	if filter.Limit <= 0 || filter.Limit > s.listLimit {
		filter.Limit = s.listLimit
	}
	return filter, nil
}

// List returns entries newest first, capped at the configured limit.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	filter, err := s.normalize(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		return nil, internal.NewStoreError("failed to list audit entries", err)
	}

	entries := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, FromDataModel(row))
	}
	return entries, nil
}

func (s *Service) Stats(ctx context.Context, filter ListFilter) (*Stats, error) {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total: len(entries),
		ByAction: map[string]int{
			string(ActionCreate): 0,
			string(ActionUpdate): 0,
			string(ActionDelete): 0,
		},
	}
	actors := make(map[string]struct{})
	for _, e := range entries {
		stats.ByAction[e.Action]++
		actors[e.Actor] = struct{}{}
	}
	stats.DistinctActors = len(actors)

	top, err := s.repo.ActorActivity(ctx, topActorsLimit)
	if err != nil {
		s.logger.Error("failed to load actor activity", "error", err)
		return nil, internal.NewStoreError("failed to load actor activity", err)
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	stats.TopActors = top

	return stats, nil
}

// ExportCSV writes the filtered entries as CSV.
func (s *Service) ExportCSV(ctx context.Context, filter ListFilter, w io.Writer) error {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "Actor", "Action", "Entity", "EntityID", "Details"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Actor,
			e.Action,
			e.Entity,
			e.EntityID,
			string(e.Details),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
