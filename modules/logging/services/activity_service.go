package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

type ActivityService struct {
	repo   activity.Repository
	logger *logrus.Logger
	now    func() time.Time
}

func NewActivityService(repo activity.Repository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger, now: time.Now}
}

// Record stores entry and writes it to the application log.
func (s *ActivityService) Record(ctx context.Context, entry *activity.Entry) error {
	if entry == nil {
		return errors.New("activity entry is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return errors.Wrap(err, "record activity")
	}
	if s.logger != nil {
		fields := logrus.Fields{
			"kind":    entry.Kind,
			"tenant":  entry.Tenant,
			"actor":   entry.Actor,
			"subject": entry.Subject,
		}
		if entry.Method != "" {
			fields["method"] = entry.Method
			fields["path"] = entry.Path
			fields["status"] = entry.Status
		}
		if len(entry.Diff) > 0 {
			fields["diff"] = string(entry.Diff)
		}
		s.logger.WithFields(fields).Info(entry.Summary)
	}
	return nil
}

// GetPaginated lists the tenant's entries, newest first unless q asks for
// created_at ascending.
func (s *ActivityService) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[activity.Entry], error) {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	params := &activity.FindParams{
		Tenant:    tenant,
		Ascending: q.Sort == "created_at" && q.Direction == "asc",
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return datatable.Page[activity.Entry]{}, errors.Wrap(err, "count activity")
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	// Old entries leave the ring, so a remembered page may no longer exist.
	if page > lastPage {
		page = lastPage
	}
	params.Limit = perPage
	params.Offset = (page - 1) * perPage
	entries, err := s.repo.List(ctx, params)
	if err != nil {
		return datatable.Page[activity.Entry]{}, errors.Wrap(err, "list activity")
	}
	items := make([]activity.Entry, 0, len(entries))
	for _, e := range entries {
		items = append(items, *e)
	}
	return datatable.Page[activity.Entry]{
		Items:       items,
		CurrentPage: page,
		LastPage:    lastPage,
		PageSize:    perPage,
		TotalCount:  int(total),
	}, nil
}

// Diff compares two snapshots and returns the JSON patch between them with
// a "field: old → new" summary of every changed field.
func Diff(before, after map[string]string) (json.RawMessage, string, error) {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, "", errors.Wrap(err, "diff")
	}
	if len(patch) == 0 {
		return nil, "", nil
	}
	parts := make([]string, 0, len(patch))
	for _, op := range patch {
		field := strings.TrimPrefix(op.Path, "/")
		parts = append(parts, field+": "+before[field]+" → "+after[field])
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, "", errors.Wrap(err, "encode diff")
	}
	return raw, strings.Join(parts, ", "), nil
}
