package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
)

func newService(t *testing.T) (*ActivityService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	svc := NewActivityService(persistence.NewActivityRepository(10), logger)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, &buf
}

func TestActivityService_RecordLogsEntry(t *testing.T) {
	svc, buf := newService(t)

	entry := &activity.Entry{Kind: activity.KindChange, Tenant: "acme", Actor: "ann@example.com", Subject: "event 7", Summary: "venue: Hall → Garden"}
	require.NoError(t, svc.Record(context.Background(), entry))
	require.NotZero(t, entry.ID)
	require.Equal(t, 2026, entry.CreatedAt.Year())

	var logged map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logged))
	require.Equal(t, "venue: Hall → Garden", logged["msg"])
	require.Equal(t, "acme", logged["tenant"])
	require.Equal(t, "change", logged["kind"])

	require.Error(t, svc.Record(context.Background(), nil))
}

func TestActivityService_GetPaginated(t *testing.T) {
	svc, _ := newService(t)
	for _, s := range []string{"one", "two", "three"} {
		require.NoError(t, svc.Record(context.Background(), &activity.Entry{Tenant: "acme", Summary: s}))
	}
	require.NoError(t, svc.Record(context.Background(), &activity.Entry{Tenant: "globex", Summary: "elsewhere"}))

	page, err := svc.GetPaginated(context.Background(), "acme", apiclient.PageQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page.LastPage)
	require.Equal(t, 3, page.TotalCount)
	require.Equal(t, "three", page.Items[0].Summary)
	require.NoError(t, page.Validate())

	page, err = svc.GetPaginated(context.Background(), "acme", apiclient.PageQuery{Page: 1, PerPage: 2, Sort: "created_at", Direction: "asc"})
	require.NoError(t, err)
	require.Equal(t, "one", page.Items[0].Summary)

	page, err = svc.GetPaginated(context.Background(), "initech", apiclient.PageQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.LastPage)
}

func TestDiff(t *testing.T) {
	raw, summary, err := Diff(
		map[string]string{"name": "Gala", "venue": "Hall"},
		map[string]string{"name": "Gala", "venue": "Garden"},
	)
	require.NoError(t, err)
	require.Equal(t, "venue: Hall → Garden", summary)
	require.JSONEq(t, `[{"op":"replace","path":"/venue","value":"Garden"}]`, string(raw))

	raw, summary, err = Diff(map[string]string{"name": "Gala"}, map[string]string{"name": "Gala"})
	require.NoError(t, err)
	require.Nil(t, raw)
	require.Empty(t, summary)
}
