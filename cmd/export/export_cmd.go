package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	eventbackend "github.com/iota-uz/boxoffice/modules/events/infrastructure/backend"
	eventservices "github.com/iota-uz/boxoffice/modules/events/services"
	orderbackend "github.com/iota-uz/boxoffice/modules/orders/infrastructure/backend"
	orderservices "github.com/iota-uz/boxoffice/modules/orders/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
)

var tenantSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

const exportPageSize = 100

type exportOptions struct {
	tenant  string
	baseURL string
	token   string
	out     string
	timeout time.Duration
}

// exporter walks every record of one kind and writes it to the workbook.
type exporter func(ctx context.Context, tenant string, wb *workbook) (int, error)

func bindFlags(cmd *cobra.Command, opts *exportOptions) {
	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "Tenant slug (required)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", os.Getenv("BACKEND_URL"), "Backend base URL (defaults to $BACKEND_URL)")
	cmd.Flags().StringVar(&opts.token, "token", os.Getenv("BACKEND_TOKEN"), "Backend API token (defaults to $BACKEND_TOKEN)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output .xlsx path (defaults to <tenant>-<kind>.xlsx)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Per request timeout")
}

func (o *exportOptions) validate(kind string) error {
	o.tenant = strings.TrimSpace(o.tenant)
	if o.tenant == "" {
		return withCode(exitUsage, fmt.Errorf("--tenant is required"))
	}
	if !tenantSlug.MatchString(o.tenant) {
		return withCode(exitUsage, fmt.Errorf("invalid --tenant %q", o.tenant))
	}
	if strings.TrimSpace(o.baseURL) == "" {
		return withCode(exitUsage, fmt.Errorf("--base-url is required"))
	}
	if strings.TrimSpace(o.token) == "" {
		return withCode(exitUsage, fmt.Errorf("--token is required"))
	}
	if o.out == "" {
		o.out = fmt.Sprintf("%s-%s.xlsx", o.tenant, kind)
	}
	if !strings.HasSuffix(strings.ToLower(o.out), ".xlsx") {
		return withCode(exitUsage, fmt.Errorf("--out must end in .xlsx"))
	}
	return nil
}

func newExportCmd(kind, short string, run exporter) *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return opts.validate(kind)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), kind, opts, run, cmd.OutOrStdout())
		},
	}
	bindFlags(cmd, &opts)
	return cmd
}

func newEventsCmd() *cobra.Command {
	return newExportCmd("events", "Export every event of a tenant", exportEvents)
}

func newOrdersCmd() *cobra.Command {
	return newExportCmd("orders", "Export every order of a tenant", exportOrders)
}

func runExport(ctx context.Context, kind string, opts exportOptions, run exporter, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	client, err := apiclient.New(apiclient.Options{
		BaseURL: opts.baseURL,
		Token:   opts.token,
		Timeout: opts.timeout,
		Logger:  logger,
	})
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid --base-url: %w", err))
	}
	ctx = composables.WithClient(ctx, client)

	wb := newWorkbook()
	defer func() { _ = wb.Close() }()

	rows, err := run(ctx, opts.tenant, wb)
	if err != nil {
		return backendError(err, opts.tenant)
	}
	if err := wb.SaveAs(opts.out); err != nil {
		return withCode(exitBackend, fmt.Errorf("write %s: %w", opts.out, err))
	}

	type exportSummary struct {
		Status string `json:"status"`
		Tenant string `json:"tenant"`
		Kind   string `json:"kind"`
		Rows   int    `json:"rows"`
		File   string `json:"file"`
	}
	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(exportSummary{Status: "exported", Tenant: opts.tenant, Kind: kind, Rows: rows, File: opts.out})
}

// backendError maps a failed backend walk onto an exit code. A tenant the
// backend does not know is a validation error; everything else is a backend
// failure.
func backendError(err error, tenant string) error {
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		return withCode(exitValidation, fmt.Errorf("unknown tenant %q: %w", tenant, err))
	case errors.Is(err, apiclient.ErrValidation):
		return withCode(exitValidation, err)
	default:
		return withCode(exitBackend, err)
	}
}

func exportEvents(ctx context.Context, tenant string, wb *workbook) (int, error) {
	svc := eventservices.NewEventService(eventbackend.NewEventRepository(), nil)
	sheet, err := wb.Sheet("Events", eventHeader)
	if err != nil {
		return 0, err
	}
	q := apiclient.PageQuery{PerPage: exportPageSize, Sort: "starts_at", Direction: "asc"}
	if err := svc.Each(ctx, tenant, q, func(e eventRow) error {
		return sheet.Append(eventCells(e))
	}); err != nil {
		return 0, err
	}
	return sheet.Rows(), sheet.Flush()
}

func exportOrders(ctx context.Context, tenant string, wb *workbook) (int, error) {
	svc := orderservices.NewOrderService(orderbackend.NewOrderRepository())
	sheet, err := wb.Sheet("Orders", orderHeader)
	if err != nil {
		return 0, err
	}
	q := apiclient.PageQuery{PerPage: exportPageSize, Sort: "created_at", Direction: "asc"}
	if err := svc.Each(ctx, tenant, q, func(o orderRow) error {
		return sheet.Append(orderCells(o))
	}); err != nil {
		return 0, err
	}
	return sheet.Rows(), sheet.Flush()
}
