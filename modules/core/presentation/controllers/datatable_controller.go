package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/components/tables"
	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/htmx"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// DataTableController serves the pager and sort buttons of every table
// mounted in the browser session.
type DataTableController struct {
	app application.Application
}

func NewDataTableController(app application.Application) application.Controller {
	return &DataTableController{app: app}
}

func (c *DataTableController) Key() string {
	return "/tables"
}

func (c *DataTableController) Register(r *mux.Router) {
	router := r.PathPrefix("/tables/{table}").Subrouter()
	router.Use(middleware.PublicPage(c.app, configuration.Use())...)
	router.HandleFunc("/next", c.Next).Methods(http.MethodPost)
	router.HandleFunc("/previous", c.Previous).Methods(http.MethodPost)
	router.HandleFunc("/sort", c.Sort).Methods(http.MethodPost)
}

type tableAction func(h datatable.Handle, r *http.Request) error

func (c *DataTableController) serve(w http.ResponseWriter, r *http.Request, action tableAction) {
	logger := composables.TryUseLogger(r.Context())
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id := mux.Vars(r)["table"]
	h, ok := sess.Tables.Get(id)
	if !ok {
		// The session expired or the page was never rendered for it.
		logger.WithField("table", id).Info("action on a table that is not mounted")
		htmx.Refresh(w)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	loc := datatable.NewQueryLocation(htmx.CurrentURL(r))
	h.Bind(loc)
	if err := action(h, r); err != nil {
		if !errors.Is(err, datatable.ErrControlDisabled) {
			logger.WithError(err).WithField("table", id).Warn("table action rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.WithField("table", id).Debug("ignored action on a disabled control")
	}
	tables.Respond(w, r, sess, h, loc)
}

func (c *DataTableController) Next(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(h datatable.Handle, r *http.Request) error {
		return h.Next(r.Context())
	})
}

func (c *DataTableController) Previous(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(h datatable.Handle, r *http.Request) error {
		return h.Previous(r.Context())
	})
}

func (c *DataTableController) Sort(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(h datatable.Handle, r *http.Request) error {
		dto, err := composables.UseForm(&dtos.SortDTO{}, r)
		if err != nil {
			return err
		}
		if err := constants.Validate.Struct(dto); err != nil {
			return errors.Wrap(err, "sort column")
		}
		return h.SortBy(r.Context(), dto.Column)
	})
}
