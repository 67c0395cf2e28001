package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/core"
	"github.com/iota-uz/boxoffice/modules/logging"
	"github.com/iota-uz/boxoffice/pkg/itf"
	"github.com/iota-uz/boxoffice/pkg/session"
)

func signInBackend(b *itf.Backend, identity *session.Identity) {
	b.Router.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)
	b.Router.HandleFunc("/api/user", func(w http.ResponseWriter, _ *http.Request) {
		itf.WriteJSON(w, http.StatusOK, identity)
	}).Methods(http.MethodGet)
}

func TestActivityController_ShowsSignIns(t *testing.T) {
	b := itf.NewBackend(t)
	signInBackend(b, itf.User("acme"))
	suite := itf.NewSuite(t, b, core.NewModule(), logging.NewModule()).Anonymous()

	suite.POST("/login").
		Form(url.Values{"Email": {"ann@example.com"}, "Password": {"secret"}}).
		Expect().
		Status(http.StatusFound)

	doc := suite.GET("/t/acme/activity").Expect().Status(http.StatusOK).HTML()
	rows := doc.Find("#datatable-activity tbody tr")
	require.Equal(t, 1, rows.Length())
	require.Equal(t, "Sign in", doc.Texts("#datatable-activity tbody td:nth-child(2)")[0])
	require.Equal(t, "ann@example.com", doc.Texts("#datatable-activity tbody td:nth-child(3)")[0])
	require.Equal(t, "none", doc.Attr(`//button[@data-column="created_at"]`, "data-sort"))
}

func TestActivityController_ScopedToTenant(t *testing.T) {
	b := itf.NewBackend(t)
	signInBackend(b, itf.User("acme"))
	suite := itf.NewSuite(t, b, core.NewModule(), logging.NewModule())

	suite.Anonymous().POST("/login").
		Form(url.Values{"Email": {"ann@example.com"}, "Password": {"secret"}}).
		Expect().
		Status(http.StatusFound)

	doc := suite.AsUser(itf.User("globex")).GET("/t/globex/activity").Expect().Status(http.StatusOK).HTML()
	require.NotEmpty(t, doc.Find(`#datatable-activity [data-role="empty"]`).Nodes)
}
