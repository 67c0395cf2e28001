package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/form"
)

var Decoder = form.NewDecoder()

func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString(value),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func SetFlashMap[K comparable, V any](w http.ResponseWriter, name string, value map[K]V) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	SetFlash(w, name, b)
}
