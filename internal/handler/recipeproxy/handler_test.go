package recipeproxy

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/platefeed/server/internal/spoonacular"
)

func newHandler(t *testing.T, upstream http.HandlerFunc) *Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return NewHandler(spoonacular.NewClient(srv.URL, "secret-key", spoonacular.WithRetryInterval(time.Millisecond)))
}

func TestRandomSuccess(t *testing.T) {
	var gotNumber string
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotNumber = r.URL.Query().Get("number")
		_, _ = w.Write([]byte(`{"recipes":[{"id":1}]}`))
	})

	w := httptest.NewRecorder()
	h.Random(w, httptest.NewRequest(http.MethodGet, "/recipesRandom?number=999", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotNumber != "20" {
		t.Errorf("upstream number = %q, want clamped %q", gotNumber, "20")
	}
	if body := w.Body.String(); !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"recipes":[{"id":1}]`) {
		t.Errorf("body = %s, want success envelope with recipes", body)
	}
}

func TestRandomMethodNotAllowed(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for a POST")
	})

	w := httptest.NewRecorder()
	h.Random(w, httptest.NewRequest(http.MethodPost, "/recipesRandom", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
	if allow := w.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q, want %q", allow, http.MethodGet)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called without a query")
	})

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/recipesSearch?number=3", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); !strings.Contains(body, `"query parameter is required"`) {
		t.Errorf("body = %s, want query-required error", body)
	}
}

func TestSearchUpstreamFailureUniform(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"bad key secret-key"}`))
	})

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/recipesSearch?query=pasta", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want uniform %d regardless of upstream status", w.Code, http.StatusInternalServerError)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"success":false`) {
		t.Errorf("body = %s, want failure envelope", body)
	}
	if strings.Contains(body, "secret-key") {
		t.Errorf("body leaks the API key: %s", body)
	}
}

func TestSearchForwardsCuisines(t *testing.T) {
	var gotCuisine string
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotCuisine = r.URL.Query().Get("cuisine")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet,
		"/recipesSearch?query=pasta&cuisine=Italian,+Mexican,++,+Thai,French,Greek,Indian", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotCuisine != "Italian,Mexican,Thai,French,Greek" {
		t.Errorf("upstream cuisine = %q, want first 5 trimmed entries", gotCuisine)
	}
}

func TestInfoRejectsBadID(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an invalid id")
	})

	for _, raw := range []string{"", "-5", "abc"} {
		w := httptest.NewRecorder()
		h.Info(w, httptest.NewRequest(http.MethodGet, "/recipesInfo?recipeId="+raw, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("recipeId=%q: status = %d, want %d", raw, w.Code, http.StatusBadRequest)
		}
	}
}

func TestInfoSuccess(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":654959,"title":"Pasta"}`))
	})

	w := httptest.NewRecorder()
	h.Info(w, httptest.NewRequest(http.MethodGet, "/recipesInfo?recipeId=654959", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); !strings.Contains(body, `"recipe":{"id":654959,"title":"Pasta"}`) {
		t.Errorf("body = %s, want recipe passthrough", body)
	}
}
