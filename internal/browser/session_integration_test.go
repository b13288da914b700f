//go:build integration

package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/dom"
)

func findChrome(t *testing.T) {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("Chrome not installed")
}

const liveForm = `<!doctype html><html><head><title>Apply</title></head><body>
<form>
  <label for="first">First Name</label><input id="first" name="first_name">
  <label for="cover">Cover letter</label><textarea id="cover"></textarea>
</form>
<script>
setTimeout(() => {
  const i = document.createElement('input');
  i.name = 'late';
  document.forms[0].appendChild(i);
}, 200);
</script>
</body></html>`

func TestSession_SnapshotAndApply(t *testing.T) {
	findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(liveForm))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := Open(ctx, srv.URL, Config{Headless: true}, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	doc, err := s.Document(ctx)
	require.NoError(t, err)
	first := doc.ByID("first")
	require.NotNil(t, first)
	require.NotEmpty(t, first.AutofillID())

	require.NoError(t, s.Apply(ctx, dom.Fill{ElementID: first.AutofillID(), Kind: dom.FillValue, Value: "Jane"}))

	doc, err = s.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", doc.ByID("first").Value())

	select {
	case ev := <-s.Events():
		assert.Equal(t, EventMutation, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no mutation event for the late control")
	}

	err = s.Apply(ctx, dom.Fill{ElementID: "af-999", Kind: dom.FillValue, Value: "x"})
	assert.Error(t, err)
}
