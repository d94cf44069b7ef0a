package bot

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	name, body, err := f.Fetch(context.Background(), srv.URL+"/media/Axe_firstblood_01.mp3")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "Axe_firstblood_01.mp3", name)
	assert.Equal(t, "mp3-bytes", string(data))

	_, _, err = f.Fetch(context.Background(), srv.URL+"/missing.mp3")
	assert.ErrorContains(t, err, "status 404")

	_, _, err = f.Fetch(context.Background(), "file:///etc/passwd")
	assert.ErrorContains(t, err, "unsupported reference")

	name, body, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	body.Close()
	assert.Equal(t, "response.mp3", name)
}
