package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "ClaimsTriageAgent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>report</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.ContentType, "text/html")
	assert.Contains(t, result.HTML, "report")
}

func TestURLInvalid(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative/path"} {
		_, err := URL(context.Background(), bad, nil)
		require.Error(t, err, "url %q", bad)

		var fetchErr *Error
		require.True(t, errors.As(err, &fetchErr))
		assert.Contains(t, fetchErr.Message, "invalid URL")
	}
}

func TestURLNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestExtractMainText(t *testing.T) {
	html := `<html><body>
		<header>site header</header>
		<nav>navigation</nav>
		<script>var x = 1;</script>
		<main>
			<h1>Attending Physician Statement</h1>
			<p>Patient:    Jane   Doe</p>
		</main>
		<footer>legal footer</footer>
	</body></html>`

	text, err := ExtractMainText(html, DocumentSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Attending Physician Statement")
	assert.Contains(t, text, "Patient: Jane Doe")
	assert.NotContains(t, text, "navigation")
	assert.NotContains(t, text, "site header")
	assert.NotContains(t, text, "legal footer")
	assert.NotContains(t, text, "var x")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>bare document</p></body></html>", DocumentSelectors())
	require.NoError(t, err)
	assert.Equal(t, "bare document", text)
}
