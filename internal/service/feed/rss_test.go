package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BulletCatalyst/pkg/logger"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item>
  <title>Nvidia &amp; AMD rally on AI demand</title>
  <link>https://www.example.com/nvda-amd</link>
  <description>&lt;p&gt;Chipmakers   extend gains.&lt;/p&gt;</description>
</item>
<item>
  <title>Markets close mixed</title>
  <description>&lt;a href="https://news.example.org/close"&gt;Read more&lt;/a&gt;</description>
</item>
<item>
  <title></title>
  <description></description>
</item>
</channel></rss>`

func TestFetchNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient([]string{srv.URL}, logger.Nop(), WithUserAgent("test-agent"))
	docs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Nvidia & AMD rally on AI demand", docs[0].Title)
	assert.Equal(t, "Chipmakers extend gains.", docs[0].Snippet)
	assert.Equal(t, "example.com", docs[0].Source)

	// Link recovered from the description's first href.
	assert.Equal(t, "https://news.example.org/close", docs[1].URL)
	assert.Equal(t, "news.example.org", docs[1].Source)
}

func TestFetchSkipsBrokenFeed(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()

	c := NewClient([]string{broken.URL, good.URL}, logger.Nop())
	docs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestFetchMaxPerFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient([]string{srv.URL}, logger.Nop(), WithMaxPerFeed(1))
	docs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFetchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient([]string{"http://127.0.0.1:0/feed"}, logger.Nop())
	_, err := c.Fetch(ctx)
	assert.Error(t, err)
}
