package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>ynet - חדשות</title>
	<link>https://www.ynet.co.il</link>
	<description>Test Description</description>
	<language>he-IL</language>
	<item>
		<title>Test Article 1</title>
		<link>https://www.ynet.co.il/news/article/abc</link>
		<description><![CDATA[<div><img src="https://img/1.jpg"/>Short &amp; sweet</div>]]></description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>abc</guid>
	</item>
	<item>
		<title>  Test Article 2  </title>
		<link>https://www.ynet.co.il/news/article/def</link>
	</item>
</channel>
</rss>`

	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "newsdigest-test")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "newsdigest-test", gotUA)
	assert.NotEmpty(t, gotLang)

	assert.Equal(t, "ynet - חדשות", feed.Title)
	assert.Equal(t, "Test Description", feed.Description)
	assert.Equal(t, "https://www.ynet.co.il", feed.Link)
	assert.Equal(t, "he", feed.Language)

	require.Len(t, feed.Items, 2)

	item1 := feed.Items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "https://www.ynet.co.il/news/article/abc", item1.Link)
	assert.Equal(t, "Short & sweet", item1.Description)
	assert.Equal(t, "abc", item1.GUID)
	assert.False(t, item1.Published.IsZero())

	item2 := feed.Items[1]
	assert.Equal(t, "Test Article 2", item2.Title)
	assert.Empty(t, item2.GUID, "missing guid is not synthesized")
	assert.Equal(t, "https://www.ynet.co.il/news/article/def", item2.Link)
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="en">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<subtitle>Test Subtitle</subtitle>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "test")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", feed.Title)
	assert.Equal(t, "Test Subtitle", feed.Description)

	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "Atom Entry 1", item.Title)
	assert.Equal(t, "http://example.com/entry1", item.Link)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", item.GUID)
	assert.Equal(t, "Entry 1 summary", item.Description)
	assert.False(t, item.Published.IsZero())
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "test")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "test")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		parser := NewParser(100*time.Millisecond, "test")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("invalid URL", func(t *testing.T) {
		parser := NewParser(5*time.Second, "test")
		_, err := parser.Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}

func TestNormalizeLanguage(t *testing.T) {
	tbl := map[string]string{"he-IL": "he", "EN_us": "en", "he": "he", "": "", " ar ": "ar"}
	for in, want := range tbl {
		assert.Equal(t, want, normalizeLanguage(in), in)
	}
}
