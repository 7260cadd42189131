package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
)

const ynetPage = `<!DOCTYPE html>
<html lang="he"><head>
<title>כותרת המסמך | ynet</title>
<meta property="og:title" content="כותרת og">
<meta property="og:image" content="https://images.ynet.co.il/og.jpg">
<meta name="description" content="תקציר הכתבה">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"NewsArticle",
 "headline":"ראש הממשלה נפגש עם נשיא ארה\"ב","author":{"@type":"Person","name":"איתמר אייכנר"}}</script>
<script type="application/ld+json">{"@type":"BreadcrumbList","itemListElement":[
 {"@type":"ListItem","position":1,"name":"ynet"},{"@type":"ListItem","position":2,"name":"חדשות"},
 {"@type":"ListItem","position":3,"name":"מדיני"}]}</script>
</head><body>
<h1>כותרת h1</h1>
<div class="subTitle">תת כותרת</div>
<div id="ArticleBodyComponent"><p>פסקה ראשונה</p><p>  </p><p>פסקה שנייה</p></div>
<div class="imageCredit">צילום: רויטרס</div>
<p>פוטר</p>
</body></html>`

func TestDispatcher_ExtractYnet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(ynetPage))
	}))
	defer ts.Close()

	d := NewDefaultDispatcher(NewFetcher(5*time.Second, "test"))
	res, err := d.Extract(context.Background(), "ynet", ts.URL+"/news/article/abc")
	require.NoError(t, err)

	assert.Equal(t, `ראש הממשלה נפגש עם נשיא ארה"ב`, res.Title)
	assert.Equal(t, "תקציר הכתבה", res.Subtitle)
	assert.Equal(t, "פסקה ראשונה\n\nפסקה שנייה", res.Content)
	assert.Equal(t, "איתמר אייכנר", res.Author)
	require.NotNil(t, res.Image)
	assert.Equal(t, "https://images.ynet.co.il/og.jpg", res.Image.URL)
	assert.Equal(t, "רויטרס", res.Image.Credit)
	assert.Equal(t, []string{"חדשות", "מדיני"}, res.Categories)
}

func TestDispatcher_UnsupportedProvider(t *testing.T) {
	d := NewDispatcher(NewYnet(NewFetcher(time.Second, "test")))
	_, err := d.Extract(context.Background(), "bbc", "https://bbc.co.uk/news/1")
	require.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	assert.True(t, d.Supports("ynet"))
	assert.False(t, d.Supports("bbc"))
}

func TestDispatcher_Providers(t *testing.T) {
	d := NewDefaultDispatcher(NewFetcher(time.Second, ""))
	assert.Equal(t, []string{"calcalist", "generic", "globes", "haaretz", "maariv", "walla", "ynet"}, d.Providers())
}

func TestDispatcher_FetchErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	d := NewDefaultDispatcher(NewFetcher(5*time.Second, "test"))

	_, err := d.Extract(context.Background(), "walla", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 503")

	assert.NotErrorIs(t, err, domain.ErrPageGone, "server errors are transient")

	for _, code := range []int{http.StatusNotFound, http.StatusGone} {
		gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) }))
		_, err = d.Extract(context.Background(), "walla", gone.URL)
		gone.Close()
		require.ErrorIs(t, err, domain.ErrPageGone, "status %d", code)
	}

	_, err = d.Extract(context.Background(), "walla", "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestFetcher_DecodesCharset(t *testing.T) {
	// "שלום" in windows-1255
	title := []byte{0xF9, 0xEC, 0xE5, 0xED}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1255")
		_, _ = w.Write(append(append([]byte("<html><head><title>"), title...), []byte("</title></head></html>")...))
	}))
	defer ts.Close()

	p, err := NewFetcher(5*time.Second, "test").Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "שלום", titleChain(p))
}

func TestFetcher_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(5*time.Second, "test").Fetch(ctx, ts.URL)
	require.Error(t, err)
}

func TestCalcalist_DropsTitleCrumb(t *testing.T) {
	page := mustPage(t, `<head><script type="application/ld+json">[
		{"@type":"NewsArticle","headline":"הבורסה זינקה"},
		{"@type":"BreadcrumbList","itemListElement":[
			{"position":1,"name":"כלכליסט"},{"position":2,"name":"שוק ההון"},{"position":3,"name":"הבורסה זינקה"}]}]
		</script></head>`)

	res, err := NewCalcalist(nil).ExtractFields(page)
	require.NoError(t, err)
	assert.Equal(t, []string{"שוק ההון"}, res.Categories)

	// other providers keep the crumb
	res, err = NewYnet(nil).ExtractFields(page)
	require.NoError(t, err)
	assert.Equal(t, []string{"כלכליסט", "שוק ההון", "הבורסה זינקה"}, res.Categories)
}

func TestHaaretz_RequiresArticleBody(t *testing.T) {
	e := NewHaaretz(nil)

	_, err := e.ExtractFields(mustPage(t, `<head><script type="application/ld+json">{"@type":"NewsArticle","headline":"H"}</script></head>
		<body><section data-test="articleBody"><p>dom body</p></section></body>`))
	require.ErrorIs(t, err, ErrMissingArticleBody)

	res, err := e.ExtractFields(mustPage(t, `<head><script type="application/ld+json">
		{"@type":"NewsArticle","headline":"H","articleBody":"גוף הכתבה"}</script></head>`))
	require.NoError(t, err)
	assert.Equal(t, "גוף הכתבה", res.Content)
}

func TestGeneric_ExtractFields(t *testing.T) {
	page := mustPage(t, `<!DOCTYPE html><html><head><title>Generic Article</title></head><body>
		<nav><a href="/">Home</a></nav>
		<article>
			<h1>Generic Article</h1>
			<p>This is the first paragraph of a reasonably long article body used to check extraction.</p>
			<p>It continues with a second paragraph that also has enough words to be considered content.</p>
		</article>
		<footer><p>copyright</p></footer>
	</body></html>`)

	res, err := NewGeneric(nil).ExtractFields(page)
	require.NoError(t, err)
	assert.Equal(t, "Generic Article", res.Title)
	assert.Contains(t, res.Content, "first paragraph")
	assert.Contains(t, res.Content, "second paragraph")
	assert.Equal(t, GenericProvider, NewGeneric(nil).Provider())
}

func TestFetcher_HostRateLimit(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<p>ok</p>"))
	}))
	defer ts.Close()

	f := NewFetcher(5*time.Second, "test").WithHostRate(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, ts.URL)
	require.NoError(t, err)
	_, err = f.Fetch(ctx, ts.URL)
	require.Error(t, err, "second request must wait longer than the deadline")
	assert.Equal(t, int32(1), hits.Load())

	unlimited := NewFetcher(5*time.Second, "test").WithHostRate(0, 0)
	for i := 0; i < 5; i++ {
		_, err := unlimited.Fetch(context.Background(), ts.URL)
		require.NoError(t, err)
	}
}
