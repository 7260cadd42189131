package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalID(t *testing.T) {
	tbl := []struct {
		provider, guid, link string
		want                 string
	}{
		{"ynet", "abc-1", "https://www.ynet.co.il/a/1", "ynet-abc-1"},
		{"ynet", "  ", "https://www.ynet.co.il/a/1", "ynet-https://www.ynet.co.il/a/1"},
		{"walla", "", " https://news.walla.co.il/item/2 ", "walla-https://news.walla.co.il/item/2"},
		{"walla", "", "", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, ExternalID(tt.provider, tt.guid, tt.link))
	}
}

func TestExtracted_Enrichable(t *testing.T) {
	assert.True(t, (&Extracted{Title: "t", Subtitle: "s", Content: "c"}).Enrichable())
	assert.False(t, (&Extracted{Title: "t", Content: "c"}).Enrichable())
	assert.False(t, (&Extracted{Title: "t", Subtitle: " ", Content: "c"}).Enrichable())
	assert.False(t, (&Extracted{}).Enrichable())
}

func TestFeed_Scheduled(t *testing.T) {
	assert.True(t, (&Feed{Active: true, CadenceMinutes: 15}).Scheduled())
	assert.False(t, (&Feed{Active: false, CadenceMinutes: 15}).Scheduled())
	assert.False(t, (&Feed{Active: true}).Scheduled())
	assert.Equal(t, 15*time.Minute, (&Feed{CadenceMinutes: 15}).Cadence())
}

func TestUser_Recipient(t *testing.T) {
	u := &User{ID: 1, Phone: "972501234567", Email: "reader@example.com"}

	r, err := u.Recipient(ChannelWhatsApp)
	require.NoError(t, err)
	assert.Equal(t, "972501234567", r)

	r, err = u.Recipient(ChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", r)

	_, err = u.Recipient("SMS")
	require.ErrorIs(t, err, ErrUnsupportedChannel)

	_, err = (&User{ID: 2}).Recipient(ChannelWhatsApp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedChannel)
}
