package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div id="target">
			<p>first<span>
			fragment</span></p>
			<p>second fragment</p>
		</div>
	`))
	require.NoError(t, err)

	require.Equal(t, "firstfragmentsecond fragment", Text(doc.Find("#target")))
	require.Equal(t, "", Text(doc.Find("#missing")))
}
