package listener

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/event"
)

func foundRecord(by, loc string) *event.Record {
	r := mkRecord(1, event.AfterGather, event.FindElementByDriver, 0)
	r.Payload = event.Query{By: by}
	r.ReturnObject = stubElement{loc: loc}
	return r
}

func TestShadowPathRecordsShadowElements(t *testing.T) {
	var out bytes.Buffer
	dict := filepath.Join(t.TempDir(), "out", ShadowDictPath("", "my test"))
	s := NewShadowPathExtractor(&out, dict, nil)

	drv := &stubDriver{script: func(args ...any) (any, error) {
		el := args[0].(stubElement)
		if el.loc == "css=#inner" {
			return "return document.querySelector('app-root').shadowRoot.querySelector('#inner')", nil
		}
		return "return document.querySelector('#outer')", nil
	}}

	ctx := context.Background()
	s.AfterFindElementByDriver(ctx, foundRecord("css=#inner", "css=#inner"), drv)
	s.AfterFindElementByDriver(ctx, foundRecord("css=#outer", "css=#outer"), drv)

	assert.Equal(t, 2, drv.scripts)
	assert.Equal(t, map[string]string{
		"css=#inner": "return document.querySelector('app-root').shadowRoot.querySelector('#inner')",
	}, s.Dictionary())
	assert.Equal(t,
		"css=#inner >>> return document.querySelector('app-root').shadowRoot.querySelector('#inner')\n",
		out.String())

	require.NoError(t, s.Close())
	data, err := os.ReadFile(dict)
	require.NoError(t, err)
	assert.Equal(t,
		"Number of locators inside shadowRoot found: 1\n\n"+
			"css=#inner >>> return document.querySelector('app-root').shadowRoot.querySelector('#inner')\n",
		string(data))
}

func TestShadowPathToleratesScriptErrors(t *testing.T) {
	var out bytes.Buffer
	s := NewShadowPathExtractor(&out, "", nil)

	s.AfterFindElementByDriver(context.Background(), foundRecord("css=a", "css=a"), &stubDriver{})

	assert.Empty(t, s.Dictionary())
	assert.Empty(t, out.String())
	assert.NoError(t, s.Close())
}

func TestShadowPathScriptIsEmbedded(t *testing.T) {
	assert.Contains(t, shadowPathScript, "shadowRoot")
}
