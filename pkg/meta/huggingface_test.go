package meta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeltrust/mtrust/pkg/score"
)

const hubModelJSON = `{
	"id": "org/model",
	"downloads": 1200,
	"likes": 42,
	"tags": ["pytorch", "license:apache-2.0"],
	"cardData": {"license": "apache-2.0", "datasets": ["rajpurkar/squad"]},
	"siblings": [
		{"rfilename": "model.safetensors", "size": 500000000},
		{"rfilename": "pytorch_model.bin", "size": 250000000},
		{"rfilename": "README.md", "size": 1000}
	]
}`

func newHubStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, hubModelJSON)
	})
	mux.HandleFunc("GET /org/model/raw/main/README.md", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "# Model\nA quickstart example with benchmark accuracy numbers.")
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchHub(t *testing.T) {
	ts := newHubStub(t)
	p := NewProvider(WithHubBaseURL(ts.URL))

	md := p.Fetch(context.Background(), "https://huggingface.co/org/model")

	assert.Equal(t, "apache-2.0", md.Str(score.KeyLicense))
	assert.Equal(t, int64(1200), md.Int(score.KeyDatasetDownloads, 0))
	assert.Equal(t, "rajpurkar/squad", md.Str(score.KeyDatasetLink))
	assert.Contains(t, md.Str(score.KeyReadme), "quickstart")

	total, known := md.Bytes(score.KeyWeightsBytes)
	require.True(t, known)
	assert.Equal(t, int64(750000000), total)
}

func TestFetchHub_APIDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	p := NewProvider(WithHubBaseURL(ts.URL))
	md := p.Fetch(context.Background(), "https://huggingface.co/org/model")

	// never errors, just defaults
	assert.Equal(t, "", md.Str(score.KeyLicense))
	_, known := md.Bytes(score.KeyWeightsBytes)
	assert.False(t, known)
}

func TestFetch_UnrecognizedHost(t *testing.T) {
	p := NewProvider()
	md := p.Fetch(context.Background(), "https://example.com/model")
	assert.Empty(t, md)
}

func TestHubModelID(t *testing.T) {
	assert.Equal(t, "org/model", hubModelID("https://huggingface.co/org/model"))
	assert.Equal(t, "org/model", hubModelID("https://huggingface.co/org/model/tree/main"))
	assert.Equal(t, "", hubModelID("https://example.com/org/model"))
}

func TestHubLicense_TagFallback(t *testing.T) {
	m := &hubModel{Tags: []string{"pytorch", "license:mit"}}
	assert.Equal(t, "mit", hubLicense(m))

	m.CardData.License = "apache-2.0"
	assert.Equal(t, "apache-2.0", hubLicense(m))

	assert.Equal(t, "", hubLicense(&hubModel{}))
}

func TestIsWeightFile(t *testing.T) {
	assert.True(t, isWeightFile("model.safetensors"))
	assert.True(t, isWeightFile("Model.BIN"))
	assert.True(t, isWeightFile("weights.gguf"))
	assert.False(t, isWeightFile("README.md"))
	assert.False(t, isWeightFile("config.json"))
}
