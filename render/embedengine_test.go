package render

import (
	"strings"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

func TestEmbedEngineConfigValidate(t *testing.T) {
	logger := zerolog.New(nil)

	cfg := &EmbedEngineConfig{
		Sink:   func(surfaceID string, payload []byte) error { return nil },
		Logger: &logger,
	}
	assert.NoError(t, cfg.Validate())

	missing := &EmbedEngineConfig{}
	err := missing.Validate()
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "sink function cannot be nil"))
	assert.True(t, strings.Contains(err.Error(), "logger cannot be nil"))
}

func TestEmbedEngine(t *testing.T) {
	logger := zerolog.New(nil)

	var sunkID string
	var sunkPayload []byte
	engine, err := NewEmbedEngine(&EmbedEngineConfig{
		Sink: func(surfaceID string, payload []byte) error {
			sunkID = surfaceID
			sunkPayload = payload
			return nil
		},
		Logger: &logger,
	})
	assert.NoError(t, err)

	// Ensure a nil surface errors.
	_, err = engine.Init(nil)
	assert.Error(t, err)

	renderer, err := engine.Init(&Surface{ID: "chart-1", Width: 640, Height: 480})
	assert.NoError(t, err)

	// Applied specifications reach the sink as JSON payloads.
	err = renderer.ApplySpec(testSpec(t))
	assert.NoError(t, err)
	assert.Equal(t, sunkID, "chart-1")

	parsed := gjson.ParseBytes(sunkPayload)
	assert.Equal(t, len(parsed.Get("series").Array()), 2)
	assert.Equal(t, parsed.Get("series.0.type").String(), "candlestick")
	assert.Equal(t, len(parsed.Get("grid").Array()), 2)

	// Resizes update the bound surface.
	err = renderer.Resize(800, 600)
	assert.NoError(t, err)

	// Disposed instances ignore further operations.
	renderer.Dispose()
	sunkID = ""
	err = renderer.ApplySpec(testSpec(t))
	assert.NoError(t, err)
	assert.Equal(t, sunkID, "")
}
