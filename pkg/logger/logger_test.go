package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := WithComponent(NewWithWriter("debug", &buf), "aggregator")

	log.WithField("records", 731).Infof("summarized %s", "dataset")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "summarized dataset", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "aggregator", line["component"])
	assert.Equal(t, float64(731), line["records"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("dropped")
	log.Debugf("dropped %d", 1)
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("loud", &buf)

	log.Debug("dropped")
	assert.Zero(t, buf.Len())
	log.Info("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf).WithFields(map[string]interface{}{
		"run_id": "abc",
		"year":   2012,
	})
	log.Error("render failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["run_id"])
	assert.Equal(t, float64(2012), line["year"])
	assert.Equal(t, "error", line["level"])
}
