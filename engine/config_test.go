package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "http://localhost:9621", cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 10*time.Minute, cfg.InsertTimeout)
	assert.Equal(t, 2*time.Minute, cfg.QueryTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithBaseURL("http://rag.internal:9621"),
		WithAPIKey("secret"),
		WithInsertTimeout(time.Minute),
		WithQueryTimeout(30*time.Second),
	)

	assert.Equal(t, "http://rag.internal:9621", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, time.Minute, cfg.InsertTimeout)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
}

func TestValidateNormalizesBaseURL(t *testing.T) {
	cfg := NewConfig(WithBaseURL("http://localhost:9621/"))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:9621", cfg.BaseURL)
}

func TestValidateErrors(t *testing.T) {
	cfg := NewConfig(WithBaseURL(""))
	assert.ErrorIs(t, cfg.Validate(), ErrBaseURLRequired)

	cfg = NewConfig(WithInsertTimeout(0))
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)

	cfg = NewConfig(WithQueryTimeout(-time.Second))
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
}

func TestParseMode(t *testing.T) {
	for _, want := range []QueryMode{ModeHybrid, ModeLocal, ModeGlobal, ModeNaive} {
		got, err := ParseMode(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("mixed")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
