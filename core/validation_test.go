package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	doc := &Document{
		ID:   "transcript-ep1",
		Path: "data/ep1.txt",
	}
	require.NoError(t, ValidateDocument(doc))
}

func TestValidateDocument_Nil(t *testing.T) {
	err := ValidateDocument(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestValidateDocument_EmptyID(t *testing.T) {
	doc := &Document{Path: "data/ep1.txt"}
	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, ErrEmptyDocID)
}

func TestValidateDocument_EmptyPath(t *testing.T) {
	doc := &Document{ID: "transcript-ep1"}
	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestValidateQueryRecord_Valid(t *testing.T) {
	record := &QueryRecord{
		Question:  "what is a curiosity loop?",
		Mode:      "hybrid",
		Answer:    "a loop of curiosity",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, ValidateQueryRecord(record))
}

func TestValidateQueryRecord_EmptyAnswerAllowed(t *testing.T) {
	record := &QueryRecord{
		Question:  "unanswered",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, ValidateQueryRecord(record))
}

func TestValidateQueryRecord_Nil(t *testing.T) {
	err := ValidateQueryRecord(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQueryRecord)
}

func TestValidateQueryRecord_EmptyQuestion(t *testing.T) {
	record := &QueryRecord{Timestamp: time.Now().UTC()}
	err := ValidateQueryRecord(record)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestValidateQueryRecord_FutureTimestamp(t *testing.T) {
	record := &QueryRecord{
		Question:  "hello",
		Timestamp: time.Now().Add(time.Hour),
	}
	err := ValidateQueryRecord(record)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestIsValidTimestamp(t *testing.T) {
	assert.True(t, IsValidTimestamp(time.Now().Add(-time.Minute)))
	assert.False(t, IsValidTimestamp(time.Now().Add(time.Minute)))
}
