package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [topic]...", ingestCmd.Use)
}

func TestIngestCmd_Short(t *testing.T) {
	assert.Equal(t, "Fetch and index PubMed articles", ingestCmd.Short)
}

func TestIngestCmd_PassesTopics(t *testing.T) {
	ingest, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "cancer immunotherapy", "crispr"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, ingest.topics, 1)
	assert.Equal(t, []string{"cancer immunotherapy", "crispr"}, ingest.topics[0])
	assert.Contains(t, buf.String(), "4 chunks from 2 articles across 1 topics")
}

func TestIngestCmd_FallsBackToConfiguredTopics(t *testing.T) {
	ingest, _, _, cleanup := setupTestServices()
	defer cleanup()
	SetDefaultTopics([]string{"diabetes"})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, ingest.topics, 1)
	assert.Equal(t, []string{"diabetes"}, ingest.topics[0])
}

func TestIngestCmd_NoTopicsAnywhere(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no topics")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil, nil, nil)
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "cancer"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
