package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"farmagent/internal/model"
	"farmagent/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChatCommand(t *testing.T) {
	out, err := execute(t, "chat", "--seed", "7", "--location", "Pune", "will", "it", "rain")
	require.NoError(t, err)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.IntentWeather, resp.Intent)
	require.NotNil(t, resp.WeatherData)
	assert.Equal(t, "Pune", resp.WeatherData.Location)
}

func TestDiagnoseCommand(t *testing.T) {
	out, err := execute(t, "diagnose", "--crop", "tomato", "--symptom", "Leaf curl", "--symptom", "Yellowing leaves")
	require.NoError(t, err)

	var resp model.DiagnosisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, service.CandidateViralLeafCurl, resp.Candidates[0].Name)
}

func TestSuggestCommand(t *testing.T) {
	out, err := execute(t, "suggest", "Market")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, service.SuggestionsFor(model.IntentMarket), got)

	_, err = execute(t, "suggest", "astrology")
	assert.ErrorContains(t, err, "unknown intent")
}

func TestCropsCommand(t *testing.T) {
	out, err := execute(t, "crops", "--season", "monsoon")
	require.NoError(t, err)

	var crops []model.Crop
	require.NoError(t, json.Unmarshal([]byte(out), &crops))
	require.Len(t, crops, 1)
	assert.Equal(t, "Rice", crops[0].Name)
}

func TestSoilCommand(t *testing.T) {
	out, err := execute(t, "soil", "--ph", "5.2", "--n", "20", "--p", "10", "--k", "10", "--organic", "1")
	require.NoError(t, err)

	var analysis model.SoilAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, 25, analysis.HealthScore)
	assert.Len(t, analysis.Nutrients, 4)
}
