package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/mapstyle"
	"lingomap/pkg/model"
)

// writeConfig writes a config with every provider unavailable.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lingomap.yaml")
	content := "voice:\n  order: [native]\n  native:\n    enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSearch(t *testing.T) {
	out, err := runCLI(t, "search", "japanese")
	require.NoError(t, err)
	assert.Contains(t, out, "jpn")
	assert.Contains(t, out, "Japonic")

	out, err = runCLI(t, "search", "zzzz-nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No languages found")
}

func TestSearch_JSON(t *testing.T) {
	out, err := runCLI(t, "search", "--json", "-n", "1", "German")
	require.NoError(t, err)

	var got []struct {
		Record model.LanguageRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "deu", got[0].Record.ID)
}

func TestShow(t *testing.T) {
	out, err := runCLI(t, "show", "jpn")
	require.NoError(t, err)
	assert.Contains(t, out, "Japanese (jpn)")
	assert.Contains(t, out, "Osaka")

	_, err = runCLI(t, "show", "xxx")
	assert.ErrorContains(t, err, "unknown language")
}

func TestLegend(t *testing.T) {
	out, err := runCLI(t, "legend", "--json")
	require.NoError(t, err)

	var lg mapstyle.Legend
	require.NoError(t, json.Unmarshal([]byte(out), &lg))
	assert.Equal(t, "family", lg.Depth)
	assert.Contains(t, lg.Keys, "Indo-European")
	assert.Contains(t, lg.Keys, "Japonic")

	out, err = runCLI(t, "legend", "--family", "Indo-European", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &lg))
	assert.Equal(t, "branch", lg.Depth)
	assert.Equal(t, []string{"Indo-European"}, lg.Path)
	assert.NotContains(t, lg.Keys, "Japonic")

	_, err = runCLI(t, "legend", "--depth", "planet")
	assert.ErrorContains(t, err, "unknown depth")
}

func TestRegion(t *testing.T) {
	out, err := runCLI(t, "region", "--json", "jp", "DE")
	require.NoError(t, err)

	var styles []mapstyle.RegionStyle
	require.NoError(t, json.Unmarshal([]byte(out), &styles))
	require.Len(t, styles, 2)
	assert.Equal(t, "JP", styles[0].Code)
	assert.Equal(t, "jpn", styles[0].Primary)
	assert.Equal(t, "Japonic", styles[0].ColorKey)
	assert.Equal(t, "deu", styles[1].Primary)

	out, err = runCLI(t, "region", "JP")
	require.NoError(t, err)
	assert.Contains(t, out, "jpn")
}

func TestDetect(t *testing.T) {
	out, err := runCLI(t, "detect", "阿拉今朝蛮好，侬好，伊拉做生活")
	require.NoError(t, err)
	assert.Contains(t, out, "shanghai")
	assert.Contains(t, out, "Shanghainese")

	out, err = runCLI(t, "detect", "--json", "hello there")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"dialect": "standard"`))
}

func TestSay(t *testing.T) {
	_, err := runCLI(t, "say", "jpn")
	assert.ErrorContains(t, err, "nothing to do")

	_, err = runCLI(t, "say", "--json", "xxx", "hello")
	assert.ErrorContains(t, err, "unknown language")

	// every provider is unavailable
	out, err := runCLI(t, "say", "--json", "jpn")
	require.Error(t, err)
	assert.Contains(t, out, `"succeeded": false`)

	_, err = runCLI(t, "say", "--order", "azure", "--json", "jpn")
	assert.ErrorContains(t, err, "unknown providers")
}
