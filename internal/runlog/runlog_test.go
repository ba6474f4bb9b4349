package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Input:     "grand_livre_2023.xlsx",
		Accounts:  42,
		Years:     []int{2022, 2023},
		PlugYears: []int{2023},
		Outputs:   []string{"Comptes_Cleans.xlsx", "Financial_Statements.xlsx"},
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "run-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), Header+"\n")
	assert.Contains(t, string(data), "2022;2023")
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Input = "grand_livre_2024.xls"
	e2.PlugYears = nil
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "grand_livre_2023.xlsx", entries[0].Input)
	assert.Equal(t, "grand_livre_2024.xls", entries[1].Input)
	assert.Nil(t, entries[1].PlugYears)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Input, got.Input)
	assert.Equal(t, original.Accounts, got.Accounts)
	assert.Equal(t, original.Years, got.Years)
	assert.Equal(t, original.PlugYears, got.PlugYears)
	assert.Equal(t, original.Outputs, got.Outputs)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "x", "1", "", "", ""})
	assert.ErrorContains(t, err, "parsing timestamp")

	_, err = UnmarshalEntry([]string{testTime.Format(time.RFC3339), "x", "many", "", "", ""})
	assert.ErrorContains(t, err, "parsing accounts")

	_, err = UnmarshalEntry([]string{testTime.Format(time.RFC3339), "x", "1", "2023;abc", "", ""})
	assert.ErrorContains(t, err, "parsing years")
}
