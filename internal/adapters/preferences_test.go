package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-archives/internal/types"
)

func TestReadPreferences(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")
	require.NoError(t, os.WriteFile(path, []byte(
		"Package: *\nPin: origin \"archive.example.com\"\nPin-Priority: 1000\n"+
			"\n"+
			"Explanation: pin the deadsnakes PPA\n"+
			"Package: *\nPin: release o=LP-PPA-deadsnakes-ppa\nPin-Priority: 990\n"), 0644))

	preferences, err := adapter.Read(path)
	require.NoError(t, err)
	want := []types.Preference{
		{Pin: `origin "archive.example.com"`, Priority: 1000},
		{Pin: "release o=LP-PPA-deadsnakes-ppa", Priority: 990},
	}
	if diff := cmp.Diff(want, preferences); diff != "" {
		t.Fatalf("unexpected preferences (-want +got):\n%s", diff)
	}
}

func TestReadPreferencesMissingFile(t *testing.T) {
	adapter := NewPreferencesAdapter()
	preferences, err := adapter.Read(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Nil(t, preferences)
}

func TestReadPreferencesRejectsZeroPriority(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")
	require.NoError(t, os.WriteFile(path, []byte(
		"Package: *\nPin: origin \"archive.example.com\"\nPin-Priority: 0\n"), 0644))

	_, err := adapter.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Priority cannot be zero")
}

func TestReadPreferencesRejectsNonNumericPriority(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")
	require.NoError(t, os.WriteFile(path, []byte(
		"Package: *\nPin: origin \"archive.example.com\"\nPin-Priority: high\n"), 0644))

	_, err := adapter.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pin priority 'high'")
}

func TestWritePreferences(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")

	err := adapter.Write(path, []types.Preference{
		{Pin: `origin "archive.example.com"`, Priority: 1000},
		{Pin: "release o=LP-PPA-deadsnakes-ppa", Priority: -1},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Package: *\nPin: origin \"archive.example.com\"\nPin-Priority: 1000\n"+
			"\n"+
			"Package: *\nPin: release o=LP-PPA-deadsnakes-ppa\nPin-Priority: -1\n",
		string(data))
}

func TestWritePreferencesSkipsUnsetPriorities(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")

	err := adapter.Write(path, []types.Preference{
		{Pin: `origin "archive.example.com"`},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no paragraphs means no file")
}

func TestWritePreferencesRemovesStaleFile(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")
	require.NoError(t, adapter.Write(path, []types.Preference{
		{Pin: `origin "archive.example.com"`, Priority: 990},
	}))

	require.NoError(t, adapter.Write(path, nil))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "empty result removes the previous file")
}

func TestPreferencesRoundTrip(t *testing.T) {
	adapter := NewPreferencesAdapter()
	path := filepath.Join(t.TempDir(), "apt-archives")
	preferences := []types.Preference{
		{Pin: `origin "archive.example.com"`, Priority: 1000},
		{Pin: "release o=LP-PPA-deadsnakes-ppa", Priority: 100},
	}

	require.NoError(t, adapter.Write(path, preferences))
	again, err := adapter.Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(preferences, again); diff != "" {
		t.Fatalf("round trip changed the preferences (-want +got):\n%s", diff)
	}
}
