package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-archives/internal/types"
)

func TestSourceForAptRepository(t *testing.T) {
	repo := types.AptRepository{
		URL:           "http://archive.example.com/ubuntu",
		KeyID:         testKeyID,
		Suites:        []string{"jammy", "jammy-updates"},
		Components:    []string{"main", "universe"},
		Architectures: []string{"amd64"},
		Formats:       []types.SourceFormat{types.SourceFormatDeb, types.SourceFormatDebSrc},
	}
	name, source, err := SourceForRepository(repo, "jammy", "/etc/apt/keyrings/archives-A7B8A1B2.gpg")
	require.NoError(t, err)
	assert.Equal(t, "http_archive_example_com_ubuntu", name)
	want := types.AptSource{
		Types:         []types.SourceFormat{types.SourceFormatDeb, types.SourceFormatDebSrc},
		URIs:          []string{"http://archive.example.com/ubuntu"},
		Suites:        []string{"jammy", "jammy-updates"},
		Components:    []string{"main", "universe"},
		Architectures: []string{"amd64"},
		SignedBy:      "/etc/apt/keyrings/archives-A7B8A1B2.gpg",
	}
	if diff := cmp.Diff(want, source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceForAptRepositoryWithPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain path gains trailing slash", "inner/path", "inner/path/"},
		{"trailing slash kept", "inner/path/", "inner/path/"},
		{"root path kept", "/", "/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := types.AptRepository{
				URL:   "http://archive.example.com/ubuntu",
				KeyID: testKeyID,
				Path:  tc.path,
			}
			_, source, err := SourceForRepository(repo, "jammy", "/keyrings/key.gpg")
			require.NoError(t, err)
			assert.Equal(t, []string{tc.want}, source.Suites)
			assert.Empty(t, source.Components)
		})
	}
}

func TestSourceForPPARepository(t *testing.T) {
	repo := types.PPARepository{PPA: "deadsnakes/ppa"}
	name, source, err := SourceForRepository(repo, "jammy", "/etc/apt/keyrings/archives-ABCD1234.gpg")
	require.NoError(t, err)
	assert.Equal(t, "ppa-deadsnakes_ppa", name)
	want := types.AptSource{
		Types:      []types.SourceFormat{types.SourceFormatDeb},
		URIs:       []string{"https://ppa.launchpadcontent.net/deadsnakes/ppa/ubuntu"},
		Suites:     []string{"jammy"},
		Components: []string{"main"},
		SignedBy:   "/etc/apt/keyrings/archives-ABCD1234.gpg",
	}
	if diff := cmp.Diff(want, source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceForUCARepository(t *testing.T) {
	tests := []struct {
		name   string
		pocket types.Pocket
		suite  string
	}{
		{"explicit proposed pocket", types.PocketProposed, "jammy-proposed/antelope"},
		{"empty pocket defaults to updates", "", "jammy-updates/antelope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := types.UCARepository{Cloud: "antelope", Pocket: tc.pocket}
			name, source, err := SourceForRepository(repo, "jammy", "/keyrings/archives-EC4926EA.gpg")
			require.NoError(t, err)
			assert.Equal(t, "cloud-antelope", name)
			assert.Equal(t, []string{types.UCAArchiveURL}, source.URIs)
			assert.Equal(t, []string{tc.suite}, source.Suites)
			assert.Equal(t, []string{"main"}, source.Components)
		})
	}
}
