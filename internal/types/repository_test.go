package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAptRepositoryName(t *testing.T) {
	repo := AptRepository{URL: "http://archive.ubuntu.com/ubuntu"}
	assert.Equal(t, "http_archive_ubuntu_com_ubuntu", repo.Name())
}

func TestAptRepositoryPin(t *testing.T) {
	repo := AptRepository{URL: "http://archive.ubuntu.com/ubuntu"}
	assert.Equal(t, `origin "archive.ubuntu.com"`, repo.Pin())
}

func TestPPARepositoryName(t *testing.T) {
	repo := PPARepository{PPA: "deadsnakes/ppa"}
	assert.Equal(t, "ppa-deadsnakes_ppa", repo.Name())
}

func TestPPARepositorySourceURL(t *testing.T) {
	repo := PPARepository{PPA: "deadsnakes/ppa"}
	assert.Equal(t, "https://ppa.launchpadcontent.net/deadsnakes/ppa/ubuntu", repo.SourceURL())
}

func TestUCARepositoryName(t *testing.T) {
	repo := UCARepository{Cloud: "antelope"}
	assert.Equal(t, "cloud-antelope", repo.Name())
}

func TestPPARepositoryPin(t *testing.T) {
	repo := PPARepository{PPA: "deadsnakes/ppa"}
	assert.Equal(t, "release o=LP-PPA-deadsnakes-ppa", repo.Pin())
}

func TestUCARepositoryPin(t *testing.T) {
	repo := UCARepository{Cloud: "antelope"}
	assert.Equal(t, `origin "ubuntu-cloud.archive.canonical.com"`, repo.Pin())
}

func TestAptRepositoryMarshal(t *testing.T) {
	repo := AptRepository{
		URL:        "http://archive.ubuntu.com/ubuntu",
		KeyID:      "A1B2C3D4E5F6A7B8A1B2C3D4E5F6A7B8A1B2C3D4",
		KeyServer:  "keyserver.ubuntu.com",
		Suites:     []string{"jammy"},
		Components: []string{"main", "universe"},
		Priority:   PriorityPrefer,
	}
	want := map[string]any{
		"type":       "apt",
		"url":        "http://archive.ubuntu.com/ubuntu",
		"key-id":     "A1B2C3D4E5F6A7B8A1B2C3D4E5F6A7B8A1B2C3D4",
		"key-server": "keyserver.ubuntu.com",
		"suites":     []any{"jammy"},
		"components": []any{"main", "universe"},
		"priority":   990,
	}
	if diff := cmp.Diff(want, repo.Marshal()); diff != "" {
		t.Fatalf("unexpected marshal (-want +got):\n%s", diff)
	}
}

func TestPPARepositoryMarshal(t *testing.T) {
	repo := PPARepository{PPA: "test/ppa"}
	want := map[string]any{"type": "apt", "ppa": "test/ppa"}
	if diff := cmp.Diff(want, repo.Marshal()); diff != "" {
		t.Fatalf("unexpected marshal (-want +got):\n%s", diff)
	}
}

func TestUCARepositoryMarshalDefaultsPocket(t *testing.T) {
	repo := UCARepository{Cloud: "antelope"}
	want := map[string]any{"type": "apt", "cloud": "antelope", "pocket": "updates"}
	if diff := cmp.Diff(want, repo.Marshal()); diff != "" {
		t.Fatalf("unexpected marshal (-want +got):\n%s", diff)
	}
}

func TestMarshalOmitsZeroPriority(t *testing.T) {
	repo := PPARepository{PPA: "test/ppa"}
	_, ok := repo.Marshal()["priority"]
	assert.False(t, ok)
}
