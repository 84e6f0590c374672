package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-archives/internal/adapters"
	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

const serviceKeyID = "A1B2C3D4E5F6A7B8A1B2C3D4E5F6A7B8A1B2C3D4"

type fakeRepositoriesConfig struct {
	repositories []types.Repository
	err          error
	paths        []string
}

func (f *fakeRepositoriesConfig) LoadRepositories(path string) ([]types.Repository, error) {
	f.paths = append(f.paths, path)
	return f.repositories, f.err
}

// fakeKeyTool answers every invocation with success and materializes the
// keyring file on --import and --recv-keys, like gpg does.
type fakeKeyTool struct {
	invocations [][]string
}

func (f *fakeKeyTool) Run(_ context.Context, keyring string, _ []byte, args ...string) (ports.KeyToolResult, error) {
	f.invocations = append(f.invocations, args)
	for _, arg := range args {
		if (arg == "--import" || arg == "--recv-keys") && keyring != "" {
			if err := os.WriteFile(keyring, []byte("keyring"), 0600); err != nil {
				return ports.KeyToolResult{}, err
			}
		}
	}
	return ports.KeyToolResult{}, nil
}

type fakePPAResolver struct {
	keyID string
}

func (f *fakePPAResolver) SigningKeyID(context.Context, string) (string, error) {
	return f.keyID, nil
}

type fakeCloudArchive struct {
	err   error
	calls []CheckCloudRequest
}

func (f *fakeCloudArchive) CheckReleaseCompatibility(_ context.Context, codename, cloud, pocket string) error {
	f.calls = append(f.calls, CheckCloudRequest{Codename: codename, Cloud: cloud, Pocket: pocket})
	return f.err
}

type fakePreferences struct {
	path    string
	written []types.Preference
}

func (f *fakePreferences) Read(string) ([]types.Preference, error) { return nil, nil }

func (f *fakePreferences) Write(path string, preferences []types.Preference) error {
	f.path = path
	f.written = preferences
	return nil
}

func newTestService(repositories ...types.Repository) (Service, *fakeRepositoriesConfig, *fakeKeyTool) {
	config := &fakeRepositoriesConfig{repositories: repositories}
	tool := &fakeKeyTool{}
	service := Service{
		Repositories: config,
		KeyTool:      tool,
		PPA:          &fakePPAResolver{keyID: serviceKeyID},
		CloudArchive: &fakeCloudArchive{},
		Preferences:  &fakePreferences{},
		SourcesList:  adapters.NewSourcesListAdapter(),
		Deb822:       adapters.NewDeb822Adapter(),
	}
	return service, config, tool
}

func TestValidate(t *testing.T) {
	service, config, _ := newTestService(
		types.AptRepository{URL: "http://archive.example.com", KeyID: serviceKeyID},
		types.PPARepository{PPA: "deadsnakes/ppa"},
	)

	result, err := service.Validate(context.Background(), ValidateRequest{RepositoriesPath: "repos.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{
		`origin "archive.example.com"`,
		"release o=LP-PPA-deadsnakes-ppa",
	}, result.Pins)
	assert.Equal(t, []string{"repos.yaml"}, config.paths)
}

func TestValidateRequiresPath(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Validate(context.Background(), ValidateRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestInstallKeysInstallsEveryMissingKey(t *testing.T) {
	service, _, tool := newTestService(
		types.AptRepository{URL: "http://archive.example.com", KeyID: serviceKeyID},
		types.UCARepository{Cloud: "antelope"},
	)
	keyringsDir := t.TempDir()

	result, err := service.InstallKeys(context.Background(), InstallKeysRequest{
		RepositoriesPath: "repos.yaml",
		KeyringsDir:      keyringsDir,
	})
	require.NoError(t, err)
	assert.Equal(t, InstallKeysResult{Installed: 2, Unchanged: 0}, result)
	assert.NotEmpty(t, tool.invocations)

	// The keyring files now exist, so a second run changes nothing.
	again, err := service.InstallKeys(context.Background(), InstallKeysRequest{
		RepositoriesPath: "repos.yaml",
		KeyringsDir:      keyringsDir,
	})
	require.NoError(t, err)
	assert.Equal(t, InstallKeysResult{Installed: 0, Unchanged: 2}, again)
}

func TestInstallKeysRequiresPath(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.InstallKeys(context.Background(), InstallKeysRequest{KeyringsDir: t.TempDir()})
	require.Error(t, err)
}

func TestConvertSourcesListToDeb822(t *testing.T) {
	service, _, _ := newTestService()
	dir := t.TempDir()
	input := filepath.Join(dir, "sources.list")
	output := filepath.Join(dir, "ubuntu.sources")
	require.NoError(t, os.WriteFile(input,
		[]byte("deb http://archive.ubuntu.com/ubuntu jammy main universe\n"), 0644))

	result, err := service.Convert(context.Background(), ConvertRequest{
		InputPath:    input,
		OutputPath:   output,
		InputFormat:  FormatSourcesList,
		OutputFormat: FormatDeb822,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sources)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"Types: deb\n"+
			"URIs: http://archive.ubuntu.com/ubuntu\n"+
			"Suites: jammy\n"+
			"Components: main universe\n",
		string(data))
}

func TestConvertDeb822ToSourcesList(t *testing.T) {
	service, _, _ := newTestService()
	dir := t.TempDir()
	input := filepath.Join(dir, "ubuntu.sources")
	output := filepath.Join(dir, "sources.list")
	require.NoError(t, os.WriteFile(input, []byte(
		"Types: deb deb-src\nURIs: http://archive.ubuntu.com/ubuntu\nSuites: jammy\nComponents: main\n"), 0644))

	result, err := service.Convert(context.Background(), ConvertRequest{
		InputPath:    input,
		OutputPath:   output,
		InputFormat:  FormatDeb822,
		OutputFormat: FormatSourcesList,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sources)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"deb http://archive.ubuntu.com/ubuntu jammy main\n"+
			"deb-src http://archive.ubuntu.com/ubuntu jammy main\n",
		string(data))
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Convert(context.Background(), ConvertRequest{
		InputPath:    "in",
		OutputPath:   "out",
		InputFormat:  "rpm",
		OutputFormat: FormatDeb822,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sources format 'rpm'")
}

func TestCheckCloud(t *testing.T) {
	service, _, _ := newTestService()
	cloud := service.CloudArchive.(*fakeCloudArchive)

	require.NoError(t, service.CheckCloud(context.Background(), CheckCloudRequest{
		Codename: "jammy",
		Cloud:    "antelope",
		Pocket:   "proposed",
	}))
	assert.Equal(t, []CheckCloudRequest{
		{Codename: "jammy", Cloud: "antelope", Pocket: "proposed"},
	}, cloud.calls)
}

func TestCheckCloudRequiresCodenameAndCloud(t *testing.T) {
	service, _, _ := newTestService()
	err := service.CheckCloud(context.Background(), CheckCloudRequest{Cloud: "antelope"})
	require.Error(t, err)
	err = service.CheckCloud(context.Background(), CheckCloudRequest{Codename: "jammy"})
	require.Error(t, err)
}

func TestWritePreferencesSkipsUnpinnedRepositories(t *testing.T) {
	service, _, _ := newTestService(
		types.AptRepository{URL: "http://archive.example.com", KeyID: serviceKeyID, Priority: types.PriorityAlways},
		types.PPARepository{PPA: "deadsnakes/ppa"},
		types.UCARepository{Cloud: "antelope", Priority: types.PriorityDefer},
	)
	preferences := service.Preferences.(*fakePreferences)

	result, err := service.WritePreferences(context.Background(), PreferencesRequest{
		RepositoriesPath: "repos.yaml",
		OutputPath:       "/tmp/preferences",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, "/tmp/preferences", preferences.path)
	assert.Equal(t, []types.Preference{
		{Pin: `origin "archive.example.com"`, Priority: types.PriorityAlways},
		{Pin: `origin "ubuntu-cloud.archive.canonical.com"`, Priority: types.PriorityDefer},
	}, preferences.written)
}

func TestWritePreferencesDefaultsOutputPath(t *testing.T) {
	service, _, _ := newTestService()
	preferences := service.Preferences.(*fakePreferences)

	_, err := service.WritePreferences(context.Background(), PreferencesRequest{
		RepositoriesPath: "repos.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, adapters.DefaultPreferencesPath, preferences.path)
}

func TestMigrateRequiresRoot(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Migrate(context.Background(), MigrateRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
