package app

type ValidateRequest struct {
	RepositoriesPath string
}

type ValidateResult struct {
	Count int
	Pins  []string
}

type InstallKeysRequest struct {
	RepositoriesPath string
	KeyringsDir      string
	KeyAssetsDir     string
}

type InstallKeysResult struct {
	Installed int
	Unchanged int
}

type ConvertRequest struct {
	InputPath    string
	OutputPath   string
	InputFormat  string
	OutputFormat string
}

type ConvertResult struct {
	Sources int
}

type MigrateRequest struct {
	Root           string
	Deb822Name     string
	OldReleasesURL string
}

type MigrateResult struct {
	Changed bool
}

type CheckCloudRequest struct {
	Codename string
	Cloud    string
	Pocket   string
}

type SourcesRequest struct {
	RepositoriesPath string
	Codename         string
	SourcesDir       string
	KeyringsDir      string
}

type SourcesResult struct {
	Written   int
	Unchanged int
}

type PreferencesRequest struct {
	RepositoriesPath string
	OutputPath       string
}

type PreferencesResult struct {
	Written int
}
