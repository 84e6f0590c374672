package app

import (
	"apt-archives/internal/adapters"
	"apt-archives/internal/ports"
)

// Service wires the application operations to their collaborators. Tests
// replace individual ports with fakes.
type Service struct {
	Repositories ports.RepositoriesConfigPort
	KeyTool      ports.KeyToolPort
	PPA          ports.PPAResolverPort
	CloudArchive ports.CloudArchivePort
	Preferences  ports.PreferencesPort
	SourcesList  adapters.SourcesListAdapter
	Deb822       adapters.Deb822Adapter
}

func NewService() Service {
	return Service{
		Repositories: adapters.NewRepositoriesFileAdapter(),
		KeyTool:      adapters.NewGPGAdapter(),
		PPA:          adapters.NewLaunchpadResolver(),
		CloudArchive: adapters.NewCloudArchiveAdapter(),
		Preferences:  adapters.NewPreferencesAdapter(),
		SourcesList:  adapters.NewSourcesListAdapter(),
		Deb822:       adapters.NewDeb822Adapter(),
	}
}
