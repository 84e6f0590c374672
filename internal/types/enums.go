package types

// SourceFormat is an archive format selector in an apt source definition.
type SourceFormat string

const (
	SourceFormatDeb    SourceFormat = "deb"
	SourceFormatDebSrc SourceFormat = "deb-src"
)

// Pocket selects which Ubuntu Cloud Archive pocket a UCA repository tracks.
type Pocket string

const (
	PocketUpdates  Pocket = "updates"
	PocketProposed Pocket = "proposed"

	// DefaultPocket is used when a UCA repository does not name a pocket.
	DefaultPocket = PocketUpdates
)

// Semantic pin priorities per the apt Preferences specification.
// Zero is not a valid priority; internally zero means "no pin".
const (
	PriorityAlways = 1000
	PriorityPrefer = 990
	PriorityDefer  = 100
)

const (
	// UCAArchiveURL is the Ubuntu Cloud Archive mirror.
	UCAArchiveURL = "http://ubuntu-cloud.archive.canonical.com/ubuntu"

	// UCAKeyID signs everything published on the Ubuntu Cloud Archive.
	UCAKeyID = "391A9AA2147192839E9DB0315EDB1B62EC4926EA"

	// DefaultKeyServer is queried when a repository does not name one.
	DefaultKeyServer = "keyserver.ubuntu.com"
)
