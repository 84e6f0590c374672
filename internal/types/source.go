package types

// AptSource is the common model behind the two on-disk source formats: the
// one-line sources.list format and the deb822 .sources format. One value
// describes one or more archive lines sharing the same key material.
type AptSource struct {
	Types         []SourceFormat
	URIs          []string
	Suites        []string
	Components    []string
	SignedBy      string
	Architectures []string

	// Enabled mirrors the deb822 "Enabled" field. It is recognized on
	// parse but never re-emitted; empty means the field was absent.
	Enabled string
}

// Preference is one apt preferences paragraph: a pin rule and its priority.
type Preference struct {
	Pin      string
	Priority int
}
