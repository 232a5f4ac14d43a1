package types

// Identity is the non-elevated user that owns every home-directory mutation.
type Identity struct {
	Username string `json:"username" yaml:"username"`
	UID      int    `json:"uid" yaml:"uid"`
	GID      int    `json:"gid" yaml:"gid"`
	Home     string `json:"home" yaml:"home"`
}

// ResolvedPaths are the absolute locations derived from the identity and
// configuration, threaded explicitly between stages.
type ResolvedPaths struct {
	Home         string
	ConfigHome   string
	SourceRoot   string
	WMConfigDir  string
	WMConfigFile string
	FragmentPath string
}
