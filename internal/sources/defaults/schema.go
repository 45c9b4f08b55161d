package defaults

// Config represents the bundled default navigation tree file.
type Config struct {
	Profile    ProfileConfig    `yaml:"profile"`
	Categories []CategoryConfig `yaml:"categories"`
}

// ProfileConfig is the header block of the default tree.
type ProfileConfig struct {
	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Avatar   string `yaml:"avatar,omitempty"`
}

// CategoryConfig is one category of the default tree, nesting freely.
type CategoryConfig struct {
	ID       string           `yaml:"id,omitempty"`
	Title    string           `yaml:"title"`
	Icon     string           `yaml:"icon,omitempty"`
	Sites    []SiteConfig     `yaml:"sites,omitempty"`
	Children []CategoryConfig `yaml:"children,omitempty"`
}

// SiteConfig is one default link.
type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
}
