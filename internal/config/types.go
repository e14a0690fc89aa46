package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Remote reports whether the store lives on a Turso primary instead of a local file.
func (t TursoConfig) Remote() bool {
	return t.PrimaryURL != ""
}

// PubSubEnabled reports whether match events are published to Google Pub/Sub.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}
