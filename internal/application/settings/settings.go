// Package settings defines application-level configuration data.
package settings

// Settings represents the application configuration.
type Settings struct {
	Feeds       []string `yaml:"feeds" kong:"help='RSS/Atom feed URLs',default='https://news.ycombinator.com/rss'"`
	CacheDir    string   `yaml:"cache_dir" kong:"help='News cache directory'"`
	HistoryFile string   `yaml:"history_file" kong:"help='Fetch history database path'"`
}
