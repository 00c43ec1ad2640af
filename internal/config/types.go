package config

// DefaultBaseURL is the release host assets are fetched from. The final
// download URL is {base}/v{version}/{asset}.
const DefaultBaseURL = "https://github.com/AptS-1547/gcop-rs/releases/download"

// DefaultAssetTemplate names the release asset. {version} and {platform}
// expand to the expected version and the platform suffix. The default
// assets are bare executables; a template ending in an archive extension
// (.zip, .7z, .tar.gz, ...) makes the installer extract the executable from
// the downloaded archive instead.
const DefaultAssetTemplate = "gcop-rs-v{version}-{platform}"

// Settings holds the optional wrapper configuration. Every field has a
// working default; an absent settings file means a stock wrapper.
//   - BaseURL: alternate release host.
//   - Version: pin a gcop-rs version instead of the wrapper's built-in one.
//   - CacheDir: store the binary somewhere other than the platform cache root.
//   - AssetTemplate: alternate asset naming, for hosts that package
//     releases differently.
type Settings struct {
	BaseURL       string `yaml:"base_url"`
	Version       string `yaml:"version"`
	CacheDir      string `yaml:"cache_dir"`
	AssetTemplate string `yaml:"asset_template"`
}
