package gitrepo

import "fmt"

// ConfigValue returns the value of section.key from the repository's git
// config (e.g. ConfigValue("user", "name")), and whether it was set.
func (r *Repo) ConfigValue(section, key string) (string, bool) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", false
	}
	raw := cfg.Raw.Section(section)
	if raw == nil || !raw.HasOption(key) {
		return "", false
	}
	return raw.Option(key), true
}

// SetConfigValue writes section.key = value to the repository's git config.
func (r *Repo) SetConfigValue(section, key, value string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("%w: reading config: %v", ErrIO, err)
	}
	cfg.Raw.Section(section).SetOption(key, value)
	if err := r.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("%w: writing config: %v", ErrIO, err)
	}
	return nil
}
