// Package config manages user-level settings stored at ~/.stamp/config.yaml
// and STAMP_* environment variables: the default author, the user's
// template-set directory, render concurrency and default indentation.
package config
