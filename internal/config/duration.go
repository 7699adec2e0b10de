package config

import "github.com/jmylchreest/poptip/internal/model"

// Duration is the config file's duration: integer milliseconds or a Go
// duration string such as "3s". Scenario documents share the same type.
type Duration = model.Duration
