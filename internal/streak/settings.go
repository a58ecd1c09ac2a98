package streak

import "time"

const (
	DefaultRestDaysBuffer = 0
	DefaultTimezone       = "UTC"
)

// Settings is the validated form of a user's streak settings.
// Construct it with NewSettings or DefaultSettings; the zero value is not usable
// (ComputeStats rejects it with a *ConfigurationError).
type Settings struct {
	restDaysBuffer int
	timezone       string
	location       *time.Location
}

func NewSettings(restDaysBuffer int, timezone string) (Settings, error) {
	if restDaysBuffer < 0 {
		return Settings{}, &ValidationError{Field: "restDaysBuffer", Reason: "must be >= 0"}
	}

	loc, err := LoadZone(timezone)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		restDaysBuffer: restDaysBuffer,
		timezone:       timezone,
		location:       loc,
	}, nil
}

func DefaultSettings() Settings {
	return Settings{
		restDaysBuffer: DefaultRestDaysBuffer,
		timezone:       DefaultTimezone,
		location:       time.UTC,
	}
}

func (s Settings) RestDaysBuffer() int {
	return s.restDaysBuffer
}

func (s Settings) Timezone() string {
	return s.timezone
}

func (s Settings) Location() *time.Location {
	return s.location
}

// validate is the cheap entry check done once before the engine runs.
func (s Settings) validate() error {
	if s.restDaysBuffer < 0 {
		return &ValidationError{Field: "restDaysBuffer", Reason: "must be >= 0"}
	}
	if s.location == nil {
		return &ConfigurationError{Zone: s.timezone}
	}
	return nil
}
