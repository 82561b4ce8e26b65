package store

import (
	"context"

	"backoffice/domain/configuration"
	apperrors "backoffice/pkg/errors"
)

type ConfigurationAPI interface {
	Get(ctx context.Context) (configuration.Configuration, error)
	Update(ctx context.Context, id int64, patch configuration.Patch) (configuration.Configuration, error)
}

// Configuration Store settings singleton
type Configuration struct {
	api     ConfigurationAPI
	current *Selected[configuration.Configuration]
	reporter
}

func NewConfiguration(a ConfigurationAPI, notifier Notifier) *Configuration {
	return &Configuration{
		api:      a,
		current:  NewSelected[configuration.Configuration](),
		reporter: reporter{notifier: notifier},
	}
}

func (s *Configuration) Current() (configuration.Configuration, bool) { return s.current.Get() }
func (s *Configuration) Status() Status                               { return s.current.Status() }
func (s *Configuration) Error() string                                { return s.current.Error() }

func (s *Configuration) Fetch(ctx context.Context) (configuration.Configuration, error) {
	c, err := s.current.Load(ctx, s.api.Get)
	return c, s.failure(err)
}

// Update patches the loaded configuration; Fetch must have succeeded first.
func (s *Configuration) Update(ctx context.Context, patch configuration.Patch) (configuration.Configuration, error) {
	current, ok := s.current.Get()
	if !ok {
		return configuration.Configuration{}, apperrors.Logical("configuration is not loaded")
	}
	if err := patch.Validate(); err != nil {
		return configuration.Configuration{}, err
	}
	c, err := s.api.Update(ctx, current.ID, patch)
	if err != nil {
		return configuration.Configuration{}, s.failure(err)
	}
	if c.ID == 0 {
		c = patch.Apply(current)
	}
	s.current.Set(c)
	s.success("Settings saved")
	return c, nil
}
