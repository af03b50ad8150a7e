package waitlist

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clixs/waitlist-api/config"
	"github.com/clixs/waitlist-api/config/router"
	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/internal/notify"
)

type WaitlistServiceFactory interface {
	CreateDispatcher() (*notify.Dispatcher, error)
	CreateService(dispatcher NotificationDispatcher) (WaitlistService, error)
	CreateController(service WaitlistService) *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	cfg        *config.WaitlistConfig
	logger     *log.Logger
	registerer prometheus.Registerer
}

// NewWaitlistServiceFactory takes a nil registerer when metrics are disabled.
func NewWaitlistServiceFactory(cfg *config.WaitlistConfig, logger *log.Logger, registerer prometheus.Registerer) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		cfg:        cfg,
		logger:     logger,
		registerer: registerer,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateDispatcher() (*notify.Dispatcher, error) {
	return notify.NewDispatcherFromConfig(&f.cfg.Notify, notify.DispatcherOptions{
		Logger:     f.logger,
		Registerer: f.registerer,
	})
}

func (f *DefaultWaitlistServiceFactory) CreateService(dispatcher NotificationDispatcher) (WaitlistService, error) {
	validator, err := NewEmailValidator(f.cfg.ValidationMode)
	if err != nil {
		return nil, err
	}
	return NewWaitlistService(f.logger, validator, dispatcher, f.registerer), nil
}

func (f *DefaultWaitlistServiceFactory) CreateController(service WaitlistService) *router.RESTController {
	return NewWaitlistController(service)
}
