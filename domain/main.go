package domain

import (
	"github.com/clixs/waitlist-api/config"
	"github.com/clixs/waitlist-api/domain/monitoring"
	"github.com/clixs/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	factory := waitlist.NewWaitlistServiceFactory(
		appConfig.Waitlist,
		appConfig.Logger,
		appConfig.RouterService.MetricsRegisterer(),
	)

	dispatcher, err := factory.CreateDispatcher()
	if err != nil {
		return err
	}

	service, err := factory.CreateService(dispatcher)
	if err != nil {
		return err
	}

	var cache monitoring.Cache
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}

	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.Logger, cache, dispatcher.Channels()))
	appConfig.RouterService.MountController(factory.CreateController(service))

	return nil
}
