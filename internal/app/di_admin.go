package app

import (
	"fmt"
	nethttp "net/http"
	"sync"

	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
	"github.com/allisson/rotator-admin/internal/devproxy"
	"github.com/allisson/rotator-admin/internal/gateway"
	"github.com/allisson/rotator-admin/internal/metrics"
	"github.com/allisson/rotator-admin/internal/notify"
)

type adminComponents struct {
	httpClient *nethttp.Client
	gateway    *gateway.Gateway
	adminAPI   adminUseCase.API
	devProxy   *devproxy.Proxy

	httpClientInit sync.Once
	gatewayInit    sync.Once
	adminAPIInit   sync.Once
	devProxyInit   sync.Once
}

// HTTPClient returns the shared client used for backend calls, instrumented when metrics are enabled.
func (c *Container) HTTPClient() (*nethttp.Client, error) {
	var err error
	c.httpClientInit.Do(func() {
		c.httpClient, err = c.initHTTPClient()
		if err != nil {
			c.initErrors["httpClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpClient"]; exists {
		return nil, storedErr
	}
	return c.httpClient, nil
}

// Gateway returns the request gateway.
func (c *Container) Gateway() (*gateway.Gateway, error) {
	var err error
	c.gatewayInit.Do(func() {
		c.gateway, err = c.initGateway()
		if err != nil {
			c.initErrors["gateway"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gateway"]; exists {
		return nil, storedErr
	}
	return c.gateway, nil
}

// AdminAPI returns the admin API facade, wrapped with metrics.
func (c *Container) AdminAPI() (adminUseCase.API, error) {
	var err error
	c.adminAPIInit.Do(func() {
		c.adminAPI, err = c.initAdminAPI()
		if err != nil {
			c.initErrors["adminAPI"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminAPI"]; exists {
		return nil, storedErr
	}
	return c.adminAPI, nil
}

// DevProxy returns the development proxy.
func (c *Container) DevProxy() (*devproxy.Proxy, error) {
	var err error
	c.devProxyInit.Do(func() {
		c.devProxy, err = c.initDevProxy()
		if err != nil {
			c.initErrors["devProxy"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["devProxy"]; exists {
		return nil, storedErr
	}
	return c.devProxy, nil
}

func (c *Container) initHTTPClient() (*nethttp.Client, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http client: %w", err)
	}
	if provider == nil {
		return &nethttp.Client{}, nil
	}

	transport, err := metrics.NewInstrumentedTransport(nil, provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument http client: %w", err)
	}
	return &nethttp.Client{Transport: transport}, nil
}

func (c *Container) initGateway() (*gateway.Gateway, error) {
	session, err := c.Session()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for gateway: %w", err)
	}

	source, err := c.LocaleSource()
	if err != nil {
		return nil, fmt.Errorf("failed to get locale source for gateway: %w", err)
	}

	client, err := c.HTTPClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get http client for gateway: %w", err)
	}

	opts := []gateway.Option{
		gateway.WithHTTPClient(client),
		gateway.WithTimeout(c.config.HTTPTimeout),
		gateway.WithInterceptor(notify.NewInterceptor(c.Notifier(), source)),
		gateway.WithLogger(c.Logger()),
	}
	if c.config.RateLimitEnabled {
		opts = append(opts, gateway.WithRateLimit(c.config.RateLimitRequestsPerSec, c.config.RateLimitBurst))
	}

	return gateway.New(c.config.APIBaseURL, c.config.APIAdminPrefix, session, opts...), nil
}

func (c *Container) initAdminAPI() (adminUseCase.API, error) {
	gw, err := c.Gateway()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway for admin api: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for admin api: %w", err)
	}

	return adminUseCase.NewAPIWithMetrics(adminUseCase.NewAPI(gw), bm), nil
}

func (c *Container) initDevProxy() (*devproxy.Proxy, error) {
	proxy, err := devproxy.New(c.config.DevProxyTarget, devproxy.DefaultRules(), nil, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create dev proxy: %w", err)
	}
	return proxy, nil
}
