package app

import (
	"fmt"

	rbacService "github.com/allisson/ros/internal/rbac/service"
	rbacUseCase "github.com/allisson/ros/internal/rbac/usecase"
)

// PermissionClient returns the client for the remote RBAC service.
func (c *Container) PermissionClient() (rbacService.PermissionClient, error) {
	c.permissionClientInit.Do(func() {
		client, err := c.initPermissionClient()
		c.store("permissionClient", err, func() { c.permissionClient = client })
	})
	if err := c.initError("permissionClient"); err != nil {
		return nil, err
	}
	return c.permissionClient, nil
}

// AccessUseCase returns the access gate, instrumented with business metrics.
func (c *Container) AccessUseCase() (rbacUseCase.AccessUseCase, error) {
	c.accessUseCaseInit.Do(func() {
		useCase, err := c.initAccessUseCase()
		c.store("accessUseCase", err, func() { c.accessUseCase = useCase })
	})
	if err := c.initError("accessUseCase"); err != nil {
		return nil, err
	}
	return c.accessUseCase, nil
}

// initPermissionClient builds the TLS transport from TLS_CA_PATH and the client on top of it.
func (c *Container) initPermissionClient() (rbacService.PermissionClient, error) {
	httpClient, err := rbacService.NewHTTPClient(c.config.TLSCAPath, c.config.RBACRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create rbac http client: %w", err)
	}

	client, err := rbacService.NewPermissionClient(c.config.RBACServiceURL, httpClient, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create rbac permission client: %w", err)
	}
	return client, nil
}

// initAccessUseCase creates the gate. The RBAC client is only built when enforcement is on.
func (c *Container) initAccessUseCase() (rbacUseCase.AccessUseCase, error) {
	var fetcher rbacUseCase.PermissionFetcher
	if c.config.RBACEnabled {
		client, err := c.PermissionClient()
		if err != nil {
			return nil, err
		}
		fetcher = client
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	gate := rbacUseCase.NewAccessUseCase(
		rbacUseCase.GateConfig{Enabled: c.config.RBACEnabled},
		fetcher,
		c.Logger(),
	)
	return rbacUseCase.NewAccessUseCaseWithMetrics(gate, bm), nil
}
