package app

import (
	"fmt"

	"github.com/allisson/ros/internal/database"
	systemHttp "github.com/allisson/ros/internal/system/http"
	systemRepository "github.com/allisson/ros/internal/system/repository"
	systemUseCase "github.com/allisson/ros/internal/system/usecase"
)

// SystemRepository returns the system repository for the configured driver.
func (c *Container) SystemRepository() (systemUseCase.SystemRepository, error) {
	c.systemRepoInit.Do(func() {
		repo, err := c.initSystemRepository()
		c.store("systemRepo", err, func() { c.systemRepo = repo })
	})
	if err := c.initError("systemRepo"); err != nil {
		return nil, err
	}
	return c.systemRepo, nil
}

// SystemUseCase returns the system use case, instrumented with business metrics.
func (c *Container) SystemUseCase() (systemUseCase.SystemUseCase, error) {
	c.systemUseCaseInit.Do(func() {
		useCase, err := c.initSystemUseCase()
		c.store("systemUseCase", err, func() { c.systemUseCase = useCase })
	})
	if err := c.initError("systemUseCase"); err != nil {
		return nil, err
	}
	return c.systemUseCase, nil
}

// SystemHandler returns the HTTP handler for system queries.
func (c *Container) SystemHandler() (*systemHttp.SystemHandler, error) {
	c.systemHandlerInit.Do(func() {
		useCase, err := c.SystemUseCase()
		c.store("systemHandler", err, func() {
			c.systemHandler = systemHttp.NewSystemHandler(useCase, c.Logger())
		})
	})
	if err := c.initError("systemHandler"); err != nil {
		return nil, err
	}
	return c.systemHandler, nil
}

func (c *Container) initSystemRepository() (systemUseCase.SystemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for system repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return systemRepository.NewPostgreSQLSystemRepository(db), nil
	case database.DriverMySQL:
		return systemRepository.NewMySQLSystemRepository(db), nil
	default:
		return nil, database.ValidateDriver(c.config.DBDriver)
	}
}

func (c *Container) initSystemUseCase() (systemUseCase.SystemUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for system use case: %w", err)
	}
	repo, err := c.SystemRepository()
	if err != nil {
		return nil, err
	}
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return systemUseCase.NewSystemUseCaseWithMetrics(systemUseCase.NewSystemUseCase(txManager, repo), bm), nil
}
