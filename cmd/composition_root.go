package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpadapter "uidkit/internal/adapters/in/http"
	"uidkit/internal/adapters/out/postgres"
	"uidkit/internal/core/application/usecases/commands"
	"uidkit/internal/core/application/usecases/queries"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/core/domain/services"
	"uidkit/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	generator  *services.Generator
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. All handlers share one Generator so that the
// ordering guarantees hold across requests.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	opts := []services.GeneratorOption{services.WithLogger(logger)}
	if config.Node != "" {
		node, err := uid.ParseNode(config.Node)
		if err != nil {
			return CompositionRoot{}, err
		}
		opts = append(opts, services.WithNode(node))
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		generator:  services.NewGenerator(opts...),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Generator() *services.Generator {
	return c.generator
}

func (c *CompositionRoot) CreateGenerateIdentifiersCommandHandler() *commands.GenerateIdentifiersCommandHandler {
	var f commands.IssuanceUoWFactory = FuncIssuanceUoWFactory(func() commands.IssuanceUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewGenerateIdentifiersCommandHandler(f, c.generator, time.Now)
	return &h
}

func (c *CompositionRoot) CreateInspectIdentifierQueryHandler() queries.InspectIdentifierQueryHandler {
	return queries.NewInspectIdentifierQueryHandler(c.uowFactory.Create().IssuanceRepository())
}

func (c *CompositionRoot) CreateConvertIdentifierQueryHandler() queries.ConvertIdentifierQueryHandler {
	return queries.NewConvertIdentifierQueryHandler()
}

func (c *CompositionRoot) CreateGetRecentIssuancesQueryHandler() queries.GetRecentIssuancesQueryHandler {
	return queries.NewGetRecentIssuancesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateGenerateIdentifiersCommandHandler(),
		c.CreateInspectIdentifierQueryHandler(),
		c.CreateConvertIdentifierQueryHandler(),
		c.CreateGetRecentIssuancesQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.generator,
		c.uowFactory.Create().IssuanceRepository(),
		c.config.StatsSchedule,
		c.logger,
	)
}

type FuncIssuanceUoWFactory func() commands.IssuanceUoW

func (f FuncIssuanceUoWFactory) Create() commands.IssuanceUoW {
	return f()
}
