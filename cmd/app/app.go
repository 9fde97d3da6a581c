package app

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spotcontest/api/internal/api"
	"github.com/spotcontest/api/internal/api/handler/v1/response"
	"github.com/spotcontest/api/internal/config"
	"github.com/spotcontest/api/internal/db"
	"github.com/spotcontest/api/internal/logger"
	"github.com/spotcontest/api/internal/pkg/password"
	"github.com/spotcontest/api/internal/repository/dao"
	"github.com/spotcontest/api/internal/service"
)

const defaultConfigPath = "./cmd/app/config.yml"

func Start() error {
	return NewApp().Run(os.Args)
}

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "spotcontest"
	app.Usage = "Mark the spot contest API"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Value:   defaultConfigPath,
			Usage:   "path to the YAML config file",
			EnvVars: []string{"CONFIG_PATH"},
		},
	}
	// serve is what the process did before it had subcommands
	app.Action = serve
	app.Commands = []*cli.Command{
		{
			Action:      serve,
			Name:        "serve",
			Usage:       "Start the HTTP API",
			Category:    "Api",
			Description: `Runs migrations when db.auto_migrate is set, then serves the v1 API and /metrics.`,
		},
		{
			Action:   migrate,
			Name:     "migrate",
			Usage:    "Create or update the database tables",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "reset", Usage: "drop every table before migrating"},
			},
		},
		{
			Action:    compute,
			Name:      "compute",
			Usage:     "Compute and store the winners of a competition",
			ArgsUsage: "--competition <id>",
			Category:  "Contest",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "competition", Aliases: []string{"c"}, Required: true, Usage: "competition id"},
			},
		},
		{
			Action:      hashPassword,
			Name:        "hash-password",
			Usage:       "Read a password from stdin and print its bcrypt hash",
			Category:    "Admin",
			Description: `The output goes into api.admin_password_hash.`,
		},
	}

	return app
}

func bootstrap(c *cli.Context) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	gormDB, err := db.Open(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, gormDB, nil
}

func serve(c *cli.Context) error {
	conf, gormDB, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	if conf.DB.AutoMigrate {
		if err = dao.InitTables(gormDB); err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	s := api.NewServer(conf, gormDB)

	config.Watch(c.String("config"), func(updated *config.AppConfig) {
		if updated.Gin.Mode != conf.Gin.Mode {
			gin.SetMode(updated.Gin.Mode)
		}
		if updated.API.Environment != conf.API.Environment {
			if err := logger.Init(updated.API.Environment); err != nil {
				zap.L().Error("failed to reinitialize logger", zap.Error(err))
			}
		}
		// routes and middlewares keep the config they were built with
		zap.L().Info("config change applied", zap.String("gin_mode", updated.Gin.Mode))
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func migrate(c *cli.Context) error {
	_, gormDB, err := bootstrap(c)
	if err != nil {
		return err
	}

	if c.Bool("reset") {
		zap.L().Warn("dropping all tables")
		if err = dao.DropTables(gormDB); err != nil {
			return fmt.Errorf("failed to drop tables -> %w", err)
		}
	}

	if err = dao.InitTables(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	zap.L().Info("database migrated")

	return nil
}

func compute(c *cli.Context) error {
	conf, gormDB, err := bootstrap(c)
	if err != nil {
		return err
	}

	svc := api.NewWinnerService(gormDB, nil)

	result, err := svc.ComputeAndStore(c.Context, c.String("competition"))
	if err != nil && !errors.Is(err, service.ErrResultNotStored) {
		return fmt.Errorf("svc.ComputeAndStore -> %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(response.NewCompetitionResult(result, conf.Contest.DistancePrecision)); encErr != nil {
		return fmt.Errorf("enc.Encode -> %w", encErr)
	}

	// the result was printed so it is not lost, but the exit status still fails
	return err
}

func hashPassword(c *cli.Context) error {
	reader := bufio.NewReader(c.App.Reader)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reader.ReadString -> %w", err)
	}
	plain := strings.TrimRight(line, "\r\n")

	if err = password.CheckPolicy(plain); err != nil {
		return err
	}

	hash, err := service.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("service.HashPassword -> %w", err)
	}

	_, err = fmt.Fprintln(c.App.Writer, hash)

	return err
}
