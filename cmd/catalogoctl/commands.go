package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"catalogo/internal/config"
	"catalogo/internal/infra"
	"catalogo/internal/nomecomercial"
	"catalogo/internal/repository"
	"catalogo/internal/service"
)

const (
	driverFlag   = "driver"
	databaseFlag = "database"
	modoFlag     = "modo"
)

// newDBFlags returns the database flags of one subcommand. Every command gets
// its own set: a cobraflags.Flag remembers the flagset it was registered on.
// Empty values fall back to the environment configuration.
func newDBFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		driverFlag: &cobraflags.StringFlag{
			Name:  driverFlag,
			Value: "",
			Usage: "Database driver (sqlite, postgres). Defaults to DATABASE_DRIVER",
		},
		databaseFlag: &cobraflags.StringFlag{
			Name:  databaseFlag,
			Value: "",
			Usage: "SQLite file path or postgres URL. Defaults to DATABASE_URL",
		},
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogoctl",
		Short:        "Maintenance commands for the product catalog",
		SilenceUsage: true,
	}
	root.AddCommand(
		newSchemaCommand(),
		newImportCommand(),
		newRegenerateNamesCommand(),
	)
	return root
}

func newSchemaCommand() *cobra.Command {
	dbFlags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create missing tables, columns and indexes",
		Long: `Bring the database schema up to date. Tables are created when missing and
missing columns are added to existing tables. Nothing is ever dropped, so the
command is safe to run against a database created by older versions.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, cfg, err := abrir(dbFlags)
			if err != nil {
				return err
			}
			log.Info().Str("driver", cfg.DatabaseDriver).Msg("schema atualizado")
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, dbFlags)
	return cmd
}

func newImportCommand() *cobra.Command {
	dbFlags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "import <arquivo.xml>...",
		Short: "Import NF-e invoice files into the product table",
		Long: `Import one or more NF-e XML files. Each file is imported as a whole: if any
line item is invalid, no product from that file is stored. Processing stops at
the first failing file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := abrir(dbFlags)
			if err != nil {
				return err
			}
			svc := service.NewImportacaoService(repository.NewProdutoRepository(db))

			total := 0
			for _, path := range args {
				resp, err := svc.ImportarArquivo(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				total += resp.Importados
			}
			log.Info().Int("arquivos", len(args)).Int("produtos", total).Msg("importação concluída")
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, dbFlags)
	return cmd
}

func newRegenerateNamesCommand() *cobra.Command {
	dbFlags := newDBFlags()
	nomesFlags := map[string]cobraflags.Flag{
		modoFlag: &cobraflags.StringFlag{
			Name:  modoFlag,
			Value: "",
			Usage: "Commercial name mode (juncao, marcadores). Defaults to NOME_COMERCIAL_MODO",
		},
	}
	cmd := &cobra.Command{
		Use:   "regenerate-names",
		Short: "Recompute the commercial name of every product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, cfg, err := abrir(dbFlags)
			if err != nil {
				return err
			}
			modo := nomesFlags[modoFlag].GetString()
			if modo == "" {
				modo = cfg.NomeComercialModo
			}
			gerador, err := nomecomercial.PorModo(modo)
			if err != nil {
				return err
			}

			svc := service.NewProdutoService(
				repository.NewProdutoRepository(db),
				repository.NewCampoRepository(db),
				repository.NewAtribuicaoRepository(db),
				gerador,
			)
			n, err := svc.RegenerarNomesComerciais(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d nomes comerciais atualizados\n", n)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, dbFlags)
	cobraflags.RegisterMap(cmd, nomesFlags)
	return cmd
}

// carregarConfig loads the environment configuration and applies the
// database flag overrides.
func carregarConfig(dbFlags map[string]cobraflags.Flag) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := dbFlags[driverFlag].GetString(); v != "" {
		cfg.DatabaseDriver = v
	}
	if v := dbFlags[databaseFlag].GetString(); v != "" {
		cfg.DatabaseURL = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func abrir(dbFlags map[string]cobraflags.Flag) (*gorm.DB, *config.Config, error) {
	cfg, err := carregarConfig(dbFlags)
	if err != nil {
		return nil, nil, err
	}
	db, err := infra.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}
