package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"genpower/adapters/excel"
	"genpower/adapters/postgres"
	"genpower/adapters/stats"
	"genpower/domain/architecture"
	"genpower/domain/core"
	"genpower/internal/aggregate"
	"genpower/internal/config"
	"genpower/internal/errors"
	"genpower/internal/report"
	"genpower/internal/simulate"
)

func main() {
	// Best effort: a missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "genpower",
		Short: "Monte Carlo power analysis for gene-phenotype association detection",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newShowCmd(),
		newSampleSizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		population int
		replicates int
		seed       int64
		workers    int
		excelFile  string
		mdFile     string
		htmlFile   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the replicate simulation and export detection statistics",
		Long: `Run R independent replicates of the genotype/phenotype simulation and
collect per-replicate detection statistics under Bonferroni and FDR
correction. Architecture parameters come from the environment (GP_* variables
or a .env file); flags override the run scalars.

Example: genpower run --population 250 --replicates 5000 --seed 42 --excel results.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("population") {
				cfg.Run.Population = population
			}
			if cmd.Flags().Changed("replicates") {
				cfg.Run.Replicates = replicates
			}
			if cmd.Flags().Changed("seed") {
				cfg.Run.Seed = seed
			}
			if cmd.Flags().Changed("workers") {
				cfg.Run.Workers = workers
			}
			if excelFile != "" {
				cfg.Output.ExcelFile = excelFile
			}
			if mdFile != "" {
				cfg.Output.MarkdownFile = mdFile
			}
			if htmlFile != "" {
				cfg.Output.HTMLFile = htmlFile
			}

			return runSimulation(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&population, "population", 100, "population size K per replicate")
	cmd.Flags().IntVar(&replicates, "replicates", 1000, "number of independent replicates R")
	cmd.Flags().Int64Var(&seed, "seed", 42, "root random seed")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = all cores)")
	cmd.Flags().StringVar(&excelFile, "excel", "", "write the result table to this xlsx file")
	cmd.Flags().StringVar(&mdFile, "markdown", "", "write the report to this markdown file")
	cmd.Flags().StringVar(&htmlFile, "html", "", "write the report to this HTML file")
	return cmd
}

func runSimulation(ctx context.Context, cfg *config.Config) error {
	model, err := architecture.New(architecture.Params{
		CausalGenes:  cfg.Architecture.CausalGenes,
		TotalGenes:   cfg.Architecture.TotalGenes,
		AlleleFreqs:  cfg.Architecture.AlleleFreqs,
		EffectSizes:  cfg.Architecture.EffectSizes,
		Heritability: cfg.Architecture.Heritability,
	})
	if err != nil {
		return err
	}

	runner := simulate.NewRunner()
	table, manifest, err := runner.Run(ctx, model, simulate.RunConfig{
		Population:   cfg.Run.Population,
		Replicates:   cfg.Run.Replicates,
		Alpha:        cfg.Run.Alpha,
		FDRThreshold: cfg.Run.FDRThreshold,
		Seed:         cfg.Run.Seed,
		Workers:      cfg.Run.Workers,
	})
	if err != nil {
		return err
	}

	summary, err := aggregate.NewAggregator().Summarize(table, model.CausalGenes(), model.TotalGenes())
	if err != nil {
		return err
	}

	for _, c := range summary.Columns {
		log.Printf("[Run] %-16s mean=%.4g sd=%.4g median=%.4g", c.Name, c.Mean, c.StdDev, c.Median)
	}

	if cfg.Output.ExcelFile != "" {
		if err := excel.NewWriter().Write(cfg.Output.ExcelFile, table, summary); err != nil {
			return err
		}
		log.Printf("[Run] wrote workbook %s", cfg.Output.ExcelFile)
	}

	if cfg.Output.MarkdownFile != "" || cfg.Output.HTMLFile != "" {
		renderer := report.NewRenderer()
		md := renderer.Markdown(manifest, summary)
		if err := renderer.WriteFiles(md, cfg.Output.MarkdownFile, cfg.Output.HTMLFile); err != nil {
			return err
		}
		log.Printf("[Run] wrote report (markdown=%q html=%q)", cfg.Output.MarkdownFile, cfg.Output.HTMLFile)
	}

	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to run ledger: %w", err)
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		if err := postgres.NewRunRepository(db).SaveRun(ctx, manifest, table); err != nil {
			return err
		}
		log.Printf("[Run] persisted run %s to ledger", manifest.RunID)
	}

	return nil
}

func newShowCmd() *cobra.Command {
	var (
		excelFile string
		mdFile    string
		htmlFile  string
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Load a stored run from the ledger and render its report",
		Long: `Load a run's manifest and replicate table from the postgres ledger
(DATABASE_URL), re-aggregate it, and render the report. Without export flags
the markdown report goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := core.ParseRunID(args[0])
			if err != nil {
				return err
			}

			url := os.Getenv("DATABASE_URL")
			if url == "" {
				return errors.DatabaseError("DATABASE_URL must be set to read the run ledger")
			}
			db, err := sqlx.Connect("postgres", url)
			if err != nil {
				return fmt.Errorf("failed to connect to run ledger: %w", err)
			}
			defer db.Close()

			repo := postgres.NewRunRepository(db)
			ctx := cmd.Context()
			manifest, err := repo.GetManifest(ctx, runID)
			if err != nil {
				return err
			}
			table, err := repo.GetTable(ctx, runID)
			if err != nil {
				return err
			}

			summary, err := aggregate.NewAggregator().Summarize(table, manifest.CausalGenes, manifest.TotalGenes)
			if err != nil {
				return err
			}

			if excelFile != "" {
				if err := excel.NewWriter().Write(excelFile, table, summary); err != nil {
					return err
				}
				log.Printf("[Show] wrote workbook %s", excelFile)
			}

			renderer := report.NewRenderer()
			md := renderer.Markdown(manifest, summary)
			if mdFile != "" || htmlFile != "" {
				if err := renderer.WriteFiles(md, mdFile, htmlFile); err != nil {
					return err
				}
				log.Printf("[Show] wrote report (markdown=%q html=%q)", mdFile, htmlFile)
				return nil
			}

			fmt.Print(md)
			return nil
		},
	}

	cmd.Flags().StringVar(&excelFile, "excel", "", "export the stored table to this xlsx file")
	cmd.Flags().StringVar(&mdFile, "markdown", "", "write the report to this markdown file")
	cmd.Flags().StringVar(&htmlFile, "html", "", "write the report to this HTML file")
	return cmd
}

func newSampleSizeCmd() *cobra.Command {
	var (
		effectSize  float64
		alpha       float64
		targetPower float64
		carrierFreq float64
	)

	cmd := &cobra.Command{
		Use:   "samplesize",
		Short: "Analytic sample-size helper for choosing the population size K",
		Long: `One-shot closed-form power calculation for a two-sided two-sample t-test,
with the unequal-group correction for a given carrier frequency. Use the
resulting total as the --population input of the run command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pa := stats.NewPowerAnalysis()
			perGroup := pa.SampleSizeTTest(effectSize, targetPower, alpha)
			if perGroup == 0 {
				return fmt.Errorf("effect size must be non-zero")
			}
			total := pa.UnequalGroupsTotal(perGroup, carrierFreq)
			achieved := pa.TTestPower(effectSize, alpha, perGroup, perGroup)

			fmt.Printf("per-group n (equal groups): %d\n", perGroup)
			fmt.Printf("total K (carrier freq %.2f): %d\n", carrierFreq, total)
			fmt.Printf("approximate power at per-group n: %.3f\n", achieved)
			return nil
		},
	}

	cmd.Flags().Float64Var(&effectSize, "effect", 0.5, "standardized effect size (Cohen's d)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "two-sided significance level")
	cmd.Flags().Float64Var(&targetPower, "power", 0.8, "target power")
	cmd.Flags().Float64Var(&carrierFreq, "carrier-freq", 0.25, "expected carrier fraction of the population")
	return cmd
}
