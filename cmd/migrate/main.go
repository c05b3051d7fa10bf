package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"quiz-prep/internal/config"
	"quiz-prep/internal/database"
	"quiz-prep/internal/domain"
	"quiz-prep/internal/dto"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/repository"
	"quiz-prep/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const commandTimeout = 5 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Schema and seed data management",
		Long: `Schema and seed data management for quiz-prep.

Available commands:
  up                - Apply all pending migrations
  down              - Roll back applied migrations
  seed-chapters     - Insert the study guide chapters that are missing
  import-flashcards - Load flashcards from a JSON file`,
		SilenceUsage: true,
	}

	root.AddCommand(upCmd())
	root.AddCommand(downCmd())
	root.AddCommand(seedChaptersCmd())
	root.AddCommand(importFlashcardsCmd())
	return root
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
			m, err := database.NewMigrator(db)
			if err != nil {
				return err
			}
			n, err := m.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed after %d applied: %w", n, err)
			}
			logger.Get().Info("Migrations applied", zap.Int("count", n))
			return nil
		}),
	}
}

func downCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations, newest first",
		RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			m, err := database.NewMigrator(db)
			if err != nil {
				return err
			}
			n, err := m.Down(ctx, steps)
			if err != nil {
				return fmt.Errorf("rollback failed after %d reverted: %w", n, err)
			}
			logger.Get().Info("Migrations rolled back", zap.Int("count", n))
			return nil
		}),
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	return cmd
}

func seedChaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-chapters",
		Short: "Insert the study guide chapters that are missing",
		RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
			created, err := service.SeedChapters(ctx, repository.NewSQLXChapterRepository(db))
			if err != nil {
				return err
			}
			logger.Get().Info("Chapters seeded", zap.Int("created", created))
			return nil
		}),
	}
}

func importFlashcardsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import-flashcards",
		Short: "Load flashcards from a JSON file",
		Long: `Load flashcards from a JSON file of the form {"flashcards": [...]}.

Each card names its chapter by chapter_id or by chapter title. The file is
imported in one transaction, so nothing is stored when any card is rejected.`,
		RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}
			defer f.Close()

			inputs, err := decodeFlashcards(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			catalog, err := service.LoadChapterCatalog(ctx, repository.NewSQLXChapterRepository(db))
			if err != nil {
				return err
			}
			flashcards := service.NewFlashcardService(
				repository.NewTransactionManagerAdapter(db),
				repository.NewSQLXFlashcardRepository(db),
				catalog,
			)
			n, err := flashcards.Import(ctx, inputs)
			if err != nil {
				return err
			}
			logger.Get().Info("Flashcards imported", zap.String("file", file), zap.Int("count", n))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the flashcards JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// decodeFlashcards reads the import file format shared with POST /api/flashcards/import.
func decodeFlashcards(r io.Reader) ([]domain.FlashcardInput, error) {
	var req dto.ImportFlashcardsRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}

	inputs := make([]domain.FlashcardInput, 0, len(req.Flashcards))
	for _, card := range req.Flashcards {
		inputs = append(inputs, domain.FlashcardInput{
			Question:  card.Question,
			Answer:    card.Answer,
			Category:  card.Category,
			Tags:      card.Tags,
			ChapterID: card.ChapterID,
			Chapter:   card.Chapter,
		})
	}
	return inputs, nil
}

// withDB loads config, initializes the logger and opens the database for fn.
func withDB(fn func(ctx context.Context, db *sqlx.DB) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		db, err := database.NewSQLXOracleDB(ctx, cfg.DB, cfg.GetDSN())
		if err != nil {
			return err
		}
		defer db.Close()

		return fn(ctx, db)
	}
}
