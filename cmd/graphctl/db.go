package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firejune/notion-github-embed/internal/database"
)

var databaseURL string

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the contribution snapshot store",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (or set DATABASE_URL env)")

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the snapshot table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, db *database.DatabaseService) error {
				if err := db.InitSchema(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "成功: スキーマを作成しました")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Check that the database is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, db *database.DatabaseService) error {
				fmt.Fprintln(cmd.OutOrStdout(), "成功: データベースに正常に接続し、Pingが成功しました！")
				return nil
			})
		},
	})
	return cmd
}

func withDatabase(parent context.Context, fn func(context.Context, *database.DatabaseService) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	url := databaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return fmt.Errorf("エラー: DATABASE_URL 環境変数が設定されていません。")
	}

	db, err := database.NewDatabaseService(ctx, url, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}
