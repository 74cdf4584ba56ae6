package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/app/product/repo"
	"github.com/murkotick/product-launch-service/internal/pkg/committer"
)

// A tiny migration helper that applies the DDL in migrations/001_initial_schema.sql
// to a Cloud Spanner database (typically the emulator for local dev).
//
// Usage (emulator):
//
//	SPANNER_EMULATOR_HOST=localhost:9010 \
//	LAUNCH_SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db \
//	go run ./cmd/migrate
//
// With --seed-user-id the same run inserts the first account, which launches
// need as product owner.
func main() {
	app := &cli.App{
		Name:  "launch-migrate",
		Usage: "apply the Spanner schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Usage:   "Spanner database path",
				EnvVars: []string{"LAUNCH_SPANNER_DATABASE", "SPANNER_DATABASE"},
				Value:   "projects/test-project/instances/emulator-instance/databases/test-db",
			},
			&cli.StringFlag{
				Name:    "file",
				Usage:   "DDL file to apply",
				EnvVars: []string{"LAUNCH_MIGRATIONS_FILE"},
				Value:   filepath.Join("migrations", "001_initial_schema.sql"),
			},
			&cli.DurationFlag{Name: "timeout", Value: 2 * time.Minute},
			&cli.Int64Flag{
				Name:    "seed-user-id",
				Usage:   "insert a user with this id after the schema is applied (0 skips)",
				EnvVars: []string{"LAUNCH_SEED_USER_ID"},
			},
			&cli.StringFlag{Name: "seed-user-email", EnvVars: []string{"LAUNCH_SEED_USER_EMAIL"}, Value: "admin@example.com"},
			&cli.StringFlag{Name: "seed-user-first-name", Value: "Launch"},
			&cli.StringFlag{Name: "seed-user-last-name", Value: "Admin"},
		},
		Action: migrate,
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
}

func migrate(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	db := c.String("database")
	ddlPath := c.String("file")

	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		return errors.Wrap(err, "read DDL")
	}
	if len(stmts) == 0 {
		return errors.Errorf("no DDL statements found in %s", ddlPath)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return errors.Wrap(err, "database admin client")
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return errors.Wrap(err, "UpdateDatabaseDdl")
	}
	if err := op.Wait(ctx); err != nil {
		return errors.Wrap(err, "UpdateDatabaseDdl wait")
	}

	logrus.WithFields(logrus.Fields{"statements": len(stmts), "database": db}).Info("schema applied")

	id := c.Int64("seed-user-id")
	if id == 0 {
		return nil
	}
	plan, err := seedUserPlan(id, c.String("seed-user-first-name"), c.String("seed-user-last-name"),
		c.String("seed-user-email"), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "seed user")
	}
	return applySeed(ctx, db, plan, id)
}

// seedUserPlan builds the one-mutation plan inserting the initial account.
func seedUserPlan(id int64, firstName, lastName, email string, now time.Time) (*committer.Plan, error) {
	user, err := domain.NewUser(id, firstName, lastName, email, now)
	if err != nil {
		return nil, err
	}
	plan := committer.NewPlan()
	plan.Add(repo.NewUserRepo().InsertMut(user))
	return plan, nil
}

// applySeed commits the plan. A user left by an earlier run is not an error.
func applySeed(ctx context.Context, db string, plan *committer.Plan, id int64) error {
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return errors.Wrap(err, "spanner client")
	}
	defer client.Close()

	err = committer.NewAdapter(client).Apply(ctx, plan)
	if spanner.ErrCode(err) == codes.AlreadyExists {
		logrus.WithField("user_id", id).Info("seed user already present")
		return nil
	}
	if err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("seed user inserted")
	return nil
}

// readDDLStatements splits a DDL file on ";" and drops "--" comment lines.
func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Normalize line endings for Windows-authored files.
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}
