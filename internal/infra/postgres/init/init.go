package infra_pg_init

import (
	"context"
	"fmt"
	"log"

	"github.com/humanbelnik/movieparty/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS parties (
	id            TEXT PRIMARY KEY,
	creator_id    TEXT,
	locked_movies JSONB,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS votes (
	party_id       TEXT NOT NULL,
	participant_id TEXT NOT NULL,
	votes          JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (party_id, participant_id)
);
`

func DSN(cfg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	db, err := sqlx.Connect("postgres", DSN(cfg))
	if err != nil {
		log.Fatal(err)
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	return db
}

// EnsureSchema creates the party tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
