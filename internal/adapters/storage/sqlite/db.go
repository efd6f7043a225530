package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base SQLite local del dispositivo y deja el
// schema listo. WAL para que las lecturas de la UI no bloqueen a los
// triggers que escriben.
func Open(path string) (*sql.DB, error) {
	// crear el directorio padre evita SQLITE_CANTOPEN en el primer run
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := bootstrap(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// bootstrap crea las dos "ranuras" de persistencia: el slot de visita
// activa (a lo sumo una fila) y el log histórico.
func bootstrap(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS active_visit (
		slot        INTEGER PRIMARY KEY CHECK (slot = 1),
		id          TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL,
		entered_at  TIMESTAMP NOT NULL,
		mood        TEXT NOT NULL DEFAULT '',
		comment     TEXT NOT NULL DEFAULT '',
		source      TEXT NOT NULL,
		status      TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS visit_history (
		id               TEXT PRIMARY KEY,
		created_at       TIMESTAMP NOT NULL,
		entered_at       TIMESTAMP NOT NULL,
		exited_at        TIMESTAMP,
		mood             TEXT NOT NULL DEFAULT '',
		comment          TEXT NOT NULL DEFAULT '',
		source           TEXT NOT NULL,
		status           TEXT NOT NULL,
		feedback_rating  INTEGER,
		feedback_comment TEXT,
		feedback_at      TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}
