package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"confmigrate/internal/config"
	"confmigrate/internal/migrate"
	"confmigrate/internal/migrate/steps"
	"confmigrate/internal/source"
	"confmigrate/internal/storage"
	"confmigrate/internal/target/postgres"
)

const targetEnv = "CONFMIGRATE_TEST_TARGET_URI"

// TestFullMigration runs the whole pipeline against a real PostgreSQL
// instance and a file-based legacy dump. It needs CONFMIGRATE_TEST_TARGET_URI
// to point at a disposable database.
func TestFullMigration(t *testing.T) {
	uri := os.Getenv(targetEnv)
	if uri == "" {
		t.Skipf("%s not set, skipping integration test", targetEnv)
	}
	ctx := context.Background()

	db, err := postgres.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	dropTables(t, db)
	if err := postgres.Bootstrap(ctx, db); err != nil {
		t.Fatalf("Failed to bootstrap schema: %v", err)
	}
	defer dropTables(t, db)

	store, err := source.Open(ctx, "file://"+writeFixtures(t))
	if err != nil {
		t.Fatalf("Failed to open legacy store: %v", err)
	}
	defer store.Close(ctx)

	archiveDir := t.TempDir()
	opts := &config.Options{
		SystemUserID:    -1,
		DefaultEmail:    "nobody@example.com",
		ArchiveDirs:     []string{archiveDir},
		StorageBackend:  "legacy-fs",
		DefaultCurrency: "EUR",
	}

	state := migrate.NewState()
	env := &steps.Env{
		DB:    db,
		Store: store,
		NS:    state.Namespace,
		Opts:  opts,
		Files: &storage.Resolver{ArchiveDirs: opts.ArchiveDirs, Backend: opts.StorageBackend},
	}

	if err := migrate.NewRunner(steps.All(env), state, "").Run(ctx); err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	// one regular user plus the generated system user
	if got := countRows(t, db, "users"); got != 2 {
		t.Errorf("Expected 2 users, got %d", got)
	}
	// root category and one child
	if got := countRows(t, db, "categories"); got != 2 {
		t.Errorf("Expected 2 categories, got %d", got)
	}
	if got := countRows(t, db, "events"); got != 1 {
		t.Errorf("Expected 1 event, got %d", got)
	}

	var creator int
	err = db.QueryRowContext(ctx, `SELECT creator_id FROM events LIMIT 1`).Scan(&creator)
	if err != nil {
		t.Fatalf("Failed to read migrated event: %v", err)
	}
	if want := state.Namespace.UserByAvatar["1"]; creator != want {
		t.Errorf("Expected event creator %d, got %d", want, creator)
	}
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fixtures := map[string]string{
		source.CollAvatars: `{"id":"1","firstName":"Marie","surName":"Curie","email":"marie@example.com","status":"activated"}
`,
		source.CollCategories: `{"id":"0","title":"Home"}
{"id":"10","parentId":"0","title":"Physics","order":1}
`,
		source.CollEvents: `{"id":"42","categoryId":"10","title":"Radium Workshop","timezone":"Europe/Paris","startDate":"2005-06-01T09:00:00Z","endDate":"2005-06-01T17:00:00Z","creatorId":"1"}
`,
	}
	for coll, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, coll+".jsonl"), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", coll, err)
		}
	}
	return dir
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

func dropTables(t *testing.T, db *sql.DB) {
	t.Helper()
	tables := []string{
		"reservations", "rooms", "locations",
		"attachments", "attachment_folders",
		"event_references", "reference_types", "contributions", "event_persons",
		"events", "event_series", "category_managers", "categories",
		"ip_network_groups", "news", "settings",
		"group_members", "groups", "identities", "user_favorites", "users",
	}
	for _, table := range tables {
		if _, err := db.Exec(`DROP TABLE IF EXISTS ` + table + ` CASCADE`); err != nil {
			t.Fatalf("Failed to drop %s: %v", table, err)
		}
	}
}
