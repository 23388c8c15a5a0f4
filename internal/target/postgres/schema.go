package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		secondary_emails TEXT[] NOT NULL DEFAULT '{}',
		affiliation TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_system BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS user_favorites (
		user_id INTEGER NOT NULL REFERENCES users(id),
		target_id INTEGER NOT NULL REFERENCES users(id),
		PRIMARY KEY (user_id, target_id)
	)`,
	`CREATE TABLE IF NOT EXISTS identities (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		provider TEXT NOT NULL,
		identifier TEXT NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		last_login TIMESTAMPTZ,
		UNIQUE (provider, identifier)
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		provider TEXT NOT NULL DEFAULT '',
		UNIQUE (name, provider)
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id INTEGER NOT NULL REFERENCES groups(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		parent_id INTEGER REFERENCES categories(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		protection TEXT NOT NULL DEFAULT 'inheriting',
		event_creation_restricted BOOLEAN NOT NULL DEFAULT FALSE,
		no_access_contact TEXT NOT NULL DEFAULT '',
		legacy_id TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS category_managers (
		category_id INTEGER NOT NULL REFERENCES categories(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		PRIMARY KEY (category_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS event_series (
		id SERIAL PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		category_id INTEGER NOT NULL REFERENCES categories(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT 'UTC',
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		creator_id INTEGER NOT NULL REFERENCES users(id),
		protection TEXT NOT NULL DEFAULT 'inheriting',
		series_id INTEGER REFERENCES event_series(id),
		legacy_id TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS event_persons (
		id SERIAL PRIMARY KEY,
		event_id INTEGER NOT NULL REFERENCES events(id),
		user_id INTEGER REFERENCES users(id),
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		affiliation TEXT NOT NULL DEFAULT '',
		is_chair BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS contributions (
		id SERIAL PRIMARY KEY,
		event_id INTEGER NOT NULL REFERENCES events(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_at TIMESTAMPTZ,
		duration_sec INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		legacy_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS reference_types (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS event_references (
		id SERIAL PRIMARY KEY,
		event_id INTEGER NOT NULL REFERENCES events(id),
		reference_type_id INTEGER NOT NULL REFERENCES reference_types(id),
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attachment_folders (
		id SERIAL PRIMARY KEY,
		link_type TEXT NOT NULL,
		category_id INTEGER REFERENCES categories(id),
		event_id INTEGER REFERENCES events(id),
		contribution_id INTEGER REFERENCES contributions(id),
		title TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		protection TEXT NOT NULL DEFAULT 'inheriting'
	)`,
	`CREATE TABLE IF NOT EXISTS attachments (
		id SERIAL PRIMARY KEY,
		folder_id INTEGER NOT NULL REFERENCES attachment_folders(id),
		title TEXT NOT NULL DEFAULT '',
		filename TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
		size BIGINT NOT NULL DEFAULT 0,
		md5 TEXT NOT NULL DEFAULT '',
		storage_backend TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		created_by_id INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		is_default BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id SERIAL PRIMARY KEY,
		location_id INTEGER NOT NULL REFERENCES locations(id),
		name TEXT NOT NULL DEFAULT '',
		site TEXT NOT NULL DEFAULT '',
		building TEXT NOT NULL DEFAULT '',
		floor TEXT NOT NULL DEFAULT '',
		number TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		owner_id INTEGER REFERENCES users(id),
		is_reservable BOOLEAN NOT NULL DEFAULT TRUE,
		photo_path TEXT NOT NULL DEFAULT '',
		legacy_id TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id SERIAL PRIMARY KEY,
		room_id INTEGER NOT NULL REFERENCES rooms(id),
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		repeat_frequency TEXT NOT NULL DEFAULT 'never',
		repeat_interval INTEGER NOT NULL DEFAULT 0,
		booked_for_name TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		created_by_id INTEGER REFERENCES users(id),
		is_accepted BOOLEAN NOT NULL DEFAULT TRUE,
		is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
		is_rejected BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		module TEXT NOT NULL,
		name TEXT NOT NULL,
		value JSONB NOT NULL,
		PRIMARY KEY (module, name)
	)`,
	`CREATE TABLE IF NOT EXISTS news (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ip_network_groups (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		networks TEXT[] NOT NULL DEFAULT '{}'
	)`,
}

// Bootstrap creates the target tables if they do not exist yet.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap target schema: %w", err)
		}
	}
	return nil
}
