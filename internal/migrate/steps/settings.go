package steps

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// SettingsStep migrates the global configuration that events depend on:
// core site settings, registered reference types, network groups and news.
type SettingsStep struct {
	env *Env
	log *logger.StepLogger
}

func NewSettingsStep(env *Env) *SettingsStep {
	return &SettingsStep{env: env, log: logger.Step("settings")}
}

func (s *SettingsStep) Name() string { return "settings" }

func (s *SettingsStep) Run(ctx context.Context) error {
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		settings := postgres.NewSettingsRepository(tx)
		events := postgres.NewEventRepository(tx)

		if err := s.migrateCoreSettings(ctx, settings); err != nil {
			return err
		}
		if err := s.registerReferenceTypes(ctx, events); err != nil {
			return err
		}
		if err := s.migrateNetworks(ctx, settings); err != nil {
			return err
		}
		return s.migrateNews(ctx, settings)
	})
}

func (s *SettingsStep) migrateCoreSettings(ctx context.Context, repo *postgres.SettingsRepository) error {
	var legacy source.Settings
	err := s.env.Store.Collection(source.CollSettings).FindID(ctx, "main", &legacy)
	if err != nil && !errors.Is(err, source.ErrNotFound) {
		return err
	}
	if errors.Is(err, source.ErrNotFound) {
		s.log.Warnf("No global settings record in the legacy store; using defaults")
	}

	timezone := legacy.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	values := []domain.Setting{
		{Module: "core", Name: "site_title", Value: sanitize.Title(legacy.Title)},
		{Module: "core", Name: "site_organization", Value: sanitize.Title(legacy.Organisation)},
		{Module: "core", Name: "timezone", Value: timezone},
		{Module: "core", Name: "lang", Value: legacy.Lang},
		{Module: "payment", Name: "currency", Value: s.env.Opts.DefaultCurrency},
	}
	if admin := sanitize.Email(legacy.AdminEmails, ""); admin != "" {
		values = append(values, domain.Setting{Module: "core", Name: "admin_email", Value: admin})
	} else if legacy.AdminEmails != "" {
		s.log.Warnf("Dropping garbage admin e-mail %q", legacy.AdminEmails)
	}
	for i := range values {
		if err := repo.Set(ctx, &values[i]); err != nil {
			return err
		}
	}
	s.log.Infof("Core settings migrated (timezone %s, currency %s)", timezone, s.env.Opts.DefaultCurrency)
	return nil
}

func (s *SettingsStep) registerReferenceTypes(ctx context.Context, repo *postgres.EventRepository) error {
	for _, name := range s.env.Opts.ReferenceTypes {
		rt := domain.ReferenceType{Name: name}
		if err := repo.CreateReferenceType(ctx, &rt); err != nil {
			return err
		}
		s.env.NS.ReferenceTypes[strings.ToLower(name)] = rt.ID
		s.log.Infof("Registered reference type %q", name)
	}
	return nil
}

func (s *SettingsStep) migrateNetworks(ctx context.Context, repo *postgres.SettingsRepository) error {
	cur, err := s.env.Store.Collection(source.CollDomains).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var dom source.Domain
		if err := cur.Decode(&dom); err != nil {
			s.log.Warnf("Skipping undecodable domain record: %v", err)
			continue
		}
		name := sanitize.Title(dom.Name)
		if name == "" || len(dom.NetworkMasks) == 0 {
			s.log.Warnf("Skipping empty domain %q", dom.ID)
			continue
		}
		group := domain.IPNetworkGroup{Name: name, Networks: dom.NetworkMasks}
		if err := repo.CreateNetworkGroup(ctx, &group); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (s *SettingsStep) migrateNews(ctx context.Context, repo *postgres.SettingsRepository) error {
	cur, err := s.env.Store.Collection(source.CollNews).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	count := 0
	for cur.Next(ctx) {
		var item source.NewsItem
		if err := cur.Decode(&item); err != nil {
			s.log.Warnf("Skipping undecodable news record: %v", err)
			continue
		}
		news := domain.NewsItem{
			Title:     sanitize.Title(item.Title),
			Content:   sanitize.Text(item.Content),
			CreatedAt: item.Created,
		}
		if err := repo.CreateNews(ctx, &news); err != nil {
			return err
		}
		count++
	}
	if count > 0 {
		s.log.Infof("Migrated %d news items", count)
	}
	return cur.Err()
}
