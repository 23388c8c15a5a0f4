package steps

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// EventsStep migrates conferences with their chairs, contributions,
// external references and attachments.
type EventsStep struct {
	env *Env
	log *logger.StepLogger
}

func NewEventsStep(env *Env) *EventsStep {
	return &EventsStep{env: env, log: logger.Step("events")}
}

func (s *EventsStep) Name() string { return "events" }

func (s *EventsStep) Run(ctx context.Context) error {
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		events := postgres.NewEventRepository(tx)
		attachments := &attachmentImporter{
			env:  s.env,
			repo: postgres.NewAttachmentRepository(tx),
			log:  s.log,
		}

		cur, err := s.env.Store.Collection(source.CollEvents).Iter(ctx)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		count, skipped := 0, 0
		start := time.Now()
		for cur.Next(ctx) {
			var conf source.Conference
			if err := cur.Decode(&conf); err != nil {
				s.log.Warnf("Skipping undecodable event record: %v", err)
				skipped++
				continue
			}
			ok, err := s.migrateEvent(ctx, events, attachments, &conf)
			if err != nil {
				return err
			}
			if !ok {
				skipped++
				continue
			}
			count++
			if count%s.env.progressInterval() == 0 {
				rate := float64(count) / time.Since(start).Seconds()
				s.log.Infof("%d events migrated (%.1f events/sec)", count, rate)
			}
		}
		if err := cur.Err(); err != nil {
			return err
		}
		s.log.Infof("Migrated %d events, skipped %d", count, skipped)
		return nil
	})
}

func (s *EventsStep) migrateEvent(ctx context.Context, events *postgres.EventRepository, attachments *attachmentImporter, conf *source.Conference) (bool, error) {
	categoryID, ok := s.env.NS.CategoryByLegacyID[conf.CategoryID]
	if !ok {
		if s.env.NS.LostFoundCategory == 0 {
			s.log.Warnf("Event %s has no valid category (%q); skipping", conf.ID, conf.CategoryID)
			return false, nil
		}
		s.log.Warnf("Event %s has no valid category (%q); moving to Lost & Found", conf.ID, conf.CategoryID)
		categoryID = s.env.NS.LostFoundCategory
	}

	event := domain.Event{
		CategoryID:  categoryID,
		Title:       sanitize.Title(conf.Title),
		Description: sanitize.Text(conf.Description),
		Timezone:    conf.Timezone,
		StartAt:     conf.StartDate.UTC(),
		EndAt:       conf.EndDate.UTC(),
		CreatorID:   s.env.creatorOrSystem(source.Principal{Kind: source.PrincipalAvatar, ID: conf.CreatorID}),
		Protection:  eventProtection(conf.Protection),
		LegacyID:    conf.ID,
	}
	if event.Title == "" {
		event.Title = "(no title)"
	}
	if event.Timezone == "" {
		event.Timezone = "UTC"
	}
	if !event.EndAt.After(event.StartAt) {
		// legacy data contains zero-length and inverted events
		event.EndAt = event.StartAt.Add(time.Hour)
	}

	if err := events.Create(ctx, &event); err != nil {
		return false, fmt.Errorf("event %s: %w", conf.ID, err)
	}
	s.env.NS.EventByLegacyID[conf.ID] = event.ID

	if err := s.migratePersons(ctx, events, conf, event.ID); err != nil {
		return false, err
	}
	if err := s.migrateReferences(ctx, events, conf, event.ID); err != nil {
		return false, err
	}
	if err := s.migrateContributions(ctx, events, attachments, conf, event.ID); err != nil {
		return false, err
	}

	folder := domain.AttachmentFolder{LinkType: domain.LinkEvent, EventID: &event.ID, IsDefault: true}
	if err := attachments.importMaterials(ctx, folder, conf.Materials); err != nil {
		return false, fmt.Errorf("event %s attachments: %w", conf.ID, err)
	}
	return true, nil
}

func (s *EventsStep) migratePersons(ctx context.Context, events *postgres.EventRepository, conf *source.Conference, eventID int) error {
	for _, chair := range conf.Chairs {
		person := s.personFromPrincipal(chair, eventID)
		if person == nil {
			s.log.Warnf("Event %s chair could not be resolved; skipping", conf.ID)
			continue
		}
		person.IsChair = true
		if err := events.CreatePerson(ctx, person); err != nil {
			return fmt.Errorf("event %s chair: %w", conf.ID, err)
		}
	}
	return nil
}

// personFromPrincipal builds a person row from an avatar reference,
// keeping whatever name and contact data survives when the user was never
// migrated. Nil when nothing identifies the person.
func (s *EventsStep) personFromPrincipal(p source.Principal, eventID int) *domain.EventPerson {
	person := &domain.EventPerson{EventID: eventID}
	if id, ok := s.env.resolveUser(p); ok {
		person.UserID = &id
		return person
	}
	person.FirstName = sanitize.Text(p.FirstName)
	person.LastName = sanitize.Text(p.Surname)
	person.Affiliation = sanitize.Text(p.Affiliation)
	person.Email = sanitize.Email(p.Email, "")
	if person.FirstName == "" && person.LastName == "" && person.Email == "" {
		return nil
	}
	return person
}

func (s *EventsStep) migrateReferences(ctx context.Context, events *postgres.EventRepository, conf *source.Conference, eventID int) error {
	for _, rn := range conf.ReportNumbers {
		typeID, ok := s.env.NS.ReferenceTypes[strings.ToLower(rn.System)]
		if !ok {
			s.log.Warnf("Event %s has report number for unregistered system %q; skipping", conf.ID, rn.System)
			continue
		}
		value := sanitize.Text(rn.Value)
		if value == "" {
			continue
		}
		ref := domain.EventReference{EventID: eventID, ReferenceTypeID: typeID, Value: value}
		if err := events.CreateReference(ctx, &ref); err != nil {
			return fmt.Errorf("event %s reference: %w", conf.ID, err)
		}
	}
	return nil
}

func (s *EventsStep) migrateContributions(ctx context.Context, events *postgres.EventRepository, attachments *attachmentImporter, conf *source.Conference, eventID int) error {
	for i, legacy := range conf.Contributions {
		contrib := domain.Contribution{
			EventID:     eventID,
			Title:       sanitize.Title(legacy.Title),
			Description: sanitize.Text(legacy.Description),
			StartAt:     legacy.StartDate,
			Duration:    time.Duration(legacy.DurationMinutes) * time.Minute,
			Position:    i + 1,
			LegacyID:    legacy.ID,
		}
		if contrib.Title == "" {
			contrib.Title = "(no title)"
		}
		if err := events.CreateContribution(ctx, &contrib); err != nil {
			return fmt.Errorf("event %s contribution %s: %w", conf.ID, legacy.ID, err)
		}

		for _, speaker := range legacy.Speakers {
			person := s.personFromPrincipal(speaker, eventID)
			if person == nil {
				continue
			}
			if err := events.CreatePerson(ctx, person); err != nil {
				return fmt.Errorf("event %s speaker: %w", conf.ID, err)
			}
		}

		folder := domain.AttachmentFolder{LinkType: domain.LinkContribution, ContributionID: &contrib.ID, IsDefault: true}
		if err := attachments.importMaterials(ctx, folder, legacy.Materials); err != nil {
			return fmt.Errorf("event %s contribution %s attachments: %w", conf.ID, legacy.ID, err)
		}
	}
	return nil
}

func eventProtection(value int) string {
	switch value {
	case -1:
		return domain.ProtectionPublic
	case 1:
		return domain.ProtectionProtected
	default:
		return domain.ProtectionInheriting
	}
}
