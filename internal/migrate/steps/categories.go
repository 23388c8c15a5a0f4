package steps

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

const rootCategoryID = "0"

// CategoriesStep walks the legacy category tree from the root and builds
// the target hierarchy, creating the Lost & Found category for broken
// events when requested.
type CategoriesStep struct {
	env *Env
	log *logger.StepLogger
}

func NewCategoriesStep(env *Env) *CategoriesStep {
	return &CategoriesStep{env: env, log: logger.Step("categories")}
}

func (s *CategoriesStep) Name() string { return "categories" }

func (s *CategoriesStep) Run(ctx context.Context) error {
	cats, children, err := s.loadTree(ctx)
	if err != nil {
		return err
	}
	root, ok := cats[rootCategoryID]
	if !ok {
		return fmt.Errorf("legacy store has no root category")
	}

	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		repo := postgres.NewCategoryRepository(tx)
		rootID, err := s.migrateCategory(ctx, repo, root, nil, 1, cats, children)
		if err != nil {
			return err
		}
		if s.env.Opts.MigrateBrokenEvents {
			lost := domain.Category{
				ParentID:   &rootID,
				Title:      "Lost & Found",
				Protection: domain.ProtectionProtected,
				LegacyID:   "lostandfound",
			}
			if err := repo.Create(ctx, &lost); err != nil {
				return fmt.Errorf("lost & found category: %w", err)
			}
			s.env.NS.LostFoundCategory = lost.ID
			s.log.Infof("Created Lost & Found category %d for broken events", lost.ID)
		}
		return nil
	})
}

func (s *CategoriesStep) loadTree(ctx context.Context) (map[string]*source.Category, map[string][]*source.Category, error) {
	cur, err := s.env.Store.Collection(source.CollCategories).Iter(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	cats := map[string]*source.Category{}
	children := map[string][]*source.Category{}
	for cur.Next(ctx) {
		var cat source.Category
		if err := cur.Decode(&cat); err != nil {
			s.log.Warnf("Skipping undecodable category record: %v", err)
			continue
		}
		c := cat
		cats[c.ID] = &c
		if c.ID != rootCategoryID {
			children[c.ParentID] = append(children[c.ParentID], &c)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, nil, err
	}

	for _, siblings := range children {
		sort.SliceStable(siblings, func(i, j int) bool {
			if siblings[i].Order != siblings[j].Order {
				return siblings[i].Order < siblings[j].Order
			}
			return siblings[i].ID < siblings[j].ID
		})
	}
	return cats, children, nil
}

func (s *CategoriesStep) migrateCategory(ctx context.Context, repo *postgres.CategoryRepository, legacy *source.Category, parentID *int, position int, cats map[string]*source.Category, children map[string][]*source.Category) (int, error) {
	cat := domain.Category{
		ParentID:                parentID,
		Title:                   sanitize.Title(legacy.Title),
		Description:             sanitize.Text(legacy.Description),
		Position:                position,
		Protection:              categoryProtection(legacy),
		EventCreationRestricted: legacy.ConfCreationRestricted,
		NoAccessContact:         sanitize.Text(legacy.ContactInfo),
		LegacyID:                legacy.ID,
	}
	if cat.Title == "" {
		cat.Title = "(no title)"
		s.log.Warnf("Category %s has no title", legacy.ID)
	}
	if err := repo.Create(ctx, &cat); err != nil {
		return 0, fmt.Errorf("category %s: %w", legacy.ID, err)
	}
	s.env.NS.CategoryByLegacyID[legacy.ID] = cat.ID

	for _, manager := range legacy.Managers {
		uid, ok := s.env.resolveUser(manager)
		if !ok {
			s.log.Debugf("Category %s manager (%s %s) could not be resolved", legacy.ID, manager.Kind, manager.ID)
			continue
		}
		if err := repo.AddManager(ctx, cat.ID, uid); err != nil {
			return 0, fmt.Errorf("category %s manager: %w", legacy.ID, err)
		}
	}

	for i, child := range children[legacy.ID] {
		if _, err := s.migrateCategory(ctx, repo, child, &cat.ID, i+1, cats, children); err != nil {
			return 0, err
		}
	}
	return cat.ID, nil
}

// categoryProtection converts the legacy access-controller value. The root
// category cannot inherit from anything and becomes public.
func categoryProtection(legacy *source.Category) string {
	switch {
	case legacy.Protection == -1:
		return domain.ProtectionPublic
	case legacy.Protection == 1:
		return domain.ProtectionProtected
	case legacy.ID == rootCategoryID:
		return domain.ProtectionPublic
	default:
		return domain.ProtectionInheriting
	}
}
