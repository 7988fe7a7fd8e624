package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sazon/internal/model"
)

type SiteConfigService struct {
	db *sql.DB
}

func NewSiteConfigService(db *sql.DB) *SiteConfigService {
	return &SiteConfigService{db: db}
}

// Get returns the branding singleton, inserting the default row on first
// access.
func (s *SiteConfigService) Get(ctx context.Context) (*model.SiteConfig, error) {
	var c model.SiteConfig
	err := s.db.QueryRowContext(ctx,
		`SELECT id, hero_image, hero_title, hero_subtitle FROM site_config ORDER BY id LIMIT 1`,
	).Scan(&c.ID, &c.HeroImage, &c.HeroTitle, &c.HeroSubtitle)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO site_config DEFAULT VALUES RETURNING id, hero_image, hero_title, hero_subtitle`,
		).Scan(&c.ID, &c.HeroImage, &c.HeroTitle, &c.HeroSubtitle)
	}
	if err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}
	return &c, nil
}

// Update overwrites the branding fields that were provided; empty strings
// keep the stored values.
func (s *SiteConfigService) Update(ctx context.Context, title, subtitle, heroImage string) (*model.SiteConfig, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	var c model.SiteConfig
	err = s.db.QueryRowContext(ctx,
		`UPDATE site_config
		 SET hero_title = COALESCE(NULLIF($1, ''), hero_title),
		     hero_subtitle = COALESCE(NULLIF($2, ''), hero_subtitle),
		     hero_image = COALESCE(NULLIF($3, ''), hero_image)
		 WHERE id = $4
		 RETURNING id, hero_image, hero_title, hero_subtitle`,
		title, subtitle, heroImage, current.ID,
	).Scan(&c.ID, &c.HeroImage, &c.HeroTitle, &c.HeroSubtitle)
	if err != nil {
		return nil, fmt.Errorf("update site config: %w", err)
	}
	return &c, nil
}
