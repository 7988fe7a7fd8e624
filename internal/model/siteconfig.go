package model

// SiteConfig is a singleton row holding the landing-page branding. It is
// created lazily with defaults the first time anything reads it.
type SiteConfig struct {
	ID           int64  `json:"id"`
	HeroImage    string `json:"hero_image"`
	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
}
