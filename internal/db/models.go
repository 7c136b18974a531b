package db

import (
	"database/sql"
	"time"
)

type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
}

// Description is one persisted generation result.
type Description struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	ProductName     string    `json:"product_name"`
	Category        string    `json:"category"`
	Tone            string    `json:"tone"`
	Keywords        string    `json:"keywords"`
	Size            string    `json:"size"`
	TemplateID      string    `json:"template_id"`
	IncludeHashtags bool      `json:"include_hashtags"`
	IncludeSpecs    bool      `json:"include_specs"`
	Output          string    `json:"output"`
	Format          string    `json:"format"`
	CreatedAt       time.Time `json:"created_at"`
}

// Analytics is the per-account rollup maintained alongside descriptions.
type Analytics struct {
	AccountID         int64        `json:"account_id"`
	TotalDescriptions int64        `json:"total_descriptions"`
	MostUsedCategory  string       `json:"most_used_category"`
	MostUsedTemplate  string       `json:"most_used_template"`
	LastActivity      sql.NullTime `json:"-"`
}

// DescriptionFacet is the subset of a description used for rollups.
type DescriptionFacet struct {
	Category   string
	TemplateID string
}

// ValueCount is a grouped count row.
type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}
