package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the typed statements used by the application.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const accountColumns = `id, email, password_hash, plan, created_at`

func scanAccount(row interface{ Scan(...any) error }) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Plan, &a.CreatedAt)
	return a, err
}

type CreateAccountParams struct {
	Email        string
	PasswordHash string
	Plan         string
}

const createAccount = `
INSERT INTO accounts (email, password_hash, plan)
VALUES (?, ?, ?)
RETURNING ` + accountColumns

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, createAccount, arg.Email, arg.PasswordHash, arg.Plan))
}

const getAccount = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

func (q *Queries) GetAccount(ctx context.Context, id int64) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccount, id))
}

const getAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`

func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByEmail, email))
}

type UpdateAccountPlanParams struct {
	ID   int64
	Plan string
}

const updateAccountPlan = `
UPDATE accounts SET plan = ?
WHERE id = ?
RETURNING ` + accountColumns

func (q *Queries) UpdateAccountPlan(ctx context.Context, arg UpdateAccountPlanParams) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, updateAccountPlan, arg.Plan, arg.ID))
}

type CreateDescriptionParams struct {
	AccountID       int64
	ProductName     string
	Category        string
	Tone            string
	Keywords        string
	Size            string
	TemplateID      string
	IncludeHashtags bool
	IncludeSpecs    bool
	Output          string
	Format          string
	CreatedAt       time.Time
}

const createDescription = `
INSERT INTO descriptions (
    account_id, product_name, category, tone, keywords, size, template_id,
    include_hashtags, include_specs, output, format, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateDescription(ctx context.Context, arg CreateDescriptionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createDescription,
		arg.AccountID,
		arg.ProductName,
		arg.Category,
		arg.Tone,
		arg.Keywords,
		arg.Size,
		arg.TemplateID,
		arg.IncludeHashtags,
		arg.IncludeSpecs,
		arg.Output,
		arg.Format,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type ListDescriptionsParams struct {
	AccountID int64
	Limit     int64
}

const descriptionColumns = `id, account_id, product_name, category, tone, keywords, size, template_id,
       include_hashtags, include_specs, output, format, created_at`

func scanDescription(row interface{ Scan(...any) error }) (Description, error) {
	var d Description
	err := row.Scan(
		&d.ID,
		&d.AccountID,
		&d.ProductName,
		&d.Category,
		&d.Tone,
		&d.Keywords,
		&d.Size,
		&d.TemplateID,
		&d.IncludeHashtags,
		&d.IncludeSpecs,
		&d.Output,
		&d.Format,
		&d.CreatedAt,
	)
	return d, err
}

const listDescriptions = `
SELECT ` + descriptionColumns + `
FROM descriptions
WHERE account_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListDescriptions(ctx context.Context, arg ListDescriptionsParams) ([]Description, error) {
	rows, err := q.db.QueryContext(ctx, listDescriptions, arg.AccountID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Description
	for rows.Next() {
		d, err := scanDescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

type GetDescriptionParams struct {
	ID        int64
	AccountID int64
}

const getDescription = `
SELECT ` + descriptionColumns + `
FROM descriptions
WHERE id = ? AND account_id = ?`

func (q *Queries) GetDescription(ctx context.Context, arg GetDescriptionParams) (Description, error) {
	return scanDescription(q.db.QueryRowContext(ctx, getDescription, arg.ID, arg.AccountID))
}

const listDescriptionFacets = `
SELECT category, template_id FROM descriptions
WHERE account_id = ?
ORDER BY id`

// ListDescriptionFacets returns category and template of every description in
// insertion order.
func (q *Queries) ListDescriptionFacets(ctx context.Context, accountID int64) ([]DescriptionFacet, error) {
	rows, err := q.db.QueryContext(ctx, listDescriptionFacets, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DescriptionFacet
	for rows.Next() {
		var f DescriptionFacet
		if err := rows.Scan(&f.Category, &f.TemplateID); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

const countDescriptions = `SELECT COUNT(*) FROM descriptions WHERE account_id = ?`

func (q *Queries) CountDescriptions(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countDescriptions, accountID).Scan(&count)
	return count, err
}

const deleteDescriptions = `DELETE FROM descriptions WHERE account_id = ?`

func (q *Queries) DeleteDescriptions(ctx context.Context, accountID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteDescriptions, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countDescriptionsByCategory = `
SELECT category, COUNT(*) FROM descriptions
WHERE account_id = ?
GROUP BY category
ORDER BY COUNT(*) DESC, MIN(id)`

func (q *Queries) CountDescriptionsByCategory(ctx context.Context, accountID int64) ([]ValueCount, error) {
	return q.valueCounts(ctx, countDescriptionsByCategory, accountID)
}

const countDescriptionsByTemplate = `
SELECT template_id, COUNT(*) FROM descriptions
WHERE account_id = ?
GROUP BY template_id
ORDER BY COUNT(*) DESC, MIN(id)`

func (q *Queries) CountDescriptionsByTemplate(ctx context.Context, accountID int64) ([]ValueCount, error) {
	return q.valueCounts(ctx, countDescriptionsByTemplate, accountID)
}

func (q *Queries) valueCounts(ctx context.Context, query string, accountID int64) ([]ValueCount, error) {
	rows, err := q.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ValueCount
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, err
		}
		items = append(items, vc)
	}
	return items, rows.Err()
}

type UpsertAnalyticsParams struct {
	AccountID         int64
	TotalDescriptions int64
	MostUsedCategory  string
	MostUsedTemplate  string
	LastActivity      time.Time
}

const upsertAnalytics = `
INSERT INTO analytics (account_id, total_descriptions, most_used_category, most_used_template, last_activity)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (account_id) DO UPDATE SET
    total_descriptions = excluded.total_descriptions,
    most_used_category = excluded.most_used_category,
    most_used_template = excluded.most_used_template,
    last_activity = excluded.last_activity`

func (q *Queries) UpsertAnalytics(ctx context.Context, arg UpsertAnalyticsParams) error {
	_, err := q.db.ExecContext(ctx, upsertAnalytics,
		arg.AccountID,
		arg.TotalDescriptions,
		arg.MostUsedCategory,
		arg.MostUsedTemplate,
		arg.LastActivity,
	)
	return err
}

const getAnalytics = `
SELECT account_id, total_descriptions, most_used_category, most_used_template, last_activity
FROM analytics WHERE account_id = ?`

func (q *Queries) GetAnalytics(ctx context.Context, accountID int64) (Analytics, error) {
	var a Analytics
	err := q.db.QueryRowContext(ctx, getAnalytics, accountID).Scan(
		&a.AccountID,
		&a.TotalDescriptions,
		&a.MostUsedCategory,
		&a.MostUsedTemplate,
		&a.LastActivity,
	)
	return a, err
}

const deleteAnalytics = `DELETE FROM analytics WHERE account_id = ?`

func (q *Queries) DeleteAnalytics(ctx context.Context, accountID int64) error {
	_, err := q.db.ExecContext(ctx, deleteAnalytics, accountID)
	return err
}
