package news

import (
	"context"
	"errors"
	"fmt"

	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const articleColumns = `id::text, title, date, description, category, category_type, slug, image, created_at`

var _ newsRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns all articles, newest first
func (r *Repo) List(ctx context.Context) ([]Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+articleColumns+` FROM news ORDER BY created_at DESC, id DESC;`,
	)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	articles := make([]Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(articles)))
	return articles, nil
}

func (r *Repo) Add(ctx context.Context, article Article) (*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.add")
	defer span.End()

	if !article.hasContent() {
		return nil, ErrMissingFields
	}

	id := uuid.New()
	span.SetAttributes(attribute.String("id", id.String()))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO news (id, title, date, description, category, category_type, slug, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+articleColumns+`;`,
		id.String(), article.Title, article.Date, article.Description,
		article.Category, article.CategoryType, article.Slug, article.Image,
	)

	created, err := scanArticle(row)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert news article: %w", err)
	}

	return created, nil
}

// Update replaces all editable fields of the article. The fields are not
// checked for presence, unlike in Add.
func (r *Repo) Update(ctx context.Context, id string, article Article) (*Article, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.update")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrArticleNotFound
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE news
			SET title = $1, date = $2, description = $3, category = $4, category_type = $5, slug = $6, image = $7
			WHERE id = $8
			RETURNING `+articleColumns+`;`,
		article.Title, article.Date, article.Description,
		article.Category, article.CategoryType, article.Slug, article.Image,
		id,
	)

	updated, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) || pkg.IsInvalidTextRepresentationError(err) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update news article %s: %w", id, err)
	}

	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.delete")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	if _, err := uuid.Parse(id); err != nil {
		return ErrArticleNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if pkg.IsInvalidTextRepresentationError(err) {
		return ErrArticleNotFound
	}
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete news article %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}

	return nil
}

func scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Date,
		&a.Description,
		&a.Category,
		&a.CategoryType,
		&a.Slug,
		&a.Image,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
