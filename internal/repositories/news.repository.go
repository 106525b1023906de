package repositories

import (
	"context"
	"errors"
	"time"

	. "musiclabel/internal/models"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	NewsSortNewest = "newest"
	NewsSortOldest = "oldest"
	NewsSortTitle  = "title"
)

var NewsSorts = []string{NewsSortNewest, NewsSortOldest, NewsSortTitle}

var newsOrders = map[string]string{
	NewsSortNewest: "created_at DESC, id DESC",
	NewsSortOldest: "created_at ASC, id ASC",
	NewsSortTitle:  "title ASC, id ASC",
}

type NewsFilter struct {
	Status NewsStatus
}

type NewsRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter NewsFilter,
	) (types.PaginatedResult[*News], error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*News, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*News, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string, excludeID int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, news *News) error
	Update(ctx context.Context, tx *gorm.DB, news *News) error
	SetPublishedAt(ctx context.Context, tx *gorm.DB, id int, publishedAt *time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type newsRepository struct {
	log logger.Logger
}

func NewNewsRepository() NewsRepository {
	return &newsRepository{
		log: logger.New("newsRepository"),
	}
}

func newsSlugConflict() *types.AppError {
	return types.NewConflictError("News article with this slug already exists")
}

func (r *newsRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter NewsFilter,
) (types.PaginatedResult[*News], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&News{}).
		Scopes(search(params.Search, "title", "content", "author"))

	switch filter.Status {
	case NewsStatusPublished:
		query = query.Where("published_at IS NOT NULL")
	case NewsStatusDraft:
		query = query.Where("published_at IS NULL")
	}

	result, err := paginate[*News](ctx, query, params, orderFor(newsOrders, params.Sort, NewsSortNewest))
	if err != nil {
		return result, log.Err("failed to list news", err, "params", params, "status", filter.Status)
	}

	return result, nil
}

func (r *newsRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*News, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var news News
	if err := tx.WithContext(ctx).First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("News article")
		}
		return nil, log.Err("failed to get news", err, "id", id)
	}

	return &news, nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*News, error) {
	log := r.log.TraceFromContext(ctx).Function("GetBySlug")

	var news News
	if err := tx.WithContext(ctx).Where("slug = ?", slug).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("News article")
		}
		return nil, log.Err("failed to get news by slug", err, "slug", slug)
	}

	return &news, nil
}

func (r *newsRepository) SlugExists(
	ctx context.Context,
	tx *gorm.DB,
	slug string,
	excludeID int,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("SlugExists")

	found, err := exists(ctx, tx, &News{}, "slug = ? AND id <> ?", slug, excludeID)
	if err != nil {
		return false, log.Err("failed to check news slug", err, "slug", slug)
	}

	return found, nil
}

func (r *newsRepository) Create(ctx context.Context, tx *gorm.DB, news *News) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(news).Error; err != nil {
		if appErr := constraintError(err, newsSlugConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to create news", err, "slug", news.Slug)
	}

	return nil
}

func (r *newsRepository) Update(ctx context.Context, tx *gorm.DB, news *News) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(news).Error; err != nil {
		if appErr := constraintError(err, newsSlugConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to update news", err, "id", news.ID)
	}

	return nil
}

func (r *newsRepository) SetPublishedAt(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	publishedAt *time.Time,
) error {
	log := r.log.TraceFromContext(ctx).Function("SetPublishedAt")

	result := tx.WithContext(ctx).
		Model(&News{BaseModel: BaseModel{ID: id}}).
		Update("published_at", publishedAt)
	if result.Error != nil {
		return log.Err("failed to set news published at", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("News article")
	}

	return nil
}

func (r *newsRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&News{}, id)
	if result.Error != nil {
		return log.Err("failed to delete news", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("News article")
	}

	return nil
}
