package repositories

import (
	"context"
	"errors"
	"time"

	. "musiclabel/internal/models"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ArtistSortNewest = "newest"
	ArtistSortOldest = "oldest"
	ArtistSortName   = "name"
)

var ArtistSorts = []string{ArtistSortNewest, ArtistSortOldest, ArtistSortName}

var artistOrders = map[string]string{
	ArtistSortNewest: "created_at DESC, id DESC",
	ArtistSortOldest: "created_at ASC, id ASC",
	ArtistSortName:   "name ASC, created_at DESC, id DESC",
}

type ArtistFilter struct {
	Featured *bool
}

type ArtistRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter ArtistFilter,
	) (types.PaginatedResult[*Artist], error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error)
	GetWithRelations(ctx context.Context, tx *gorm.DB, id int, now time.Time) (*Artist, error)
	GetFeatured(ctx context.Context, tx *gorm.DB) ([]*Artist, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID int) (bool, error)
	CountFeatured(ctx context.Context, tx *gorm.DB, excludeID int) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, artist *Artist) error
	Update(ctx context.Context, tx *gorm.DB, artist *Artist) error
	UpdateImage(ctx context.Context, tx *gorm.DB, id int, imageURL *string, sizes map[string]string) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type artistRepository struct {
	log logger.Logger
}

func NewArtistRepository() ArtistRepository {
	return &artistRepository{
		log: logger.New("artistRepository"),
	}
}

func artistNameConflict() *types.AppError {
	return types.NewConflictError("Artist with this name already exists")
}

func (r *artistRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter ArtistFilter,
) (types.PaginatedResult[*Artist], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&Artist{}).
		Scopes(search(params.Search, "name", "bio"))

	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	result, err := paginate[*Artist](ctx, query, params, orderFor(artistOrders, params.Sort, ArtistSortNewest))
	if err != nil {
		return result, log.Err("failed to list artists", err, "params", params)
	}

	return result, nil
}

func (r *artistRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var artist Artist
	if err := tx.WithContext(ctx).First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Artist")
		}
		return nil, log.Err("failed to get artist", err, "id", id)
	}

	return &artist, nil
}

func (r *artistRepository) GetWithRelations(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	now time.Time,
) (*Artist, error) {
	log := r.log.TraceFromContext(ctx).Function("GetWithRelations")

	var artist Artist
	err := tx.WithContext(ctx).
		Preload("Releases", func(db *gorm.DB) *gorm.DB {
			return db.Order("release_date DESC, id DESC")
		}).
		Preload("Concerts", func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ?", now).Order("date ASC, id ASC")
		}).
		First(&artist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Artist")
		}
		return nil, log.Err("failed to get artist with relations", err, "id", id)
	}

	return &artist, nil
}

func (r *artistRepository) GetFeatured(ctx context.Context, tx *gorm.DB) ([]*Artist, error) {
	log := r.log.TraceFromContext(ctx).Function("GetFeatured")

	artists := make([]*Artist, 0, MaxFeaturedArtists)
	if err := tx.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC, id DESC").
		Find(&artists).Error; err != nil {
		return nil, log.Err("failed to get featured artists", err)
	}

	return artists, nil
}

// NameExists is case-sensitive; excludeID lets an artist keep its own name on update.
func (r *artistRepository) NameExists(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	excludeID int,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("NameExists")

	found, err := exists(ctx, tx, &Artist{}, "name = ? AND id <> ?", name, excludeID)
	if err != nil {
		return false, log.Err("failed to check artist name", err, "name", name)
	}

	return found, nil
}

func (r *artistRepository) CountFeatured(ctx context.Context, tx *gorm.DB, excludeID int) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("CountFeatured")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Artist{}).
		Where("is_featured = ? AND id <> ?", true, excludeID).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count featured artists", err)
	}

	return count, nil
}

func (r *artistRepository) Create(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(artist).Error; err != nil {
		if appErr := constraintError(err, artistNameConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to create artist", err, "name", artist.Name)
	}

	return nil
}

func (r *artistRepository) Update(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(artist).Error; err != nil {
		if appErr := constraintError(err, artistNameConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to update artist", err, "id", artist.ID)
	}

	return nil
}

func (r *artistRepository) UpdateImage(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	imageURL *string,
	sizes map[string]string,
) error {
	log := r.log.TraceFromContext(ctx).Function("UpdateImage")

	result := tx.WithContext(ctx).
		Model(&Artist{BaseModel: BaseModel{ID: id}}).
		Updates(map[string]any{
			"image_url":   imageURL,
			"image_sizes": NewStringMap(sizes),
		})
	if result.Error != nil {
		return log.Err("failed to update artist image", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Artist")
	}

	return nil
}

func (r *artistRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Artist{}, id)
	if result.Error != nil {
		return log.Err("failed to delete artist", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Artist")
	}

	return nil
}
