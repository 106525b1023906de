package repositories

import (
	"context"
	"errors"

	. "musiclabel/internal/models"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ReleaseSortNewest      = "newest"
	ReleaseSortOldest      = "oldest"
	ReleaseSortTitle       = "title"
	ReleaseSortReleaseDate = "release_date"
)

var ReleaseSorts = []string{
	ReleaseSortNewest,
	ReleaseSortOldest,
	ReleaseSortTitle,
	ReleaseSortReleaseDate,
}

var releaseOrders = map[string]string{
	ReleaseSortNewest:      "created_at DESC, id DESC",
	ReleaseSortOldest:      "created_at ASC, id ASC",
	ReleaseSortTitle:       "title ASC, id ASC",
	ReleaseSortReleaseDate: "release_date DESC, id DESC",
}

type ReleaseFilter struct {
	ArtistID *int
	Type     string
}

type ReleaseRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter ReleaseFilter,
	) (types.PaginatedResult[*Release], error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Release, error)
	GetWithArtist(ctx context.Context, tx *gorm.DB, id int) (*Release, error)
	TitleExistsForArtist(
		ctx context.Context,
		tx *gorm.DB,
		artistID int,
		title string,
		excludeID int,
	) (bool, error)
	ListIDsByArtist(ctx context.Context, tx *gorm.DB, artistID int) ([]int, error)
	Create(ctx context.Context, tx *gorm.DB, release *Release) error
	Update(ctx context.Context, tx *gorm.DB, release *Release) error
	UpdateCover(ctx context.Context, tx *gorm.DB, id int, coverURL *string, sizes map[string]string) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type releaseRepository struct {
	log logger.Logger
}

func NewReleaseRepository() ReleaseRepository {
	return &releaseRepository{
		log: logger.New("releaseRepository"),
	}
}

func releaseTitleConflict() *types.AppError {
	return types.NewConflictError("Release with this title already exists for this artist")
}

func (r *releaseRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter ReleaseFilter,
) (types.PaginatedResult[*Release], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&Release{}).
		Scopes(search(params.Search, "title", "description"))

	if filter.ArtistID != nil {
		query = query.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	result, err := paginate[*Release](
		ctx,
		query,
		params,
		orderFor(releaseOrders, params.Sort, ReleaseSortNewest),
		"Artist",
	)
	if err != nil {
		return result, log.Err("failed to list releases", err, "params", params, "filter", filter)
	}

	return result, nil
}

func (r *releaseRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Release, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var release Release
	if err := tx.WithContext(ctx).First(&release, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Release")
		}
		return nil, log.Err("failed to get release", err, "id", id)
	}

	return &release, nil
}

func (r *releaseRepository) GetWithArtist(ctx context.Context, tx *gorm.DB, id int) (*Release, error) {
	log := r.log.TraceFromContext(ctx).Function("GetWithArtist")

	var release Release
	if err := tx.WithContext(ctx).Preload("Artist").First(&release, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Release")
		}
		return nil, log.Err("failed to get release with artist", err, "id", id)
	}

	return &release, nil
}

func (r *releaseRepository) TitleExistsForArtist(
	ctx context.Context,
	tx *gorm.DB,
	artistID int,
	title string,
	excludeID int,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("TitleExistsForArtist")

	found, err := exists(
		ctx,
		tx,
		&Release{},
		"artist_id = ? AND title = ? AND id <> ?",
		artistID,
		title,
		excludeID,
	)
	if err != nil {
		return false, log.Err("failed to check release title", err, "artistID", artistID, "title", title)
	}

	return found, nil
}

func (r *releaseRepository) ListIDsByArtist(ctx context.Context, tx *gorm.DB, artistID int) ([]int, error) {
	log := r.log.TraceFromContext(ctx).Function("ListIDsByArtist")

	var ids []int
	if err := tx.WithContext(ctx).
		Model(&Release{}).
		Where("artist_id = ?", artistID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, log.Err("failed to list release ids", err, "artistID", artistID)
	}

	return ids, nil
}

func (r *releaseRepository) Create(ctx context.Context, tx *gorm.DB, release *Release) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(release).Error; err != nil {
		if appErr := constraintError(err, releaseTitleConflict(), "Artist"); appErr != nil {
			return appErr
		}
		return log.Err("failed to create release", err, "title", release.Title)
	}

	return nil
}

func (r *releaseRepository) Update(ctx context.Context, tx *gorm.DB, release *Release) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(release).Error; err != nil {
		if appErr := constraintError(err, releaseTitleConflict(), "Artist"); appErr != nil {
			return appErr
		}
		return log.Err("failed to update release", err, "id", release.ID)
	}

	return nil
}

func (r *releaseRepository) UpdateCover(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	coverURL *string,
	sizes map[string]string,
) error {
	log := r.log.TraceFromContext(ctx).Function("UpdateCover")

	result := tx.WithContext(ctx).
		Model(&Release{BaseModel: BaseModel{ID: id}}).
		Updates(map[string]any{
			"cover_art_url":   coverURL,
			"cover_art_sizes": NewStringMap(sizes),
		})
	if result.Error != nil {
		return log.Err("failed to update release cover", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Release")
	}

	return nil
}

func (r *releaseRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Release{}, id)
	if result.Error != nil {
		return log.Err("failed to delete release", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Release")
	}

	return nil
}
