package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	. "musiclabel/internal/models"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ConcertSortDateAsc  = "date_asc"
	ConcertSortDateDesc = "date_desc"
	ConcertSortNewest   = "newest"
)

var ConcertSorts = []string{ConcertSortDateAsc, ConcertSortDateDesc, ConcertSortNewest}

var concertOrders = map[string]string{
	ConcertSortDateAsc:  "date ASC, id ASC",
	ConcertSortDateDesc: "date DESC, id DESC",
	ConcertSortNewest:   "created_at DESC, id DESC",
}

// ConcertFilter narrows concert listings. Upcoming compares against Now, a
// true value keeps concerts on or after it and false keeps earlier ones.
type ConcertFilter struct {
	ArtistID *int
	Upcoming *bool
	City     string
	Country  string
	Now      time.Time
}

type ConcertRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter ConcertFilter,
	) (types.PaginatedResult[*Concert], error)
	GetUpcoming(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]*Concert, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Concert, error)
	GetWithArtist(ctx context.Context, tx *gorm.DB, id int) (*Concert, error)
	Create(ctx context.Context, tx *gorm.DB, concert *Concert) error
	Update(ctx context.Context, tx *gorm.DB, concert *Concert) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type concertRepository struct {
	log logger.Logger
}

func NewConcertRepository() ConcertRepository {
	return &concertRepository{
		log: logger.New("concertRepository"),
	}
}

func (r *concertRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter ConcertFilter,
) (types.PaginatedResult[*Concert], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&Concert{}).
		Scopes(search(params.Search, "venue", "city", "country"))

	if filter.ArtistID != nil {
		query = query.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.Upcoming != nil {
		if *filter.Upcoming {
			query = query.Where("date >= ?", filter.Now)
		} else {
			query = query.Where("date < ?", filter.Now)
		}
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Country != "" {
		query = query.Where("LOWER(country) = ?", strings.ToLower(filter.Country))
	}

	result, err := paginate[*Concert](
		ctx,
		query,
		params,
		orderFor(concertOrders, params.Sort, ConcertSortDateAsc),
		"Artist",
	)
	if err != nil {
		return result, log.Err("failed to list concerts", err, "params", params, "filter", filter)
	}

	return result, nil
}

func (r *concertRepository) GetUpcoming(
	ctx context.Context,
	tx *gorm.DB,
	now time.Time,
	limit int,
) ([]*Concert, error) {
	log := r.log.TraceFromContext(ctx).Function("GetUpcoming")

	concerts := make([]*Concert, 0, limit)
	if err := tx.WithContext(ctx).
		Preload("Artist").
		Where("date >= ?", now).
		Order("date ASC, id ASC").
		Limit(limit).
		Find(&concerts).Error; err != nil {
		return nil, log.Err("failed to get upcoming concerts", err, "limit", limit)
	}

	return concerts, nil
}

func (r *concertRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Concert, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var concert Concert
	if err := tx.WithContext(ctx).First(&concert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Concert")
		}
		return nil, log.Err("failed to get concert", err, "id", id)
	}

	return &concert, nil
}

func (r *concertRepository) GetWithArtist(ctx context.Context, tx *gorm.DB, id int) (*Concert, error) {
	log := r.log.TraceFromContext(ctx).Function("GetWithArtist")

	var concert Concert
	if err := tx.WithContext(ctx).Preload("Artist").First(&concert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Concert")
		}
		return nil, log.Err("failed to get concert with artist", err, "id", id)
	}

	return &concert, nil
}

func (r *concertRepository) Create(ctx context.Context, tx *gorm.DB, concert *Concert) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(concert).Error; err != nil {
		if appErr := constraintError(err, nil, "Artist"); appErr != nil {
			return appErr
		}
		return log.Err("failed to create concert", err, "artistID", concert.ArtistID)
	}

	return nil
}

func (r *concertRepository) Update(ctx context.Context, tx *gorm.DB, concert *Concert) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(concert).Error; err != nil {
		if appErr := constraintError(err, nil, "Artist"); appErr != nil {
			return appErr
		}
		return log.Err("failed to update concert", err, "id", concert.ID)
	}

	return nil
}

func (r *concertRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Concert{}, id)
	if result.Error != nil {
		return log.Err("failed to delete concert", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Concert")
	}

	return nil
}
