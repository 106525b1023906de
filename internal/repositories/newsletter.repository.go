package repositories

import (
	"context"
	"errors"

	. "musiclabel/internal/models"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	SubscriberSortNewest = "newest"
	SubscriberSortOldest = "oldest"
)

var SubscriberSorts = []string{SubscriberSortNewest, SubscriberSortOldest}

var subscriberOrders = map[string]string{
	SubscriberSortNewest: "subscribed_at DESC, id DESC",
	SubscriberSortOldest: "subscribed_at ASC, id ASC",
}

type SubscriberFilter struct {
	Active *bool
}

type NewsletterRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter SubscriberFilter,
	) (types.PaginatedResult[*NewsletterSubscriber], error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*NewsletterSubscriber, error)
	Create(ctx context.Context, tx *gorm.DB, subscriber *NewsletterSubscriber) error
	Update(ctx context.Context, tx *gorm.DB, subscriber *NewsletterSubscriber) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	Stats(ctx context.Context, tx *gorm.DB) (types.SubscriberStats, error)
}

type newsletterRepository struct {
	log logger.Logger
}

func NewNewsletterRepository() NewsletterRepository {
	return &newsletterRepository{
		log: logger.New("newsletterRepository"),
	}
}

func subscriberConflict() *types.AppError {
	return types.NewConflictError("Subscriber with this email already exists")
}

func (r *newsletterRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter SubscriberFilter,
) (types.PaginatedResult[*NewsletterSubscriber], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&NewsletterSubscriber{}).
		Scopes(search(params.Search, "email"))

	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	result, err := paginate[*NewsletterSubscriber](
		ctx,
		query,
		params,
		orderFor(subscriberOrders, params.Sort, SubscriberSortNewest),
	)
	if err != nil {
		return result, log.Err("failed to list subscribers", err, "params", params, "filter", filter)
	}

	return result, nil
}

func (r *newsletterRepository) GetByEmail(
	ctx context.Context,
	tx *gorm.DB,
	email string,
) (*NewsletterSubscriber, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByEmail")

	var subscriber NewsletterSubscriber
	if err := tx.WithContext(ctx).Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Subscriber")
		}
		return nil, log.Err("failed to get subscriber", err, "email", email)
	}

	return &subscriber, nil
}

func (r *newsletterRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	subscriber *NewsletterSubscriber,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(subscriber).Error; err != nil {
		if appErr := constraintError(err, subscriberConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to create subscriber", err, "email", subscriber.Email)
	}

	return nil
}

func (r *newsletterRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	subscriber *NewsletterSubscriber,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(subscriber).Error; err != nil {
		if appErr := constraintError(err, subscriberConflict(), ""); appErr != nil {
			return appErr
		}
		return log.Err("failed to update subscriber", err, "id", subscriber.ID)
	}

	return nil
}

func (r *newsletterRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&NewsletterSubscriber{}, id)
	if result.Error != nil {
		return log.Err("failed to delete subscriber", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Subscriber")
	}

	return nil
}

func (r *newsletterRepository) Stats(ctx context.Context, tx *gorm.DB) (types.SubscriberStats, error) {
	log := r.log.TraceFromContext(ctx).Function("Stats")

	var stats types.SubscriberStats
	if err := tx.WithContext(ctx).
		Model(&NewsletterSubscriber{}).
		Count(&stats.Total).Error; err != nil {
		return stats, log.Err("failed to count subscribers", err)
	}
	if err := tx.WithContext(ctx).
		Model(&NewsletterSubscriber{}).
		Where("is_active = ?", true).
		Count(&stats.Active).Error; err != nil {
		return stats, log.Err("failed to count active subscribers", err)
	}
	stats.Inactive = stats.Total - stats.Active

	return stats, nil
}
