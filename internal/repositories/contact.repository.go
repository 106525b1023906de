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
	ContactSortNewest = "newest"
	ContactSortOldest = "oldest"
)

var ContactSorts = []string{ContactSortNewest, ContactSortOldest}

var contactOrders = map[string]string{
	ContactSortNewest: "created_at DESC, id DESC",
	ContactSortOldest: "created_at ASC, id ASC",
}

type ContactFilter struct {
	Type      string
	Processed *bool
}

type ContactRepository interface {
	List(
		ctx context.Context,
		tx *gorm.DB,
		params types.ListParams,
		filter ContactFilter,
	) (types.PaginatedResult[*Contact], error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Contact, error)
	CountSince(ctx context.Context, tx *gorm.DB, email string, since time.Time) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, contact *Contact) error
	SetProcessed(ctx context.Context, tx *gorm.DB, id int, processed bool) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	Stats(ctx context.Context, tx *gorm.DB) (types.ContactStats, error)
}

type contactRepository struct {
	log logger.Logger
}

func NewContactRepository() ContactRepository {
	return &contactRepository{
		log: logger.New("contactRepository"),
	}
}

func (r *contactRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	params types.ListParams,
	filter ContactFilter,
) (types.PaginatedResult[*Contact], error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&Contact{}).
		Scopes(search(params.Search, "name", "email", "subject", "message"))

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Processed != nil {
		query = query.Where("processed = ?", *filter.Processed)
	}

	result, err := paginate[*Contact](ctx, query, params, orderFor(contactOrders, params.Sort, ContactSortNewest))
	if err != nil {
		return result, log.Err("failed to list contacts", err, "params", params, "filter", filter)
	}

	return result, nil
}

func (r *contactRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Contact, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var contact Contact
	if err := tx.WithContext(ctx).First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Contact")
		}
		return nil, log.Err("failed to get contact", err, "id", id)
	}

	return &contact, nil
}

// CountSince counts submissions stored under the normalized email at or after since.
func (r *contactRepository) CountSince(
	ctx context.Context,
	tx *gorm.DB,
	email string,
	since time.Time,
) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("CountSince")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Contact{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recent contacts", err, "email", email)
	}

	return count, nil
}

func (r *contactRepository) Create(ctx context.Context, tx *gorm.DB, contact *Contact) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(contact).Error; err != nil {
		return log.Err("failed to create contact", err, "email", contact.Email)
	}

	return nil
}

func (r *contactRepository) SetProcessed(ctx context.Context, tx *gorm.DB, id int, processed bool) error {
	log := r.log.TraceFromContext(ctx).Function("SetProcessed")

	result := tx.WithContext(ctx).
		Model(&Contact{BaseModel: BaseModel{ID: id}}).
		Update("processed", processed)
	if result.Error != nil {
		return log.Err("failed to set contact processed", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Contact")
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Contact{}, id)
	if result.Error != nil {
		return log.Err("failed to delete contact", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFoundError("Contact")
	}

	return nil
}

func (r *contactRepository) Stats(ctx context.Context, tx *gorm.DB) (types.ContactStats, error) {
	log := r.log.TraceFromContext(ctx).Function("Stats")

	stats := types.ContactStats{ByType: make(map[string]int64, len(ContactTypes))}
	for _, contactType := range ContactTypes {
		stats.ByType[contactType] = 0
	}

	var rows []struct {
		Type  string
		Count int64
	}
	if err := tx.WithContext(ctx).
		Model(&Contact{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error; err != nil {
		return stats, log.Err("failed to count contacts by type", err)
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
		stats.Total += row.Count
	}

	if err := tx.WithContext(ctx).
		Model(&Contact{}).
		Where("processed = ?", false).
		Count(&stats.Unprocessed).Error; err != nil {
		return stats, log.Err("failed to count unprocessed contacts", err)
	}

	return stats, nil
}
