package concertController

import (
	"context"
	"strings"
	"time"

	"musiclabel/config"
	"musiclabel/internal/database"
	. "musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/services"
	"musiclabel/internal/types"
	"musiclabel/internal/utils"
	"musiclabel/internal/validate"

	logger "github.com/Bparsons0904/goLogger"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

type CreateConcertRequest struct {
	ArtistID   int     `json:"artistId"`
	Venue      string  `json:"venue"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Date       string  `json:"date"`
	Time       *string `json:"time"`
	TicketLink *string `json:"ticketLink"`
	Notes      *string `json:"notes"`
}

type UpdateConcertRequest struct {
	ArtistID   *int    `json:"artistId"`
	Venue      *string `json:"venue"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	TicketLink *string `json:"ticketLink"`
	Notes      *string `json:"notes"`
}

func (r *CreateConcertRequest) Defaults() {
	r.Venue = strings.TrimSpace(r.Venue)
	r.City = strings.TrimSpace(r.City)
	r.Country = strings.TrimSpace(r.Country)
	r.Date = strings.TrimSpace(r.Date)
	trimOptional(r.Time, r.TicketLink, r.Notes)
}

// Validate rejects concerts that have already started. A bare date counts as
// the whole day.
func (r CreateConcertRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistID, validation.Required, validation.Min(1)),
		validation.Field(&r.Venue, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Country, validation.Required, validation.Length(1, 100)),
		validation.Field(
			&r.Date,
			validation.Required,
			validate.Date,
			validate.NotInPast(now),
		),
		validation.Field(&r.Time, validate.TimeOfDay),
		validation.Field(&r.TicketLink, validate.URL...),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}

func (r *UpdateConcertRequest) Defaults() {
	trimOptional(r.Venue, r.City, r.Country, r.Date, r.Time, r.TicketLink, r.Notes)
}

// Validate only checks the date against today when the update carries one, so
// concerts that have since passed can still be edited.
func (r UpdateConcertRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.Venue, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.City, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Country, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(
			&r.Date,
			validation.NilOrNotEmpty,
			validate.Date,
			validate.NotInPast(now),
		),
		validation.Field(&r.Time, validate.TimeOfDay),
		validation.Field(&r.TicketLink, validate.URL...),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}

func trimOptional(values ...*string) {
	for _, value := range values {
		if value != nil {
			*value = strings.TrimSpace(*value)
		}
	}
}

// emptyToNil lets clients clear optional text fields by sending "".
func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

type ConcertController struct {
	concertRepo        repositories.ConcertRepository
	artistRepo         repositories.ArtistRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type ConcertControllerInterface interface {
	ListConcerts(
		ctx context.Context,
		params types.ListParams,
		filter ConcertFilter,
	) (types.PaginatedResult[*Concert], error)
	GetUpcomingConcerts(ctx context.Context, limit int) ([]*Concert, error)
	GetConcert(ctx context.Context, id int) (*Concert, error)
	CreateConcert(ctx context.Context, request CreateConcertRequest) (*Concert, error)
	UpdateConcert(ctx context.Context, id int, request UpdateConcertRequest) (*Concert, error)
	DeleteConcert(ctx context.Context, id int) error
}

type ConcertFilter struct {
	ArtistID *int
	Upcoming *bool
	City     string
	Country  string
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ConcertControllerInterface {
	return &ConcertController{
		concertRepo:        repos.Concert,
		artistRepo:         repos.Artist,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("concertController"),
		now:                time.Now,
	}
}

func (c *ConcertController) ListConcerts(
	ctx context.Context,
	params types.ListParams,
	filter ConcertFilter,
) (types.PaginatedResult[*Concert], error) {
	return c.concertRepo.List(ctx, c.db.SQL, params, repositories.ConcertFilter{
		ArtistID: filter.ArtistID,
		Upcoming: filter.Upcoming,
		City:     strings.TrimSpace(filter.City),
		Country:  strings.TrimSpace(filter.Country),
		Now:      utils.StartOfDay(c.now()),
	})
}

func (c *ConcertController) GetUpcomingConcerts(ctx context.Context, limit int) ([]*Concert, error) {
	if limit < 1 || limit > types.MaxLimit {
		return nil, validate.Failed("limit", "must be an integer between 1 and 100")
	}
	return c.concertRepo.GetUpcoming(ctx, c.db.SQL, utils.StartOfDay(c.now()), limit)
}

func (c *ConcertController) GetConcert(ctx context.Context, id int) (*Concert, error) {
	return c.concertRepo.GetWithArtist(ctx, c.db.SQL, id)
}

func (c *ConcertController) CreateConcert(
	ctx context.Context,
	request CreateConcertRequest,
) (*Concert, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateConcert")

	request.Defaults()
	if err := request.Validate(c.now()); err != nil {
		return nil, validate.FromError(err)
	}

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		return nil, validate.Failed("date", err.Error())
	}

	concert := &Concert{
		ArtistID:   request.ArtistID,
		Venue:      request.Venue,
		City:       request.City,
		Country:    request.Country,
		Date:       date,
		Time:       emptyToNil(request.Time),
		TicketLink: emptyToNil(request.TicketLink),
		Notes:      emptyToNil(request.Notes),
	}

	var created *Concert
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.artistRepo.GetByID(ctx, tx, concert.ArtistID); err != nil {
			return err
		}

		if err := c.concertRepo.Create(ctx, tx, concert); err != nil {
			return err
		}

		var err error
		created, err = c.concertRepo.GetWithArtist(ctx, tx, concert.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Concert created", "concertID", created.ID, "artistID", created.ArtistID)

	return created, nil
}

func (c *ConcertController) UpdateConcert(
	ctx context.Context,
	id int,
	request UpdateConcertRequest,
) (*Concert, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateConcert")

	var updated *Concert
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.concertRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		request.Defaults()
		if err := request.Validate(c.now()); err != nil {
			return validate.FromError(err)
		}

		if request.ArtistID != nil && *request.ArtistID != existing.ArtistID {
			if _, err := c.artistRepo.GetByID(ctx, tx, *request.ArtistID); err != nil {
				return err
			}
		}

		if err := applyConcertUpdate(existing, request); err != nil {
			return err
		}

		if err := c.concertRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		updated, err = c.concertRepo.GetWithArtist(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Concert updated", "concertID", id)

	return updated, nil
}

func applyConcertUpdate(concert *Concert, request UpdateConcertRequest) error {
	if request.ArtistID != nil {
		concert.ArtistID = *request.ArtistID
	}
	if request.Venue != nil {
		concert.Venue = *request.Venue
	}
	if request.City != nil {
		concert.City = *request.City
	}
	if request.Country != nil {
		concert.Country = *request.Country
	}
	if request.Date != nil {
		date, err := utils.ParseDate(*request.Date)
		if err != nil {
			return validate.Failed("date", err.Error())
		}
		concert.Date = date
	}
	if request.Time != nil {
		concert.Time = emptyToNil(request.Time)
	}
	if request.TicketLink != nil {
		concert.TicketLink = emptyToNil(request.TicketLink)
	}
	if request.Notes != nil {
		concert.Notes = emptyToNil(request.Notes)
	}
	return nil
}

func (c *ConcertController) DeleteConcert(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteConcert")

	if err := c.concertRepo.Delete(ctx, c.db.SQL, id); err != nil {
		return err
	}

	log.Info("Concert deleted", "concertID", id)

	return nil
}
