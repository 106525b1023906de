package releaseController

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

var earliestReleaseDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

type CreateReleaseRequest struct {
	ArtistID       int               `json:"artistId"`
	Title          string            `json:"title"`
	Type           string            `json:"type"`
	ReleaseDate    string            `json:"releaseDate"`
	CoverArtURL    *string           `json:"coverArtUrl"`
	CoverArtAlt    *string           `json:"coverArtAlt"`
	CoverArtSizes  map[string]string `json:"coverArtSizes"`
	StreamingLinks map[string]string `json:"streamingLinks"`
	Description    *string           `json:"description"`
}

type UpdateReleaseRequest struct {
	ArtistID       *int              `json:"artistId"`
	Title          *string           `json:"title"`
	Type           *string           `json:"type"`
	ReleaseDate    *string           `json:"releaseDate"`
	CoverArtURL    *string           `json:"coverArtUrl"`
	CoverArtAlt    *string           `json:"coverArtAlt"`
	CoverArtSizes  map[string]string `json:"coverArtSizes"`
	StreamingLinks map[string]string `json:"streamingLinks"`
	Description    *string           `json:"description"`
}

func (r *CreateReleaseRequest) Defaults() {
	r.Title = strings.TrimSpace(r.Title)
	r.ReleaseDate = strings.TrimSpace(r.ReleaseDate)
	trimOptional(r.CoverArtURL, r.CoverArtAlt, r.Description)
	if r.Type == "" {
		r.Type = string(ReleaseTypeAlbum)
	}
}

// Validate bounds the release date to [1900-01-01, now + 2 years].
func (r CreateReleaseRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistID, validation.Required, validation.Min(1)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Type, validation.Required, validate.OneOf(ReleaseTypes)),
		validation.Field(
			&r.ReleaseDate,
			validation.Required,
			validate.Date,
			validate.DateBetween(earliestReleaseDate, now.AddDate(2, 0, 0)),
		),
		validation.Field(&r.CoverArtURL, validate.ImageURL),
		validation.Field(&r.CoverArtAlt, validation.Length(0, 255)),
		validation.Field(&r.CoverArtSizes, validate.AllowedKeys(ReleaseCoverVariants, validate.ImageURL)),
		validation.Field(&r.StreamingLinks, validate.AllowedKeys(ReleaseStreamingPlatforms, validate.Link...)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (r *UpdateReleaseRequest) Defaults() {
	trimOptional(r.Title, r.Type, r.ReleaseDate, r.CoverArtURL, r.CoverArtAlt, r.Description)
}

func (r UpdateReleaseRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Type, validation.NilOrNotEmpty, validate.OneOf(ReleaseTypes)),
		validation.Field(
			&r.ReleaseDate,
			validation.NilOrNotEmpty,
			validate.Date,
			validate.DateBetween(earliestReleaseDate, now.AddDate(2, 0, 0)),
		),
		validation.Field(&r.CoverArtURL, validate.ImageURL),
		validation.Field(&r.CoverArtAlt, validation.Length(0, 255)),
		validation.Field(&r.CoverArtSizes, validate.AllowedKeys(ReleaseCoverVariants, validate.ImageURL)),
		validation.Field(&r.StreamingLinks, validate.AllowedKeys(ReleaseStreamingPlatforms, validate.Link...)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func trimOptional(values ...*string) {
	for _, value := range values {
		if value != nil {
			*value = strings.TrimSpace(*value)
		}
	}
}

type ReleaseController struct {
	releaseRepo        repositories.ReleaseRepository
	artistRepo         repositories.ArtistRepository
	transactionService *services.TransactionService
	imageService       *services.ImageService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type ReleaseControllerInterface interface {
	ListReleases(
		ctx context.Context,
		params types.ListParams,
		artistID *int,
		releaseType string,
	) (types.PaginatedResult[*Release], error)
	GetRelease(ctx context.Context, id int) (*Release, error)
	CreateRelease(ctx context.Context, request CreateReleaseRequest) (*Release, error)
	UpdateRelease(ctx context.Context, id int, request UpdateReleaseRequest) (*Release, error)
	DeleteRelease(ctx context.Context, id int) error
	UploadReleaseCover(ctx context.Context, id int, data []byte) (*Release, error)
	DeleteReleaseCover(ctx context.Context, id int) (*Release, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ReleaseControllerInterface {
	return &ReleaseController{
		releaseRepo:        repos.Release,
		artistRepo:         repos.Artist,
		transactionService: services.Transaction,
		imageService:       services.Image,
		db:                 db,
		Config:             config,
		log:                logger.New("releaseController"),
		now:                time.Now,
	}
}

func titleConflictError() error {
	return types.NewConflictError("Release with this title already exists for this artist")
}

func (c *ReleaseController) ListReleases(
	ctx context.Context,
	params types.ListParams,
	artistID *int,
	releaseType string,
) (types.PaginatedResult[*Release], error) {
	return c.releaseRepo.List(ctx, c.db.SQL, params, repositories.ReleaseFilter{
		ArtistID: artistID,
		Type:     releaseType,
	})
}

func (c *ReleaseController) GetRelease(ctx context.Context, id int) (*Release, error) {
	return c.releaseRepo.GetWithArtist(ctx, c.db.SQL, id)
}

func (c *ReleaseController) CreateRelease(
	ctx context.Context,
	request CreateReleaseRequest,
) (*Release, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateRelease")

	request.Defaults()
	if err := request.Validate(c.now().UTC()); err != nil {
		return nil, validate.FromError(err)
	}

	releaseDate, err := utils.ParseDate(request.ReleaseDate)
	if err != nil {
		return nil, validate.Failed("releaseDate", err.Error())
	}

	release := &Release{
		ArtistID:       request.ArtistID,
		Title:          request.Title,
		Type:           ReleaseType(request.Type),
		ReleaseDate:    releaseDate,
		CoverArtURL:    request.CoverArtURL,
		CoverArtAlt:    request.CoverArtAlt,
		CoverArtSizes:  NewStringMap(request.CoverArtSizes),
		StreamingLinks: NewStringMap(request.StreamingLinks),
		Description:    request.Description,
	}

	var created *Release
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.artistRepo.GetByID(ctx, tx, release.ArtistID); err != nil {
			return err
		}

		taken, err := c.releaseRepo.TitleExistsForArtist(ctx, tx, release.ArtistID, release.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return titleConflictError()
		}

		if err := c.releaseRepo.Create(ctx, tx, release); err != nil {
			return err
		}

		created, err = c.releaseRepo.GetWithArtist(ctx, tx, release.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Release created", "releaseID", created.ID, "artistID", created.ArtistID)

	return created, nil
}

func (c *ReleaseController) UpdateRelease(
	ctx context.Context,
	id int,
	request UpdateReleaseRequest,
) (*Release, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateRelease")

	var updated *Release
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.releaseRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		request.Defaults()
		if err := request.Validate(c.now().UTC()); err != nil {
			return validate.FromError(err)
		}

		artistChanged := request.ArtistID != nil && *request.ArtistID != existing.ArtistID
		titleChanged := request.Title != nil && *request.Title != existing.Title

		if err := applyReleaseUpdate(existing, request); err != nil {
			return err
		}

		if artistChanged {
			if _, err := c.artistRepo.GetByID(ctx, tx, existing.ArtistID); err != nil {
				return err
			}
		}

		if artistChanged || titleChanged {
			taken, err := c.releaseRepo.TitleExistsForArtist(ctx, tx, existing.ArtistID, existing.Title, id)
			if err != nil {
				return err
			}
			if taken {
				return titleConflictError()
			}
		}

		if err := c.releaseRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		updated, err = c.releaseRepo.GetWithArtist(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Release updated", "releaseID", id)

	return updated, nil
}

func applyReleaseUpdate(release *Release, request UpdateReleaseRequest) error {
	if request.ArtistID != nil {
		release.ArtistID = *request.ArtistID
	}
	if request.Title != nil {
		release.Title = *request.Title
	}
	if request.Type != nil {
		release.Type = ReleaseType(*request.Type)
	}
	if request.ReleaseDate != nil {
		releaseDate, err := utils.ParseDate(*request.ReleaseDate)
		if err != nil {
			return validate.Failed("releaseDate", err.Error())
		}
		release.ReleaseDate = releaseDate
	}
	if request.CoverArtURL != nil {
		release.CoverArtURL = request.CoverArtURL
	}
	if request.CoverArtAlt != nil {
		release.CoverArtAlt = request.CoverArtAlt
	}
	if request.CoverArtSizes != nil {
		release.CoverArtSizes = NewStringMap(request.CoverArtSizes)
	}
	if request.StreamingLinks != nil {
		release.StreamingLinks = NewStringMap(request.StreamingLinks)
	}
	if request.Description != nil {
		release.Description = request.Description
	}
	return nil
}

func (c *ReleaseController) DeleteRelease(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteRelease")

	if err := c.releaseRepo.Delete(ctx, c.db.SQL, id); err != nil {
		return err
	}

	if err := c.imageService.Delete(ctx, services.ReleaseCoverPreset, id); err != nil {
		log.Warn("failed to remove release cover files", "releaseID", id, "error", err)
	}

	log.Info("Release deleted", "releaseID", id)

	return nil
}

func (c *ReleaseController) UploadReleaseCover(ctx context.Context, id int, data []byte) (*Release, error) {
	log := c.log.TraceFromContext(ctx).Function("UploadReleaseCover")

	if _, err := c.releaseRepo.GetByID(ctx, c.db.SQL, id); err != nil {
		return nil, err
	}

	processed, err := c.imageService.Process(ctx, services.ReleaseCoverPreset, id, data)
	if err != nil {
		return nil, err
	}

	if err := c.releaseRepo.UpdateCover(ctx, c.db.SQL, id, &processed.PrimaryURL, processed.Sizes); err != nil {
		if cleanupErr := c.imageService.Delete(ctx, services.ReleaseCoverPreset, id); cleanupErr != nil {
			log.Warn("failed to remove orphaned cover files", "releaseID", id, "error", cleanupErr)
		}
		return nil, err
	}

	log.Info("Release cover uploaded", "releaseID", id)

	return c.releaseRepo.GetWithArtist(ctx, c.db.SQL, id)
}

func (c *ReleaseController) DeleteReleaseCover(ctx context.Context, id int) (*Release, error) {
	log := c.log.TraceFromContext(ctx).Function("DeleteReleaseCover")

	if _, err := c.releaseRepo.GetByID(ctx, c.db.SQL, id); err != nil {
		return nil, err
	}

	if err := c.imageService.Delete(ctx, services.ReleaseCoverPreset, id); err != nil {
		return nil, err
	}

	if err := c.releaseRepo.UpdateCover(ctx, c.db.SQL, id, nil, nil); err != nil {
		return nil, err
	}

	log.Info("Release cover deleted", "releaseID", id)

	return c.releaseRepo.GetWithArtist(ctx, c.db.SQL, id)
}
