package artistController

import (
	"context"
	"fmt"
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

type CreateArtistRequest struct {
	Name        string            `json:"name"`
	Bio         *string           `json:"bio"`
	ImageURL    *string           `json:"imageUrl"`
	ImageAlt    *string           `json:"imageAlt"`
	ImageSizes  map[string]string `json:"imageSizes"`
	SocialLinks map[string]string `json:"socialLinks"`
	IsFeatured  bool              `json:"isFeatured"`
}

// UpdateArtistRequest merges into the stored artist; nil fields are left as they are.
type UpdateArtistRequest struct {
	Name        *string           `json:"name"`
	Bio         *string           `json:"bio"`
	ImageURL    *string           `json:"imageUrl"`
	ImageAlt    *string           `json:"imageAlt"`
	ImageSizes  map[string]string `json:"imageSizes"`
	SocialLinks map[string]string `json:"socialLinks"`
	IsFeatured  *bool             `json:"isFeatured"`
}

func (r *CreateArtistRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimOptional(r.Bio, r.ImageURL, r.ImageAlt)
}

func (r CreateArtistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
		validation.Field(&r.ImageURL, validate.ImageURL),
		validation.Field(&r.ImageAlt, validation.Length(0, 255)),
		validation.Field(&r.ImageSizes, validate.AllowedKeys(ArtistImageVariants, validate.ImageURL)),
		validation.Field(&r.SocialLinks, validate.AllowedKeys(ArtistSocialPlatforms, validate.Link...)),
	)
}

func (r *UpdateArtistRequest) Normalize() {
	trimOptional(r.Name, r.Bio, r.ImageURL, r.ImageAlt)
}

func (r UpdateArtistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
		validation.Field(&r.ImageURL, validate.ImageURL),
		validation.Field(&r.ImageAlt, validation.Length(0, 255)),
		validation.Field(&r.ImageSizes, validate.AllowedKeys(ArtistImageVariants, validate.ImageURL)),
		validation.Field(&r.SocialLinks, validate.AllowedKeys(ArtistSocialPlatforms, validate.Link...)),
	)
}

func trimOptional(values ...*string) {
	for _, value := range values {
		if value != nil {
			*value = strings.TrimSpace(*value)
		}
	}
}

type ArtistController struct {
	artistRepo         repositories.ArtistRepository
	releaseRepo        repositories.ReleaseRepository
	transactionService *services.TransactionService
	imageService       *services.ImageService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type ArtistControllerInterface interface {
	ListArtists(
		ctx context.Context,
		params types.ListParams,
		featured *bool,
	) (types.PaginatedResult[*Artist], error)
	GetArtist(ctx context.Context, id int) (*Artist, error)
	GetFeaturedArtists(ctx context.Context) ([]*Artist, error)
	CreateArtist(ctx context.Context, request CreateArtistRequest) (*Artist, error)
	UpdateArtist(ctx context.Context, id int, request UpdateArtistRequest) (*Artist, error)
	DeleteArtist(ctx context.Context, id int) error
	UploadArtistImage(ctx context.Context, id int, data []byte) (*Artist, error)
	DeleteArtistImage(ctx context.Context, id int) (*Artist, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ArtistControllerInterface {
	return &ArtistController{
		artistRepo:         repos.Artist,
		releaseRepo:        repos.Release,
		transactionService: services.Transaction,
		imageService:       services.Image,
		db:                 db,
		Config:             config,
		log:                logger.New("artistController"),
		now:                time.Now,
	}
}

func featuredCapError() error {
	return types.NewInvariantError(
		fmt.Sprintf("Maximum of %d featured artists allowed", MaxFeaturedArtists),
	)
}

func (c *ArtistController) ListArtists(
	ctx context.Context,
	params types.ListParams,
	featured *bool,
) (types.PaginatedResult[*Artist], error) {
	return c.artistRepo.List(ctx, c.db.SQL, params, repositories.ArtistFilter{Featured: featured})
}

// GetArtist loads the artist with its releases, newest first, and its concerts
// from today onwards.
func (c *ArtistController) GetArtist(ctx context.Context, id int) (*Artist, error) {
	return c.artistRepo.GetWithRelations(ctx, c.db.SQL, id, utils.StartOfDay(c.now()))
}

func (c *ArtistController) GetFeaturedArtists(ctx context.Context) ([]*Artist, error) {
	return c.artistRepo.GetFeatured(ctx, c.db.SQL)
}

func (c *ArtistController) CreateArtist(
	ctx context.Context,
	request CreateArtistRequest,
) (*Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateArtist")

	request.Normalize()
	if err := request.Validate(); err != nil {
		return nil, validate.FromError(err)
	}

	artist := &Artist{
		Name:        request.Name,
		Bio:         request.Bio,
		ImageURL:    request.ImageURL,
		ImageAlt:    request.ImageAlt,
		ImageSizes:  NewStringMap(request.ImageSizes),
		SocialLinks: NewStringMap(request.SocialLinks),
		IsFeatured:  request.IsFeatured,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if artist.IsFeatured {
			count, err := c.artistRepo.CountFeatured(ctx, tx, 0)
			if err != nil {
				return err
			}
			if count >= MaxFeaturedArtists {
				return featuredCapError()
			}
		}

		taken, err := c.artistRepo.NameExists(ctx, tx, artist.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return types.NewConflictError("Artist with this name already exists")
		}

		return c.artistRepo.Create(ctx, tx, artist)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Artist created", "artistID", artist.ID, "featured", artist.IsFeatured)

	return artist, nil
}

func (c *ArtistController) UpdateArtist(
	ctx context.Context,
	id int,
	request UpdateArtistRequest,
) (*Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateArtist")

	var artist *Artist
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.artistRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		request.Normalize()
		if err := request.Validate(); err != nil {
			return validate.FromError(err)
		}

		if request.IsFeatured != nil && *request.IsFeatured && !existing.IsFeatured {
			count, err := c.artistRepo.CountFeatured(ctx, tx, id)
			if err != nil {
				return err
			}
			if count >= MaxFeaturedArtists {
				return featuredCapError()
			}
		}

		if request.Name != nil && *request.Name != existing.Name {
			taken, err := c.artistRepo.NameExists(ctx, tx, *request.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return types.NewConflictError("Artist with this name already exists")
			}
		}

		applyArtistUpdate(existing, request)
		if err := c.artistRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		artist = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Artist updated", "artistID", id)

	return artist, nil
}

func applyArtistUpdate(artist *Artist, request UpdateArtistRequest) {
	if request.Name != nil {
		artist.Name = *request.Name
	}
	if request.Bio != nil {
		artist.Bio = request.Bio
	}
	if request.ImageURL != nil {
		artist.ImageURL = request.ImageURL
	}
	if request.ImageAlt != nil {
		artist.ImageAlt = request.ImageAlt
	}
	if request.ImageSizes != nil {
		artist.ImageSizes = NewStringMap(request.ImageSizes)
	}
	if request.SocialLinks != nil {
		artist.SocialLinks = NewStringMap(request.SocialLinks)
	}
	if request.IsFeatured != nil {
		artist.IsFeatured = *request.IsFeatured
	}
}

// DeleteArtist removes the artist; releases and concerts go with it through
// the foreign key cascade. Image files are removed afterwards on a best
// effort basis.
func (c *ArtistController) DeleteArtist(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteArtist")

	var releaseIDs []int
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.artistRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}

		ids, err := c.releaseRepo.ListIDsByArtist(ctx, tx, id)
		if err != nil {
			return err
		}
		releaseIDs = ids

		return c.artistRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if err := c.imageService.Delete(ctx, services.ArtistImagePreset, id); err != nil {
		log.Warn("failed to remove artist image files", "artistID", id, "error", err)
	}
	for _, releaseID := range releaseIDs {
		if err := c.imageService.Delete(ctx, services.ReleaseCoverPreset, releaseID); err != nil {
			log.Warn("failed to remove release cover files", "releaseID", releaseID, "error", err)
		}
	}

	log.Info("Artist deleted", "artistID", id, "releases", len(releaseIDs))

	return nil
}

func (c *ArtistController) UploadArtistImage(ctx context.Context, id int, data []byte) (*Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("UploadArtistImage")

	if _, err := c.artistRepo.GetByID(ctx, c.db.SQL, id); err != nil {
		return nil, err
	}

	processed, err := c.imageService.Process(ctx, services.ArtistImagePreset, id, data)
	if err != nil {
		return nil, err
	}

	if err := c.artistRepo.UpdateImage(ctx, c.db.SQL, id, &processed.PrimaryURL, processed.Sizes); err != nil {
		if cleanupErr := c.imageService.Delete(ctx, services.ArtistImagePreset, id); cleanupErr != nil {
			log.Warn("failed to remove orphaned artist image files", "artistID", id, "error", cleanupErr)
		}
		return nil, err
	}

	log.Info("Artist image uploaded", "artistID", id)

	return c.artistRepo.GetByID(ctx, c.db.SQL, id)
}

func (c *ArtistController) DeleteArtistImage(ctx context.Context, id int) (*Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("DeleteArtistImage")

	if _, err := c.artistRepo.GetByID(ctx, c.db.SQL, id); err != nil {
		return nil, err
	}

	if err := c.imageService.Delete(ctx, services.ArtistImagePreset, id); err != nil {
		return nil, err
	}

	if err := c.artistRepo.UpdateImage(ctx, c.db.SQL, id, nil, nil); err != nil {
		return nil, err
	}

	log.Info("Artist image deleted", "artistID", id)

	return c.artistRepo.GetByID(ctx, c.db.SQL, id)
}
