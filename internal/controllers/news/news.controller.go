package newsController

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

var NewsStatuses = []string{
	string(NewsStatusPublished),
	string(NewsStatusDraft),
	string(NewsStatusAll),
}

type CreateNewsRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Author      string  `json:"author"`
	Slug        string  `json:"slug"`
	PublishedAt *string `json:"publishedAt"`
}

type UpdateNewsRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
	Slug    *string `json:"slug"`
}

func (r *CreateNewsRequest) Defaults() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Author = strings.TrimSpace(r.Author)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Author == "" {
		r.Author = DefaultNewsAuthor
	}
	if r.PublishedAt != nil {
		*r.PublishedAt = strings.TrimSpace(*r.PublishedAt)
	}
}

func (r CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.Required, validation.Length(10, 50000)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Slug, validate.Slug),
		validation.Field(&r.PublishedAt, validate.Date),
	)
}

func (r *UpdateNewsRequest) Defaults() {
	for _, value := range []*string{r.Title, r.Content, r.Author, r.Slug} {
		if value != nil {
			*value = strings.TrimSpace(*value)
		}
	}
}

func (r UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.Length(10, 50000)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, validate.Slug),
	)
}

type NewsController struct {
	newsRepo           repositories.NewsRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type NewsControllerInterface interface {
	ListNews(
		ctx context.Context,
		params types.ListParams,
		status NewsStatus,
	) (types.PaginatedResult[*News], error)
	GetNews(ctx context.Context, id int) (*News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*News, error)
	CreateNews(ctx context.Context, request CreateNewsRequest) (*News, error)
	UpdateNews(ctx context.Context, id int, request UpdateNewsRequest) (*News, error)
	PublishNews(ctx context.Context, id int) (*News, error)
	UnpublishNews(ctx context.Context, id int) (*News, error)
	DeleteNews(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) NewsControllerInterface {
	return &NewsController{
		newsRepo:           repos.News,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("newsController"),
		now:                time.Now,
	}
}

func slugConflictError() error {
	return types.NewConflictError("News article with this slug already exists")
}

// ListNews defaults to published articles only.
func (c *NewsController) ListNews(
	ctx context.Context,
	params types.ListParams,
	status NewsStatus,
) (types.PaginatedResult[*News], error) {
	if status == "" {
		status = NewsStatusPublished
	}
	return c.newsRepo.List(ctx, c.db.SQL, params, repositories.NewsFilter{Status: status})
}

func (c *NewsController) GetNews(ctx context.Context, id int) (*News, error) {
	return c.newsRepo.GetByID(ctx, c.db.SQL, id)
}

func (c *NewsController) GetNewsBySlug(ctx context.Context, slug string) (*News, error) {
	slug = strings.TrimSpace(slug)
	if !utils.IsValidSlug(slug) {
		return nil, validate.Failed("slug", "must contain only lowercase letters, numbers and hyphens")
	}
	return c.newsRepo.GetBySlug(ctx, c.db.SQL, slug)
}

// CreateNews keeps an explicit slug as given and fails if it is taken. Without
// one the slug is derived from the title and suffixed until it is free.
func (c *NewsController) CreateNews(ctx context.Context, request CreateNewsRequest) (*News, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateNews")

	request.Defaults()
	if err := request.Validate(); err != nil {
		return nil, validate.FromError(err)
	}

	news := &News{
		Title:   request.Title,
		Content: request.Content,
		Author:  request.Author,
	}
	if request.PublishedAt != nil && *request.PublishedAt != "" {
		publishedAt, err := utils.ParseDate(*request.PublishedAt)
		if err != nil {
			return nil, validate.Failed("publishedAt", err.Error())
		}
		news.PublishedAt = &publishedAt
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if request.Slug != "" {
			taken, err := c.newsRepo.SlugExists(ctx, tx, request.Slug, 0)
			if err != nil {
				return err
			}
			if taken {
				return slugConflictError()
			}
			news.Slug = request.Slug
		} else {
			slug, err := utils.UniqueSlug(utils.GenerateSlug(request.Title), func(candidate string) (bool, error) {
				return c.newsRepo.SlugExists(ctx, tx, candidate, 0)
			})
			if err != nil {
				return err
			}
			news.Slug = slug
		}

		return c.newsRepo.Create(ctx, tx, news)
	})
	if err != nil {
		return nil, err
	}

	log.Info("News created", "newsID", news.ID, "slug", news.Slug)

	return news, nil
}

// UpdateNews never rewrites the slug from a new title; only an explicit slug changes it.
func (c *NewsController) UpdateNews(
	ctx context.Context,
	id int,
	request UpdateNewsRequest,
) (*News, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateNews")

	var news *News
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.newsRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		request.Defaults()
		if err := request.Validate(); err != nil {
			return validate.FromError(err)
		}

		if request.Slug != nil && *request.Slug != existing.Slug {
			taken, err := c.newsRepo.SlugExists(ctx, tx, *request.Slug, id)
			if err != nil {
				return err
			}
			if taken {
				return slugConflictError()
			}
			existing.Slug = *request.Slug
		}
		if request.Title != nil {
			existing.Title = *request.Title
		}
		if request.Content != nil {
			existing.Content = *request.Content
		}
		if request.Author != nil {
			existing.Author = *request.Author
		}

		if err := c.newsRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		news = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("News updated", "newsID", id)

	return news, nil
}

func (c *NewsController) PublishNews(ctx context.Context, id int) (*News, error) {
	return c.setPublished(ctx, id, true)
}

func (c *NewsController) UnpublishNews(ctx context.Context, id int) (*News, error) {
	return c.setPublished(ctx, id, false)
}

func (c *NewsController) setPublished(ctx context.Context, id int, publish bool) (*News, error) {
	log := c.log.TraceFromContext(ctx).Function("setPublished")

	var news *News
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.newsRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		var publishedAt *time.Time
		switch {
		case publish && existing.PublishedAt != nil:
			return types.NewInvariantError("News article is already published")
		case !publish && existing.PublishedAt == nil:
			return types.NewInvariantError("News article is not published")
		case publish:
			now := c.now().UTC()
			publishedAt = &now
		}

		if err := c.newsRepo.SetPublishedAt(ctx, tx, id, publishedAt); err != nil {
			return err
		}

		news, err = c.newsRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("News publication changed", "newsID", id, "published", publish)

	return news, nil
}

func (c *NewsController) DeleteNews(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteNews")

	if err := c.newsRepo.Delete(ctx, c.db.SQL, id); err != nil {
		return err
	}

	log.Info("News deleted", "newsID", id)

	return nil
}
