package newsletterController

import (
	"context"
	"time"

	"musiclabel/config"
	"musiclabel/internal/database"
	. "musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/services"
	"musiclabel/internal/types"
	"musiclabel/internal/validate"

	logger "github.com/Bparsons0904/goLogger"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

type SubscriptionRequest struct {
	Email string `json:"email"`
}

func (r *SubscriptionRequest) Defaults() {
	r.Email = validate.NormalizeEmail(r.Email)
}

func (r SubscriptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, append([]validation.Rule{validation.Required}, validate.Email...)...),
	)
}

type NewsletterController struct {
	newsletterRepo     repositories.NewsletterRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type NewsletterControllerInterface interface {
	Subscribe(ctx context.Context, request SubscriptionRequest) (*NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, request SubscriptionRequest) (*NewsletterSubscriber, error)
	ListSubscribers(
		ctx context.Context,
		params types.ListParams,
		active *bool,
	) (types.PaginatedResult[*NewsletterSubscriber], error)
	GetSubscriberStats(ctx context.Context) (types.SubscriberStats, error)
	DeleteSubscriber(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) NewsletterControllerInterface {
	return &NewsletterController{
		newsletterRepo:     repos.Newsletter,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("newsletterController"),
		now:                time.Now,
	}
}

// Subscribe creates an active subscriber, or reactivates an inactive one in
// place so the subscriber keeps its id.
func (c *NewsletterController) Subscribe(
	ctx context.Context,
	request SubscriptionRequest,
) (*NewsletterSubscriber, error) {
	log := c.log.TraceFromContext(ctx).Function("Subscribe")

	request.Defaults()
	if err := request.Validate(); err != nil {
		return nil, validate.FromError(err)
	}
	if validate.IsDisposableEmail(request.Email) {
		return nil, validate.Failed("email", "disposable email addresses are not allowed")
	}

	var subscriber *NewsletterSubscriber
	reactivated := false
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		now := c.now().UTC()

		existing, err := c.newsletterRepo.GetByEmail(ctx, tx, request.Email)
		switch {
		case err == nil && existing.IsActive:
			return types.NewConflictError("Subscriber with this email already exists")
		case err == nil:
			existing.IsActive = true
			existing.SubscribedAt = now
			existing.UnsubscribedAt = nil
			if err := c.newsletterRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			subscriber = existing
			reactivated = true
			return nil
		case !types.IsKind(err, types.KindNotFound):
			return err
		}

		subscriber = &NewsletterSubscriber{
			Email:        request.Email,
			IsActive:     true,
			SubscribedAt: now,
		}
		return c.newsletterRepo.Create(ctx, tx, subscriber)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Newsletter subscription", "subscriberID", subscriber.ID, "reactivated", reactivated)

	return subscriber, nil
}

func (c *NewsletterController) Unsubscribe(
	ctx context.Context,
	request SubscriptionRequest,
) (*NewsletterSubscriber, error) {
	log := c.log.TraceFromContext(ctx).Function("Unsubscribe")

	request.Defaults()
	if err := request.Validate(); err != nil {
		return nil, validate.FromError(err)
	}

	var subscriber *NewsletterSubscriber
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		existing, err := c.newsletterRepo.GetByEmail(ctx, tx, request.Email)
		if err != nil {
			return err
		}
		if !existing.IsActive {
			return types.NewInvariantError("Subscriber is already unsubscribed")
		}

		now := c.now().UTC()
		existing.IsActive = false
		existing.UnsubscribedAt = &now
		if err := c.newsletterRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		subscriber = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Newsletter unsubscription", "subscriberID", subscriber.ID)

	return subscriber, nil
}

func (c *NewsletterController) ListSubscribers(
	ctx context.Context,
	params types.ListParams,
	active *bool,
) (types.PaginatedResult[*NewsletterSubscriber], error) {
	return c.newsletterRepo.List(ctx, c.db.SQL, params, repositories.SubscriberFilter{Active: active})
}

func (c *NewsletterController) GetSubscriberStats(ctx context.Context) (types.SubscriberStats, error) {
	return c.newsletterRepo.Stats(ctx, c.db.SQL)
}

func (c *NewsletterController) DeleteSubscriber(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteSubscriber")

	if err := c.newsletterRepo.Delete(ctx, c.db.SQL, id); err != nil {
		return err
	}

	log.Info("Subscriber deleted", "subscriberID", id)

	return nil
}
