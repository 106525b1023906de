package contactController

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

const (
	DemoMinMessageLength = 50
	MaxContactsPerWindow = 3
	ThrottleWindow       = 24 * time.Hour
)

type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Defaults strips markup and invalid UTF-8 from every text field.
func (r *SubmitContactRequest) Defaults() {
	r.Name = utils.StripMarkup(r.Name)
	r.Email = utils.StripMarkup(r.Email)
	r.Subject = utils.StripMarkup(r.Subject)
	r.Message = utils.StripMarkup(r.Message)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(ContactTypeGeneral)
	}
}

func (r SubmitContactRequest) Validate() error {
	messageRules := []validation.Rule{validation.Required, validation.RuneLength(10, 5000)}
	if r.Type == string(ContactTypeDemo) {
		messageRules = append(
			messageRules,
			validation.RuneLength(DemoMinMessageLength, 5000).
				Error("demo submissions must be at least 50 characters"),
		)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.Email, append([]validation.Rule{validation.Required}, validate.Email...)...),
		validation.Field(&r.Subject, validation.Required, validation.RuneLength(3, 200)),
		validation.Field(&r.Message, messageRules...),
		validation.Field(&r.Type, validation.Required, validate.OneOf(ContactTypes)),
	)
}

type ContactController struct {
	contactRepo        repositories.ContactRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
	now                func() time.Time
}

type ContactControllerInterface interface {
	SubmitContact(ctx context.Context, request SubmitContactRequest) (*Contact, error)
	ListContacts(
		ctx context.Context,
		params types.ListParams,
		contactType string,
		processed *bool,
	) (types.PaginatedResult[*Contact], error)
	GetContact(ctx context.Context, id int) (*Contact, error)
	MarkProcessed(ctx context.Context, id int, processed bool) (*Contact, error)
	DeleteContact(ctx context.Context, id int) error
	GetContactStats(ctx context.Context) (types.ContactStats, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ContactControllerInterface {
	return &ContactController{
		contactRepo:        repos.Contact,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("contactController"),
		now:                time.Now,
	}
}

// SubmitContact stores a form submission under the normalized email. Spam is
// rejected before the per-email throttle is consulted.
func (c *ContactController) SubmitContact(
	ctx context.Context,
	request SubmitContactRequest,
) (*Contact, error) {
	log := c.log.TraceFromContext(ctx).Function("SubmitContact")

	request.Defaults()
	if err := request.Validate(); err != nil {
		return nil, validate.FromError(err)
	}

	if utils.IsSpam(request.Subject) || utils.IsSpam(request.Message) {
		log.Warn("Contact rejected as spam", "email", request.Email)
		return nil, types.NewSpamError("Message rejected as spam")
	}

	contact := &Contact{
		Name:    request.Name,
		Email:   validate.NormalizeEmail(request.Email),
		Subject: request.Subject,
		Message: request.Message,
		Type:    ContactType(request.Type),
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		since := c.now().UTC().Add(-ThrottleWindow)
		count, err := c.contactRepo.CountSince(ctx, tx, contact.Email, since)
		if err != nil {
			return err
		}
		if count >= MaxContactsPerWindow {
			return types.NewThrottleError(
				"Too many submissions from this email, please try again later",
			)
		}

		return c.contactRepo.Create(ctx, tx, contact)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Contact submitted", "contactID", contact.ID, "type", contact.Type)

	return contact, nil
}

func (c *ContactController) ListContacts(
	ctx context.Context,
	params types.ListParams,
	contactType string,
	processed *bool,
) (types.PaginatedResult[*Contact], error) {
	return c.contactRepo.List(ctx, c.db.SQL, params, repositories.ContactFilter{
		Type:      contactType,
		Processed: processed,
	})
}

func (c *ContactController) GetContact(ctx context.Context, id int) (*Contact, error) {
	return c.contactRepo.GetByID(ctx, c.db.SQL, id)
}

func (c *ContactController) MarkProcessed(
	ctx context.Context,
	id int,
	processed bool,
) (*Contact, error) {
	log := c.log.TraceFromContext(ctx).Function("MarkProcessed")

	var contact *Contact
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.contactRepo.SetProcessed(ctx, tx, id, processed); err != nil {
			return err
		}

		var err error
		contact, err = c.contactRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Contact processed flag set", "contactID", id, "processed", processed)

	return contact, nil
}

func (c *ContactController) DeleteContact(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteContact")

	if err := c.contactRepo.Delete(ctx, c.db.SQL, id); err != nil {
		return err
	}

	log.Info("Contact deleted", "contactID", id)

	return nil
}

func (c *ContactController) GetContactStats(ctx context.Context) (types.ContactStats, error) {
	return c.contactRepo.Stats(ctx, c.db.SQL)
}
