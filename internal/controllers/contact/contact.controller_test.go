package contactController

import (
	"context"
	"strings"
	"testing"
	"time"

	"musiclabel/config"
	"musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/services"
	"musiclabel/internal/testutil"
	"musiclabel/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*ContactController, repositories.Repository) {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := config.Config{UploadDir: t.TempDir()}
	repos := repositories.New()
	return New(repos, services.New(db, cfg), cfg, db).(*ContactController), repos
}

func validRequest() SubmitContactRequest {
	return SubmitContactRequest{
		Name:    "Jamie Doe",
		Email:   "jamie@example.com",
		Subject: "Booking enquiry",
		Message: "We would love to book the band for our autumn festival.",
	}
}

func TestSubmitContact(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	t.Run("sanitizes and normalizes", func(t *testing.T) {
		request := validRequest()
		request.Name = "<b>Jamie</b> Doe"
		request.Email = "Jamie.Doe+band@GMail.com"

		contact, err := controller.SubmitContact(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, "Jamie Doe", contact.Name)
		assert.Equal(t, "jamiedoe@gmail.com", contact.Email)
		assert.Equal(t, models.ContactTypeGeneral, contact.Type)
		assert.False(t, contact.Processed)
	})

	t.Run("validation reports every field", func(t *testing.T) {
		_, err := controller.SubmitContact(ctx, SubmitContactRequest{
			Name:    "J",
			Email:   "not-an-email",
			Subject: "Hi",
			Message: "short",
			Type:    "fanmail",
		})

		var appErr *types.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, types.KindValidation, appErr.Kind)
		assert.True(t, strings.HasPrefix(appErr.Message, "Validation failed: "))
		for _, field := range []string{"name", "email", "subject", "message", "type"} {
			assert.Contains(t, appErr.Fields, field)
		}
	})

	t.Run("demo needs a longer message", func(t *testing.T) {
		request := validRequest()
		request.Type = "demo"
		request.Message = strings.Repeat("d", 30)

		_, err := controller.SubmitContact(ctx, request)
		var appErr *types.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, types.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "message")

		request.Message = "Here is a link to our demo, three tracks recorded live last month."
		request.Email = "demo@example.com"
		contact, err := controller.SubmitContact(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, models.ContactTypeDemo, contact.Type)
	})

	t.Run("spam is rejected", func(t *testing.T) {
		request := validRequest()
		request.Email = "spammer@example.com"
		request.Message = "Click here to win the lottery jackpot today!"

		_, err := controller.SubmitContact(ctx, request)
		require.Error(t, err)
		assert.True(t, types.IsKind(err, types.KindSpam))
		assert.Contains(t, err.Error(), "spam")
	})
}

func TestSubmitContact_Throttle(t *testing.T) {
	controller, repos := newTestController(t)
	ctx := context.Background()

	for i := 0; i < MaxContactsPerWindow; i++ {
		request := validRequest()
		request.Email = "fan@gmail.com"
		if i == 1 {
			request.Email = "f.a.n+tag@gmail.com"
		}
		_, err := controller.SubmitContact(ctx, request)
		require.NoError(t, err)
	}

	request := validRequest()
	request.Email = "FAN@gmail.com"
	_, err := controller.SubmitContact(ctx, request)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindThrottle))
	assert.Contains(t, err.Error(), "Too many")

	request.Email = "someone.else@example.com"
	_, err = controller.SubmitContact(ctx, request)
	require.NoError(t, err)

	t.Run("old submissions fall outside the window", func(t *testing.T) {
		old := &models.Contact{
			Name:    "Old",
			Email:   "returning@example.com",
			Subject: "Earlier",
			Message: "An older message outside the window.",
			Type:    models.ContactTypeGeneral,
		}
		old.CreatedAt = time.Now().UTC().Add(-25 * time.Hour)
		for i := 0; i < MaxContactsPerWindow; i++ {
			entry := *old
			require.NoError(t, repos.Contact.Create(ctx, controller.db.SQL, &entry))
		}

		request := validRequest()
		request.Email = "returning@example.com"
		_, err := controller.SubmitContact(ctx, request)
		require.NoError(t, err)
	})
}

func TestContactAdministration(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	first := validRequest()
	first.Type = "press"
	pressContact, err := controller.SubmitContact(ctx, first)
	require.NoError(t, err)

	second := validRequest()
	second.Email = "label@example.com"
	second.Type = "business"
	second.Subject = "Distribution deal"
	_, err = controller.SubmitContact(ctx, second)
	require.NoError(t, err)

	processed, err := controller.MarkProcessed(ctx, pressContact.ID, true)
	require.NoError(t, err)
	assert.True(t, processed.Processed)

	_, err = controller.MarkProcessed(ctx, 999, true)
	assert.True(t, types.IsKind(err, types.KindNotFound))

	unprocessed := false
	result, err := controller.ListContacts(ctx, types.ListParams{Page: 1, Limit: 10}, "", &unprocessed)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "label@example.com", result.Items[0].Email)

	result, err = controller.ListContacts(ctx, types.ListParams{Page: 1, Limit: 10, Search: "DISTRIBUTION"}, "", nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)

	stats, err := controller.GetContactStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Unprocessed)
	assert.Equal(t, int64(1), stats.ByType["press"])
	assert.Equal(t, int64(0), stats.ByType["demo"])

	require.NoError(t, controller.DeleteContact(ctx, pressContact.ID))
	_, err = controller.GetContact(ctx, pressContact.ID)
	assert.True(t, types.IsKind(err, types.KindNotFound))
}
