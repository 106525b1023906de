package concertController

import (
	"context"
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

func newTestController(t *testing.T, now time.Time) (*ConcertController, *models.Artist) {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := config.Config{UploadDir: t.TempDir()}
	repos := repositories.New()

	artist := &models.Artist{Name: "Road Band"}
	require.NoError(t, repos.Artist.Create(context.Background(), db.SQL, artist))

	controller := New(repos, services.New(db, cfg), cfg, db).(*ConcertController)
	controller.now = func() time.Time { return now }
	return controller, artist
}

func ptr[T any](value T) *T {
	return &value
}

func TestCreateConcert(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	controller, artist := newTestController(t, now)
	ctx := context.Background()

	t.Run("valid concert", func(t *testing.T) {
		concert, err := controller.CreateConcert(ctx, CreateConcertRequest{
			ArtistID:   artist.ID,
			Venue:      "Roundhouse",
			City:       "London",
			Country:    "UK",
			Date:       "2025-07-01",
			Time:       ptr("20:30"),
			TicketLink: ptr("https://tickets.example.com/roundhouse"),
		})
		require.NoError(t, err)
		assert.Equal(t, "20:30", *concert.Time)
		require.NotNil(t, concert.Artist)
		assert.Equal(t, artist.ID, concert.Artist.ID)
	})

	t.Run("today is still allowed", func(t *testing.T) {
		_, err := controller.CreateConcert(ctx, CreateConcertRequest{
			ArtistID: artist.ID, Venue: "Tonight", City: "London", Country: "UK", Date: "2025-06-15",
		})
		require.NoError(t, err)

		_, err = controller.CreateConcert(ctx, CreateConcertRequest{
			ArtistID: artist.ID, Venue: "Late Show", City: "London", Country: "UK", Date: "2025-06-15T21:00:00Z",
		})
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			request CreateConcertRequest
			field   string
		}{
			{
				name:    "past date",
				request: CreateConcertRequest{ArtistID: artist.ID, Venue: "V", City: "C", Country: "K", Date: "2025-06-14"},
				field:   "date",
			},
			{
				name:    "earlier today",
				request: CreateConcertRequest{ArtistID: artist.ID, Venue: "V", City: "C", Country: "K", Date: "2025-06-15T01:00:00Z"},
				field:   "date",
			},
			{
				name:    "bad time",
				request: CreateConcertRequest{ArtistID: artist.ID, Venue: "V", City: "C", Country: "K", Date: "2025-07-01", Time: ptr("25:00")},
				field:   "time",
			},
			{
				name:    "relative ticket link",
				request: CreateConcertRequest{ArtistID: artist.ID, Venue: "V", City: "C", Country: "K", Date: "2025-07-01", TicketLink: ptr("/tickets")},
				field:   "ticketLink",
			},
			{
				name:    "missing venue",
				request: CreateConcertRequest{ArtistID: artist.ID, City: "C", Country: "K", Date: "2025-07-01"},
				field:   "venue",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := controller.CreateConcert(ctx, tt.request)
				var appErr *types.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, types.KindValidation, appErr.Kind)
				assert.Contains(t, appErr.Fields, tt.field)
			})
		}
	})

	t.Run("missing artist", func(t *testing.T) {
		_, err := controller.CreateConcert(ctx, CreateConcertRequest{
			ArtistID: 999, Venue: "V", City: "C", Country: "K", Date: "2025-07-01",
		})
		assert.True(t, types.IsKind(err, types.KindNotFound))
	})
}

func TestUpdateConcert_DateOnlyCheckedWhenPresent(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	controller, artist := newTestController(t, created)
	ctx := context.Background()

	concert, err := controller.CreateConcert(ctx, CreateConcertRequest{
		ArtistID: artist.ID, Venue: "Arena", City: "Madrid", Country: "Spain", Date: "2025-02-01",
	})
	require.NoError(t, err)

	// The concert has since passed.
	controller.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	updated, err := controller.UpdateConcert(ctx, concert.ID, UpdateConcertRequest{Notes: ptr("Sold out")})
	require.NoError(t, err)
	assert.Equal(t, "Sold out", *updated.Notes)

	_, err = controller.UpdateConcert(ctx, concert.ID, UpdateConcertRequest{Date: ptr("2025-02-02")})
	assert.True(t, types.IsKind(err, types.KindValidation))

	updated, err = controller.UpdateConcert(ctx, concert.ID, UpdateConcertRequest{Date: ptr("2025-04-01"), Notes: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), updated.Date.UTC())
	assert.Nil(t, updated.Notes)

	_, err = controller.UpdateConcert(ctx, 999, UpdateConcertRequest{Notes: ptr("x")})
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestListAndUpcomingConcerts(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	controller, artist := newTestController(t, start)
	ctx := context.Background()

	for _, request := range []CreateConcertRequest{
		{ArtistID: artist.ID, Venue: "Early", City: "Lisbon", Country: "Portugal", Date: "2025-01-10"},
		{ArtistID: artist.ID, Venue: "Middle", City: "Porto", Country: "Portugal", Date: "2025-02-10"},
		{ArtistID: artist.ID, Venue: "Late", City: "Lisbon", Country: "Portugal", Date: "2025-03-10"},
	} {
		_, err := controller.CreateConcert(ctx, request)
		require.NoError(t, err)
	}

	controller.now = func() time.Time { return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC) }

	upcoming, err := controller.GetUpcomingConcerts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Middle", upcoming[0].Venue)

	_, err = controller.GetUpcomingConcerts(ctx, 0)
	assert.True(t, types.IsKind(err, types.KindValidation))

	past := false
	result, err := controller.ListConcerts(ctx, types.ListParams{Page: 1, Limit: 10}, ConcertFilter{Upcoming: &past})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Early", result.Items[0].Venue)

	result, err = controller.ListConcerts(
		ctx,
		types.ListParams{Page: 1, Limit: 10, Sort: repositories.ConcertSortDateDesc},
		ConcertFilter{City: "lisbon"},
	)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Late", result.Items[0].Venue)

	require.NoError(t, controller.DeleteConcert(ctx, result.Items[0].ID))
	assert.True(t, types.IsKind(controller.DeleteConcert(ctx, result.Items[0].ID), types.KindNotFound))
}
