package seed

import (
	"context"
	"time"

	"musiclabel/internal/database"
	. "musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

func stringPtr(s string) *string {
	return &s
}

// Seed loads a small development catalogue through the repositories so the
// same constraints apply as for API writes.
func Seed(ctx context.Context, db database.DB, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	repos := repositories.New()
	now := time.Now().UTC()

	artists := []*Artist{
		{
			Name:       "The Night Owls",
			Bio:        stringPtr("Four-piece indie band from Bristol."),
			IsFeatured: true,
			SocialLinks: NewStringMap(map[string]string{
				"website":   "https://nightowls.example.com",
				"instagram": "https://instagram.com/nightowls",
			}),
			ImageSizes: NewStringMap(map[string]string{}),
		},
		{
			Name:        "Mara Velde",
			Bio:         stringPtr("Electronic producer and live performer."),
			SocialLinks: NewStringMap(map[string]string{"bandcamp": "https://maravelde.bandcamp.com"}),
			ImageSizes:  NewStringMap(map[string]string{}),
		},
	}
	for _, artist := range artists {
		if err := repos.Artist.Create(ctx, db.SQL, artist); err != nil {
			return log.Err("failed to seed artist", err, "name", artist.Name)
		}
	}

	releases := []*Release{
		{
			ArtistID:    artists[0].ID,
			Title:       "Late Light",
			Type:        ReleaseTypeAlbum,
			ReleaseDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			StreamingLinks: NewStringMap(map[string]string{
				"spotify": "https://open.spotify.com/album/latelight",
			}),
			CoverArtSizes: NewStringMap(map[string]string{}),
		},
		{
			ArtistID:       artists[1].ID,
			Title:          "Undertow",
			Type:           ReleaseTypeEP,
			ReleaseDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			StreamingLinks: NewStringMap(map[string]string{}),
			CoverArtSizes:  NewStringMap(map[string]string{}),
		},
	}
	for _, release := range releases {
		if err := repos.Release.Create(ctx, db.SQL, release); err != nil {
			return log.Err("failed to seed release", err, "title", release.Title)
		}
	}

	concert := &Concert{
		ArtistID:   artists[0].ID,
		Venue:      "The Fleece",
		City:       "Bristol",
		Country:    "UK",
		Date:       utils.StartOfDay(now).AddDate(0, 1, 0),
		Time:       stringPtr("20:00"),
		TicketLink: stringPtr("https://tickets.example.com/fleece"),
	}
	if err := repos.Concert.Create(ctx, db.SQL, concert); err != nil {
		return log.Err("failed to seed concert", err, "venue", concert.Venue)
	}

	title := "The Night Owls announce their autumn tour"
	news := &News{
		Title:       title,
		Content:     "Tickets for **every date** go on sale this Friday.",
		Author:      DefaultNewsAuthor,
		Slug:        utils.GenerateSlug(title),
		PublishedAt: &now,
	}
	if err := repos.News.Create(ctx, db.SQL, news); err != nil {
		return log.Err("failed to seed news", err, "slug", news.Slug)
	}

	log.Info(
		"Seed complete",
		"artists", len(artists),
		"releases", len(releases),
		"concerts", 1,
		"news", 1,
	)
	return nil
}
