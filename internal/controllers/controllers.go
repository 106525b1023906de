package controllers

import (
	"musiclabel/config"
	"musiclabel/internal/database"
	"musiclabel/internal/repositories"
	"musiclabel/internal/services"

	artistController "musiclabel/internal/controllers/artist"
	concertController "musiclabel/internal/controllers/concert"
	contactController "musiclabel/internal/controllers/contact"
	newsController "musiclabel/internal/controllers/news"
	newsletterController "musiclabel/internal/controllers/newsletter"
	releaseController "musiclabel/internal/controllers/release"
)

type Controllers struct {
	Artist     artistController.ArtistControllerInterface
	Release    releaseController.ReleaseControllerInterface
	Concert    concertController.ConcertControllerInterface
	News       newsController.NewsControllerInterface
	Contact    contactController.ContactControllerInterface
	Newsletter newsletterController.NewsletterControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Artist:     artistController.New(repos, services, config, db),
		Release:    releaseController.New(repos, services, config, db),
		Concert:    concertController.New(repos, services, config, db),
		News:       newsController.New(repos, services, config, db),
		Contact:    contactController.New(repos, services, config, db),
		Newsletter: newsletterController.New(repos, services, config, db),
	}
}
