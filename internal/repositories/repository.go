package repositories

type Repository struct {
	Artist     ArtistRepository
	Release    ReleaseRepository
	Concert    ConcertRepository
	News       NewsRepository
	Contact    ContactRepository
	Newsletter NewsletterRepository
}

func New() Repository {
	return Repository{
		Artist:     NewArtistRepository(),
		Release:    NewReleaseRepository(),
		Concert:    NewConcertRepository(),
		News:       NewNewsRepository(),
		Contact:    NewContactRepository(),
		Newsletter: NewNewsletterRepository(),
	}
}
