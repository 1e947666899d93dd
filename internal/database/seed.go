package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nmixx-fans/streaming-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type songSeed struct {
	Title       string
	Album       string
	ReleaseDate time.Time
	CoverImage  string
	StreamCount int64
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// The cached stream counts are manual figures from the chart tracker, not
// derived from verifications.
var songSeeds = []songSeed{
	{Title: "O.O", Album: "AD MARE", ReleaseDate: date(2022, time.February, 22), CoverImage: "/covers/ad-mare.jpg", StreamCount: 184_000_000},
	{Title: "DICE", Album: "ENTWURF", ReleaseDate: date(2022, time.September, 19), CoverImage: "/covers/entwurf.jpg", StreamCount: 121_000_000},
	{Title: "Love Me Like This", Album: "expergo", ReleaseDate: date(2023, time.March, 20), CoverImage: "/covers/expergo.jpg", StreamCount: 158_000_000},
	{Title: "Party O'Clock", Album: "A Midsummer NMIXX's Dream", ReleaseDate: date(2023, time.July, 11), CoverImage: "/covers/midsummer.jpg", StreamCount: 64_000_000},
	{Title: "Roller Coaster", Album: "A Midsummer NMIXX's Dream", ReleaseDate: date(2023, time.July, 11), CoverImage: "/covers/midsummer.jpg", StreamCount: 41_000_000},
	{Title: "DASH", Album: "Fe3O4: BREAK", ReleaseDate: date(2024, time.January, 15), CoverImage: "/covers/break.jpg", StreamCount: 139_000_000},
	{Title: "Sonar (Breaker)", Album: "Fe3O4: BREAK", ReleaseDate: date(2024, time.January, 15), CoverImage: "/covers/break.jpg", StreamCount: 47_000_000},
	{Title: "See that?", Album: "Fe3O4: STICK OUT", ReleaseDate: date(2024, time.August, 19), CoverImage: "/covers/stick-out.jpg", StreamCount: 72_000_000},
}

// SeedSongs inserts the song catalog if it is not already present. Existing
// rows are left alone so manually adjusted stream counts survive restarts.
func SeedSongs(db *gorm.DB) error {
	seeded := 0

	for _, ss := range songSeeds {
		var existing models.Song
		err := db.Where("title = ?", ss.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up seed song %q: %w", ss.Title, err)
		}

		song := models.Song{
			Title:            ss.Title,
			Album:            ss.Album,
			ReleaseDate:      datatypes.Date(ss.ReleaseDate),
			CoverImage:       ss.CoverImage,
			TotalStreamCount: ss.StreamCount,
		}

		if err := db.Create(&song).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded song catalog", "new", seeded, "total", len(songSeeds))
	}
	return nil
}
