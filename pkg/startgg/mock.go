package startgg

import (
	"time"

	"github.com/becsite/backend/internal/model"
)

// MockTournaments returns the venue's recurring schedule laid out relative to
// now: weekly card game nights, the monthly Smash bracket, a LoL 1v1 two weeks
// out and the eight-week Fortnite league.
func MockTournaments(now time.Time, loc *time.Location) []model.Tournament {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	friday := nextWeekday(now, time.Friday)
	thursday := nextWeekday(now, time.Thursday)
	sunday := nextWeekday(now, time.Sunday)
	saturday := nextWeekday(now, time.Saturday)
	twoWeeks := time.Date(now.Year(), now.Month(), now.Day()+14, 12, 0, 0, 0, loc)
	day := 24 * time.Hour

	return []model.Tournament{
		{
			ID:                   "mock-fnm-001",
			Name:                 "Friday Night Magic",
			Slug:                 "tournament/bec-friday-night-magic",
			StartAt:              iso(friday),
			EndAt:                iso(friday.Add(4 * time.Hour)),
			Game:                 "Magic: The Gathering",
			Entrants:             12,
			MaxEntrants:          intPtr(32),
			RegistrationClosesAt: isoPtr(friday.Add(-time.Hour)),
			URL:                  "https://www.start.gg/tournament/bec-friday-night-magic",
			Images:               []string{"/images/mock/mtg-banner.jpg"},
			Description:          "Weekly Friday Night Magic at Bakersfield Esports Center. All formats welcome. Free entry with promo pack prizes for top finishers.",
		},
		{
			ID:                   "mock-pokemon-002",
			Name:                 "Pokemon TCG Thursday",
			Slug:                 "tournament/bec-pokemon-tcg-thursday",
			StartAt:              iso(thursday),
			EndAt:                iso(thursday.Add(3 * time.Hour)),
			Game:                 "Pokemon TCG",
			Entrants:             8,
			MaxEntrants:          intPtr(24),
			RegistrationClosesAt: isoPtr(thursday.Add(-time.Hour)),
			URL:                  "https://www.start.gg/tournament/bec-pokemon-tcg-thursday",
			Images:               []string{"/images/mock/pokemon-tcg-banner.jpg"},
			Description:          "Weekly Pokemon TCG tournament every Thursday at BEC. Free entry. Standard format. Prizes for top 4.",
		},
		{
			ID:                   "mock-digimon-003",
			Name:                 "Digimon TCG Sunday Tournament",
			Slug:                 "tournament/bec-digimon-tcg-sunday",
			StartAt:              iso(sunday),
			EndAt:                iso(sunday.Add(4 * time.Hour)),
			Game:                 "Digimon Card Game",
			Entrants:             10,
			MaxEntrants:          intPtr(24),
			RegistrationClosesAt: isoPtr(sunday.Add(-2 * time.Hour)),
			URL:                  "https://www.start.gg/tournament/bec-digimon-tcg-sunday",
			Images:               []string{"/images/mock/digimon-tcg-banner.jpg"},
			Description:          "Weekly Digimon TCG tournament every Sunday at Bakersfield Esports Center. $6 entry fee. Store credit prizes.",
		},
		{
			ID:                   "mock-ssbu-004",
			Name:                 "Super Smash Bros Ultimate Tournament",
			Slug:                 "tournament/bec-smash-ultimate-monthly",
			StartAt:              iso(saturday),
			EndAt:                iso(saturday.Add(6 * time.Hour)),
			Game:                 "Super Smash Bros. Ultimate",
			Entrants:             28,
			MaxEntrants:          intPtr(64),
			RegistrationClosesAt: isoPtr(saturday.Add(-day)),
			URL:                  "https://www.start.gg/tournament/bec-smash-ultimate-monthly",
			Images:               []string{"/images/mock/ssbu-banner.jpg"},
			Description:          "Monthly Super Smash Bros. Ultimate tournament at BEC. $20 entry fee. Double elimination bracket. Cash prizes for top 3.",
		},
		{
			ID:                   "mock-lol-005",
			Name:                 "League of Legends 1v1",
			Slug:                 "tournament/bec-lol-1v1",
			StartAt:              iso(twoWeeks),
			EndAt:                iso(twoWeeks.Add(5 * time.Hour)),
			Game:                 "League of Legends",
			Entrants:             16,
			MaxEntrants:          intPtr(32),
			RegistrationClosesAt: isoPtr(twoWeeks.Add(-2 * day)),
			URL:                  "https://www.start.gg/tournament/bec-lol-1v1",
			Images:               []string{"/images/mock/lol-banner.jpg"},
			Description:          "League of Legends 1v1 tournament at Bakersfield Esports Center. $20 entry fee. Howling Abyss, first blood or first tower wins. Prize pool based on entrants.",
		},
		{
			ID:                   "mock-fortnite-006",
			Name:                 "NOR Fortnite League",
			Slug:                 "tournament/bec-nor-fortnite-league",
			StartAt:              iso(now.Add(7 * day)),
			EndAt:                iso(now.Add(56 * day)),
			Game:                 "Fortnite",
			Entrants:             42,
			MaxEntrants:          intPtr(100),
			RegistrationClosesAt: isoPtr(now.Add(5 * day)),
			URL:                  "https://www.start.gg/tournament/bec-nor-fortnite-league",
			Images:               []string{"/images/mock/fortnite-league-banner.jpg"},
			Description:          "NOR Fortnite League - 8-week competitive league at Bakersfield Esports Center. $150 entry fee covers all weeks. Weekly point accumulation with grand finals. Major prize pool for top finishers.",
		},
	}
}

// nextWeekday returns 18:00 on the next given weekday strictly after today.
func nextWeekday(now time.Time, day time.Weekday) time.Time {
	diff := (int(day) - int(now.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day()+diff, 18, 0, 0, 0, now.Location())
}

func iso(t time.Time) string { return t.UTC().Format(isoLayout) }

func isoPtr(t time.Time) *string {
	s := iso(t)
	return &s
}

func intPtr(n int) *int { return &n }
