package startgg

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/becsite/backend/internal/model"
)

const tournamentFields = `
      id
      name
      slug
      startAt
      endAt
      numAttendees
      isOnline
      isRegistrationOpen
      images(type: "profile") {
        url
      }
      events {
        id
        name
        videogame {
          displayName
        }
      }`

const tournamentsByOwnerQuery = `query TournamentsByOwner($ownerId: ID!, $perPage: Int) {
  tournaments(query: { perPage: $perPage, filter: { ownerId: $ownerId } }) {
    nodes {` + tournamentFields + `
    }
  }
}`

const tournamentBySlugQuery = `query TournamentBySlug($slug: String!) {
  tournament(slug: $slug) {` + tournamentFields + `
  }
}`

// isoLayout matches the millisecond UTC timestamps the site frontend expects.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// nodeID accepts start.gg IDs sent either as numbers or strings.
type nodeID string

func (id *nodeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = nodeID(s)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	*id = nodeID(b)
	return nil
}

type tournamentNode struct {
	ID           nodeID `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	StartAt      int64  `json:"startAt"`
	EndAt        int64  `json:"endAt"`
	NumAttendees int    `json:"numAttendees"`
	IsOnline     bool   `json:"isOnline"`
	Images       []struct {
		URL string `json:"url"`
	} `json:"images"`
	Events []struct {
		Name      string `json:"name"`
		Videogame *struct {
			DisplayName string `json:"displayName"`
		} `json:"videogame"`
	} `json:"events"`
}

// toModel maps a GraphQL node onto the site's tournament shape. The game is
// the first event's videogame; registration and capacity are not exposed by
// the query and stay null.
func (n tournamentNode) toModel() model.Tournament {
	game := "Multiple Games"
	if len(n.Events) > 0 && n.Events[0].Videogame != nil && n.Events[0].Videogame.DisplayName != "" {
		game = n.Events[0].Videogame.DisplayName
	}
	images := make([]string, 0, len(n.Images))
	for _, img := range n.Images {
		images = append(images, img.URL)
	}
	return model.Tournament{
		ID:       string(n.ID),
		Name:     n.Name,
		Slug:     n.Slug,
		StartAt:  unixISO(n.StartAt),
		EndAt:    unixISO(n.EndAt),
		Game:     game,
		Entrants: n.NumAttendees,
		IsOnline: n.IsOnline,
		URL:      "https://www.start.gg/" + n.Slug,
		Images:   images,
	}
}

func unixISO(sec int64) string {
	if sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(isoLayout)
}
