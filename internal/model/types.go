package model

import "time"

// GameRecord is the provider-agnostic shape every lookup adapter produces.
// Absent upstream fields stay as empty slices / nil date; formatting helpers
// render them as explicit "unknown" text so output is always total.
type GameRecord struct {
	Title       string     `json:"title"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`
	Developers  []string   `json:"developers,omitempty"`
	Publishers  []string   `json:"publishers,omitempty"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source"`
}

// Provenance tags carried in GameRecord.Source.
const (
	SourceLocal = "local"
	SourceIGDB  = "igdb"
	SourceRAWG  = "rawg"
)

// Question is one persisted interaction. Immutable once created; removable
// only by explicit user-initiated deletion.
type Question struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Achievement is an awarded achievement with its award instant.
type Achievement struct {
	Name       string    `json:"name"`
	DateEarned time.Time `json:"dateEarned"`
}

// UserProgress is the per-user engagement document. Counters are monotone and
// keyed by achievement category; Achievements contains each name at most once.
type UserProgress struct {
	UserID            string         `json:"userId"`
	Email             *string        `json:"email,omitempty"`
	ConversationCount int            `json:"conversationCount"`
	Counters          map[string]int `json:"progress"`
	Achievements      []Achievement  `json:"achievements"`

	// Account fields maintained by the waitlist sync flow.
	IsApproved       bool      `json:"isApproved"`
	HasProAccess     bool      `json:"hasProAccess"`
	WaitlistPosition *int      `json:"position,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HasAchievement reports whether the named achievement is already awarded.
func (p *UserProgress) HasAchievement(name string) bool {
	for _, a := range p.Achievements {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SplashUser is an approved-user record pulled from the splash-page waitlist.
type SplashUser struct {
	Email      string `json:"email"`
	UserID     string `json:"userId"`
	Position   int    `json:"position"`
	IsApproved bool   `json:"isApproved"`
}

// TwitchProfile is the subset of the helix /users response the service reports.
type TwitchProfile struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}
