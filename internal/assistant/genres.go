package assistant

import (
	"strings"

	"github.com/vgwingman/wingman/internal/route"
)

// genreByTitle is the fixed title->genre table backing the genre route.
// This route answers from curated data, not a live provider call.
var genreByTitle = map[string]string{
	"xenoblade chronicles 3":                "Action RPG",
	"final fantasy vii":                     "Role-Playing Game",
	"devil may cry 5":                       "Hack and Slash",
	"fortnite":                              "Battle Royale",
	"the legend of zelda: ocarina of time":  "Adventure",
	"super mario galaxy":                    "Platformer",
	"resident evil 4":                       "Survival Horror",
	"splatoon 2":                            "Third-Person Shooter",
	"castlevania: symphony of the night":    "Metroidvania",
	"bioshock infinite":                     "First-Person Shooter",
	"minecraft":                             "Sandbox",
	"hades":                                 "Roguelike",
	"grand theft auto v":                    "Action-Adventure",
	"animal crossing":                       "Social Simulation",
	"world of warcraft":                     "Massively Multiplayer Online Role-Playing Game",
	"dota 2":                                "Multiplayer Online Battle Arena",
	"braid":                                 "Puzzle-Platformer",
	"super smash bros. ultimate":            "Fighting Game",
	"fire emblem: awakening":                "Tactical Role-Playing Game",
	"bloons td 6":                           "Tower Defense",
	"forza horizon 5":                       "Racing",
	"mario kart 8":                          "Kart Racing",
	"star fox":                              "Rail Shooter",
	"metal gear solid":                      "Stealth",
	"gunstar heroes":                        "Run and Gun",
	"advance wars":                          "Turn-Based Strategy",
	"sid meier's civilization vi":           "4X",
	"hotline miami":                         "Top-down Shooter",
	"fifa 18":                               "Sports",
	"super mario party":                     "Party",
	"guitar hero":                           "Rhythm",
	"five night's at freddy's":              "Point and Click",
	"phoenix wright: ace attorney":          "Visual Novel",
	"command & conquer":                     "Real Time Strategy",
	"streets of rage 4":                     "Beat 'em up",
	"tetris":                                "Puzzle",
	"xcom: enemy unknown":                   "Turn-Based Tactics",
	"the stanley parable":                   "Interactive Story",
	"pac-man":                               "Maze",
	"roblox":                                "Game Creation System",
	"super mario maker":                     "Level Editor",
	"temple run":                            "Endless Runner",
	"yu-gi-oh! master duel":                 "Digital Collectible Card Game",
	"wii fit":                               "Exergaming",
	"deathloop":                             "Immersive Sim",
	"bejeweled":                             "Tile-Matching",
	"shellshock live":                       "Artillery",
	"roller coaster tycoon 3":               "Construction and Management Simulation",
}

// GenreForTitle resolves a title against the fixed table, case-insensitively.
func GenreForTitle(title string) (string, bool) {
	g, ok := genreByTitle[strings.ToLower(strings.TrimSpace(title))]
	return g, ok
}

// answerGenre extracts a candidate title from the question and resolves its
// genre from the fixed table.
func (s *Service) answerGenre(question string) string {
	title := route.ExtractGameTitle(question)
	if title == "" {
		return "Sorry, I couldn't identify the game name from your question."
	}
	if g, ok := GenreForTitle(title); ok {
		return title + " is categorized as " + g + "."
	}
	return "I couldn't find genre information for " + title + "."
}
