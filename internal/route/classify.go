// Package route classifies free-text questions. Two independent classifiers
// run over the same text: Classify picks the handler route, Categorize maps
// the question onto an achievement category for progress tracking.
package route

import (
	"regexp"
	"strings"
)

// Route is the classified intent of a question.
type Route int

const (
	RouteGeneric Route = iota
	RouteSeriesListing
	RouteRecommendation
	RouteReleaseDate
	RouteTwitchAccount
	RouteGenreLookup
)

func (r Route) String() string {
	switch r {
	case RouteSeriesListing:
		return "series-listing"
	case RouteRecommendation:
		return "recommendation"
	case RouteReleaseDate:
		return "release-date"
	case RouteTwitchAccount:
		return "twitch-account"
	case RouteGenreLookup:
		return "genre-lookup"
	default:
		return "generic"
	}
}

type intentRule struct {
	keywords []string
	route    Route
}

// Categories are not mutually exclusive in free text, so rule order is the
// precedence: first match wins.
var intentRules = []intentRule{
	{keywords: []string{"list all of the games in the"}, route: RouteSeriesListing},
	{keywords: []string{"recommendations"}, route: RouteRecommendation},
	{keywords: []string{"when was", "when did"}, route: RouteReleaseDate},
	{keywords: []string{"twitch user data"}, route: RouteTwitchAccount},
	{keywords: []string{"genre"}, route: RouteGenreLookup},
}

// Classify assigns the question to exactly one route. Matching is
// case-insensitive substring search; no stemming or tokenization.
func Classify(question string) Route {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.route
			}
		}
	}
	return RouteGeneric
}

// Achievement categories tracked per user.
const (
	CategoryRPGEnthusiast      = "rpgEnthusiast"
	CategoryBossBuster         = "bossBuster"
	CategoryStrategySpecialist = "strategySpecialist"
	CategoryActionAficionado   = "actionAficionado"
	CategoryBattleRoyale       = "battleRoyale"
	CategorySportsChampion     = "sportsChampion"
	CategoryAdventureAddict    = "adventureAddict"
	CategoryShooterSpecialist  = "shooterSpecialist"
	CategoryPuzzlePro          = "puzzlePro"
	CategoryRacingPro          = "racingPro"
	CategoryStealthSpecialist  = "stealthSpecialist"
	CategoryHorrorHero         = "horrorHero"
	CategoryTriviaMaster       = "triviaMaster"
	CategorySpeedrunner        = "speedrunner"
	CategoryCollectorPro       = "collectorPro"
	CategoryDataDiver          = "dataDiver"
	CategoryPerformanceTweaker = "performanceTweaker"
)

type categoryRule struct {
	keyword  string
	category string
}

// categoryRules is evaluated in order; the first keyword hit decides the
// category for the whole question.
var categoryRules = []categoryRule{
	{"rpg", CategoryRPGEnthusiast},
	{"boss fight", CategoryBossBuster},
	{"strategy", CategoryStrategySpecialist},
	{"action", CategoryActionAficionado},
	{"battle royale", CategoryBattleRoyale},
	{"sports", CategorySportsChampion},
	{"adventure", CategoryAdventureAddict},
	{"shooter", CategoryShooterSpecialist},
	{"puzzle", CategoryPuzzlePro},
	{"racing", CategoryRacingPro},
	{"stealth", CategoryStealthSpecialist},
	{"horror", CategoryHorrorHero},
	{"trivia", CategoryTriviaMaster},
	{"speed run", CategorySpeedrunner},
	{"collect", CategoryCollectorPro},
	{"analytics", CategoryDataDiver},
	{"performance", CategoryPerformanceTweaker},
}

// Categorize maps free text to an achievement category, or reports false when
// nothing matches. It is independent of Classify; both may fire on one question.
func Categorize(question string) (string, bool) {
	q := strings.ToLower(question)
	for _, rule := range categoryRules {
		if strings.Contains(q, rule.keyword) {
			return rule.category, true
		}
	}
	return "", false
}

// Categories returns every tracked category in rule order.
func Categories() []string {
	out := make([]string, 0, len(categoryRules))
	for _, r := range categoryRules {
		out = append(out, r.category)
	}
	return out
}

var (
	releaseTitleRe = regexp.MustCompile(`(?i)when (was|did) (.*?) (released|come out)`)
	seriesNameRe   = regexp.MustCompile(`(?i)list all of the games in the (.+?) series`)
	guideTitleRe   = regexp.MustCompile(`(?i)(?:guide|walkthrough|progress|unlock|strategy|find).*?\s(.*?)(?:\s(?:chapter|level|stage|part|area|boss|item|character|section))`)
)

// ExtractReleaseTitle pulls the game title out of a "when was X released"
// question. Falls back to the raw question when the phrasing doesn't match.
func ExtractReleaseTitle(question string) string {
	if m := releaseTitleRe.FindStringSubmatch(question); m != nil {
		return strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(question)
}

// ExtractSeriesName pulls the series name from a series-listing question.
func ExtractSeriesName(question string) (string, bool) {
	if m := seriesNameRe.FindStringSubmatch(question); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// ExtractGameTitle captures the candidate title between a guide keyword
// (guide, walkthrough, boss, ...) and a stop keyword (chapter, boss, item, ...).
func ExtractGameTitle(question string) string {
	if m := guideTitleRe.FindStringSubmatch(question); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
