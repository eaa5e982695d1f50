// Package assistant implements the question-answering pipeline: intent
// routing, multi-source answer aggregation, interaction persistence and
// progress tracking.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider/localdata"
	"github.com/vgwingman/wingman/internal/route"
	"github.com/vgwingman/wingman/internal/store"
)

// systemPrompt frames the LLM fallback for every completion call.
const systemPrompt = "You are an AI assistant specializing in video games. " +
	"You can provide detailed analytics and insights into gameplay, helping players " +
	"track their progress and identify areas for improvement."

// Fixed user-facing sentences. The user always receives a complete answer
// string, never a raw error.
const (
	apologySentence       = "I'm sorry, I couldn't generate a response. Please try again."
	noRecommendations     = "I couldn't find any recommendations based on your preferences."
	seriesNotFound        = "Sorry, I couldn't find any information about that series."
	seriesNameUnparseable = "Sorry, I couldn't identify the series name from your question."
	aggregationNotice     = "\n\nAdditional Information:\nFailed to fetch data due to an error."
)

// MetadataProvider is the slice of the provider adapters the pipeline needs.
type MetadataProvider interface {
	Lookup(ctx context.Context, query string) (*model.GameRecord, error)
	LookupSeries(ctx context.Context, series string) ([]model.GameRecord, error)
}

// Recommender performs a genre-filtered provider search.
type Recommender interface {
	Recommend(ctx context.Context, genre string) ([]string, error)
}

// Completer is the LLM fallback.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, question string) (string, error)
}

// AccountLookup covers the authorization-code pieces of the third-party
// account route.
type AccountLookup interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*model.TwitchProfile, error)
}

// ProgressRecorder is satisfied by the achievement engine.
type ProgressRecorder interface {
	Record(ctx context.Context, userID, question string) ([]model.Achievement, error)
}

// Service runs the full pipeline for one question.
type Service struct {
	store    store.Store
	local    *localdata.Dataset
	igdb     MetadataProvider
	rawg     MetadataProvider
	rec      Recommender
	llm      Completer
	accounts AccountLookup
	progress ProgressRecorder
	log      zerolog.Logger
}

func NewService(
	st store.Store,
	local *localdata.Dataset,
	igdbClient MetadataProvider,
	rawgClient MetadataProvider,
	rec Recommender,
	completer Completer,
	accounts AccountLookup,
	progress ProgressRecorder,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:    st,
		local:    local,
		igdb:     igdbClient,
		rawg:     rawgClient,
		rec:      rec,
		llm:      completer,
		accounts: accounts,
		progress: progress,
		log:      log,
	}
}

// Answer classifies the question, produces an answer through the matching
// route handler, persists the interaction and records progress. Provider and
// aggregation failures are absorbed into the answer text; only authorization
// and persistence failures propagate.
func (s *Service) Answer(ctx context.Context, userID, question, code string) (string, error) {
	r := route.Classify(question)
	s.log.Debug().Str("user", userID).Stringer("route", r).Msg("question classified")

	var answer string
	var err error
	switch r {
	case route.RouteSeriesListing:
		answer = s.answerSeries(ctx, question)
	case route.RouteRecommendation:
		answer, err = s.answerRecommendation(ctx, userID)
	case route.RouteTwitchAccount:
		answer, err = s.answerAccount(ctx, code)
	case route.RouteGenreLookup:
		answer = s.answerGenre(question)
	default: // release-date and generic share the LLM + aggregation path
		answer = s.answerWithFallback(ctx, question)
	}
	if err != nil {
		return "", err
	}

	if _, err := s.store.Questions().Create(ctx, &model.Question{
		UserID:   userID,
		Question: question,
		Answer:   answer,
	}); err != nil {
		return "", fmt.Errorf("persist interaction: %w", err)
	}

	if _, err := s.progress.Record(ctx, userID, question); err != nil {
		return "", fmt.Errorf("record progress: %w", err)
	}

	return answer, nil
}

// answerWithFallback produces the LLM primary answer and augments it with
// provider data when the inclusion policy allows.
func (s *Service) answerWithFallback(ctx context.Context, question string) string {
	primary, err := s.llm.Complete(ctx, systemPrompt, question)
	if err != nil || primary == "" {
		if err != nil {
			s.log.Warn().Err(err).Msg("llm completion failed")
		}
		return apologySentence
	}
	return s.augment(ctx, question, primary)
}

// answerAccount resolves the third-party account route. A missing code is an
// authorization failure surfaced to the caller.
func (s *Service) answerAccount(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", &model.AuthError{Reason: "authorization code required for twitch user data"}
	}
	token, err := s.accounts.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}
	profile, err := s.accounts.FetchProfile(ctx, token)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode twitch profile: %w", err)
	}
	return "Twitch User Data: " + string(data), nil
}
