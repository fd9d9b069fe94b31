package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/platform/logging"
	"github.com/aegisleagues/league-data/internal/usecase"
)

type Handler struct {
	seasonService *usecase.SeasonService
	codeService   *usecase.CodeService
	matchService  *usecase.MatchService
	warmService   *usecase.WarmService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	codeService *usecase.CodeService,
	matchService *usecase.MatchService,
	warmService *usecase.WarmService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService: seasonService,
		codeService:   codeService,
		matchService:  matchService,
		warmService:   warmService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodePayload(r *http.Request, payload any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func seasonIDPathValue(r *http.Request) (int64, error) {
	raw := r.PathValue("seasonID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: season id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagues")
	defer span.End()

	summary, err := h.seasonService.Leagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "league summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetSeasonID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonID")
	defer span.End()

	shortName := r.PathValue("shortName")
	id, found, err := h.seasonService.SeasonID(ctx, shortName)
	if err != nil {
		h.logger.ErrorContext(ctx, "season id lookup failed", "shortName", shortName, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%s", usecase.ErrNotFound, shortName))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"seasonPId": id})
}

type seasonNamesDTO struct {
	SeasonPID int64  `json:"seasonPId"`
	ShortName string `json:"shortName"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	TabName   string `json:"tabName"`
}

func (h *Handler) GetSeasonNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonNames")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	shortName, found, err := h.seasonService.ShortName(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	name, _, err := h.seasonService.Name(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	timeLabel, _, err := h.seasonService.Time(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tabName, _, err := h.seasonService.TabName(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonNamesDTO{
		SeasonPID: seasonID,
		ShortName: shortName,
		Name:      name,
		Time:      timeLabel,
		TabName:   tabName,
	})
}

func (h *Handler) GetSeasonInformation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonInformation")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	info, found, err := h.seasonService.Information(ctx, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "season information failed", "seasonId", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, info)
}

func (h *Handler) GetSeasonRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonRoster")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, found, err := h.seasonService.RosterByID(ctx, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "season roster failed", "seasonId", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roster)
}

func (h *Handler) GetSeasonRosterByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonRosterByName")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, found, err := h.seasonService.RosterByName(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roster)
}

func (h *Handler) GetSeasonRegular(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonRegular")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	regular, found, err := h.seasonService.Regular(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d has no regular season data", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, regular)
}

func (h *Handler) GetSeasonPlayoffs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonPlayoffs")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playoffs, found, err := h.seasonService.Playoffs(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d has no playoff data", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playoffs)
}

func (h *Handler) GetMostRecentTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMostRecentTeam")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	profileHID := r.PathValue("profileHId")

	teamHID, found, err := h.seasonService.MostRecentTeam(ctx, seasonID, profileHID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: profile=%s in season=%d", usecase.ErrNotFound, profileHID, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"teamHId": teamHID})
}

type createSeasonPayload struct {
	SeasonName      string `json:"seasonName" validate:"required"`
	SeasonShortName string `json:"seasonShortName" validate:"required"`
	LeagueCode      string `json:"leagueCode"`
	LeagueRank      string `json:"leagueRank"`
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var payload createSeasonPayload
	if err := h.decodePayload(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.seasonService.CreateSeason(ctx, usecase.CreateSeasonInput{
		SeasonName:      payload.SeasonName,
		SeasonShortName: payload.SeasonShortName,
		LeagueCode:      payload.LeagueCode,
		LeagueRank:      payload.LeagueRank,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create season failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, created)
}

type rosterTeamsPayload struct {
	TeamPIDs []int64 `json:"teamPIds" validate:"required,min=1,dive,gt=0"`
}

func (h *Handler) AddRosterTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterTeams")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var payload rosterTeamsPayload
	if err := h.decodePayload(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, found, err := h.seasonService.AddRosterTeams(ctx, seasonID, payload.TeamPIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "add roster teams failed", "seasonId", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

type rosterProfilesPayload struct {
	ProfilePIDs []int64 `json:"profilePIds" validate:"required,min=1,dive,gt=0"`
}

func (h *Handler) AddRosterProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterProfiles")
	defer span.End()

	h.mutateRosterProfiles(ctx, w, r, h.seasonService.AddRosterProfiles)
}

func (h *Handler) RemoveRosterProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterProfiles")
	defer span.End()

	h.mutateRosterProfiles(ctx, w, r, h.seasonService.RemoveRosterProfiles)
}

func (h *Handler) mutateRosterProfiles(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	mutate func(ctx context.Context, seasonID, teamPID int64, profilePIDs []int64) (usecase.RosterMutation, bool, error),
) {
	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamPID, err := strconv.ParseInt(r.PathValue("teamPId"), 10, 64)
	if err != nil || teamPID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: team id %q", usecase.ErrInvalidInput, r.PathValue("teamPId")))
		return
	}
	var payload rosterProfilesPayload
	if err := h.decodePayload(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, found, err := mutate(ctx, seasonID, teamPID, payload.ProfilePIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "roster profile mutation failed", "seasonId", seasonID, "teamPId", teamPID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, seasonID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

type generateCodesPayload struct {
	Week      string   `json:"week" validate:"required"`
	TeamNames []string `json:"teamNames" validate:"required"`
}

func (h *Handler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateCodes")
	defer span.End()

	seasonID, err := seasonIDPathValue(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var payload generateCodesPayload
	if err := h.decodePayload(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.codeService.GenerateNewCodes(ctx, seasonID, payload.Week, payload.TeamNames)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate codes failed", "seasonId", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListMatchSetups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchSetups")
	defer span.End()

	index, err := h.matchService.SetupIDs(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, index)
}

func (h *Handler) AddMatchSetup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchSetup")
	defer span.End()

	matchID := r.PathValue("matchID")
	var setup match.Setup
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&setup); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.matchService.AddMatchSetup(ctx, matchID, setup); err != nil {
		h.logger.ErrorContext(ctx, "add match setup failed", "matchId", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, map[string]string{"matchPId": matchID})
}

func (h *Handler) SubmitMatchSetup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchSetup")
	defer span.End()

	matchID := r.PathValue("matchID")
	outcome, handled, err := h.matchService.SubmitMatchSetup(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "submit match setup failed", "matchId", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !handled {
		writeError(ctx, w, fmt.Errorf("%w: match=%s has no setup to submit", usecase.ErrNotFound, matchID))
		return
	}
	if len(outcome.ValidationErrors) > 0 {
		writeJSON(ctx, w, http.StatusBadRequest, googleResponseEnvelope{
			APIVersion: googleAPIVersion,
			Data:       outcome,
		})
		return
	}
	writeSuccess(ctx, w, http.StatusOK, outcome)
}

type warmPayload struct {
	MaxWorkers int `json:"maxWorkers" validate:"gte=0,lte=64"`
}

func (h *Handler) WarmCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WarmCache")
	defer span.End()

	payload := warmPayload{}
	if r.ContentLength > 0 {
		if err := h.decodePayload(r, &payload); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.warmService.WarmSeasons(ctx, payload.MaxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "cache warm-up failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}
