package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aegisleagues/league-data/internal/domain/season"
	"github.com/aegisleagues/league-data/internal/domain/tournament"
	"github.com/aegisleagues/league-data/internal/platform/cache"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

// TournamentAPI is the external code-generation provider. Season creation
// registers a provider-side tournament; code generation mints join codes
// against it.
type TournamentAPI interface {
	CreateTournamentID(ctx context.Context, shortName string) (int64, error)
	GenerateCodes(ctx context.Context, req CodeRequest) (CodeBatch, error)
}

type CodeRequest struct {
	Week         string
	TournamentID int64
	ShortName    string
	Team1        string
	Team2        string
	Count        int
}

type CodeBatch struct {
	Codes        []string
	TimesRetried int
}

// SeasonService serves the season read views and the roster and season
// mutations. Reads are cache-aside: every view has its own key, misses load
// from the document store and enrich hash IDs into display names before the
// view is cached. Writes persist first, then drop the affected keys.
type SeasonService struct {
	seasonRepo     season.Repository
	tournamentRepo tournament.Repository
	resolver       *ResolverService
	api            TournamentAPI
	cache          *cache.Store
	viewTTL        time.Duration
	logger         *logging.Logger
	now            func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	tournamentRepo tournament.Repository,
	resolver *ResolverService,
	api TournamentAPI,
	cacheStore *cache.Store,
	viewTTL time.Duration,
	logger *logging.Logger,
) *SeasonService {
	return &SeasonService{
		seasonRepo:     seasonRepo,
		tournamentRepo: tournamentRepo,
		resolver:       resolver,
		api:            api,
		cache:          cacheStore,
		viewTTL:        viewTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// SeasonID resolves a season short name to its numeric id.
func (s *SeasonService) SeasonID(ctx context.Context, shortName string) (int64, bool, error) {
	filtered := identifier.FilterName(shortName)
	if filtered == "" {
		return 0, false, nil
	}

	key := cacheKeySeasonID + filtered
	id, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (int64, bool, error) {
		return s.seasonRepo.FindIDByShortName(ctx, filtered)
	})
	if err != nil {
		return 0, false, fmt.Errorf("season id by short name: %w", err)
	}
	return id, found, nil
}

// ShortName returns the short name for a season id.
func (s *SeasonService) ShortName(ctx context.Context, seasonID int64) (string, bool, error) {
	key := cacheKeySeasonShortName + strconv.FormatInt(seasonID, 10)
	name, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return "", false, err
		}
		return doc.SeasonShortName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("season short name: %w", err)
	}
	return name, found, nil
}

// Name returns the full display name for a season id.
func (s *SeasonService) Name(ctx context.Context, seasonID int64) (string, bool, error) {
	key := cacheKeySeasonName + strconv.FormatInt(seasonID, 10)
	name, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return "", false, err
		}
		return doc.Information.SeasonName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("season name: %w", err)
	}
	return name, found, nil
}

// Time returns the season's time label, e.g. "Summer 2021".
func (s *SeasonService) Time(ctx context.Context, seasonID int64) (string, bool, error) {
	key := cacheKeySeasonTime + strconv.FormatInt(seasonID, 10)
	label, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return "", false, err
		}
		return doc.Information.SeasonTime, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("season time: %w", err)
	}
	return label, found, nil
}

// TabName returns the season's tab label.
func (s *SeasonService) TabName(ctx context.Context, seasonID int64) (string, bool, error) {
	key := cacheKeySeasonTab + strconv.FormatInt(seasonID, 10)
	label, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return "", false, err
		}
		return doc.Information.SeasonTabName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("season tab name: %w", err)
	}
	return label, found, nil
}

// LeagueSummary groups every season by its time label, newest first.
type LeagueSummary struct {
	Leagues []LeagueEra `json:"Leagues"`
}

type LeagueEra struct {
	SeasonTime string                   `json:"SeasonTime"`
	Date       int64                    `json:"Date"`
	Ranks      map[string][]LeagueEntry `json:"Ranks"`
}

type LeagueEntry struct {
	LeagueType      string `json:"LeagueType"`
	LeagueCode      string `json:"LeagueCode"`
	ShortName       string `json:"ShortName"`
	SeasonShortName string `json:"SeasonShortName"`
}

// Leagues returns the league summary across all seasons.
func (s *SeasonService) Leagues(ctx context.Context) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Leagues")
	defer span.End()

	summary, _, err := cache.Lookup(ctx, s.cache, cacheKeyLeagueSummary, s.viewTTL, func(ctx context.Context) (LeagueSummary, bool, error) {
		infos, err := s.seasonRepo.ListInformation(ctx)
		if err != nil {
			return LeagueSummary{}, false, err
		}
		return buildLeagueSummary(infos), true, nil
	})
	if err != nil {
		return LeagueSummary{}, fmt.Errorf("league summary: %w", err)
	}
	return summary, nil
}

func buildLeagueSummary(infos []season.Information) LeagueSummary {
	eras := map[string]*LeagueEra{}
	for _, info := range infos {
		era, ok := eras[info.SeasonTime]
		if !ok {
			era = &LeagueEra{
				SeasonTime: info.SeasonTime,
				Date:       info.DateOpened,
				Ranks:      map[string][]LeagueEntry{},
			}
			eras[info.SeasonTime] = era
		}
		if info.DateOpened > era.Date {
			era.Date = info.DateOpened
		}
		era.Ranks[info.LeagueRank] = append(era.Ranks[info.LeagueRank], LeagueEntry{
			LeagueType:      info.LeagueType,
			LeagueCode:      info.LeagueCode,
			ShortName:       info.SeasonShortName,
			SeasonShortName: info.SeasonShortName,
		})
	}

	summary := LeagueSummary{Leagues: make([]LeagueEra, 0, len(eras))}
	for _, era := range eras {
		summary.Leagues = append(summary.Leagues, *era)
	}
	sort.Slice(summary.Leagues, func(i, j int) bool {
		return summary.Leagues[i].Date > summary.Leagues[j].Date
	})
	return summary
}

// Information returns the season's information view with hash IDs resolved
// into display names.
func (s *SeasonService) Information(ctx context.Context, seasonID int64) (season.Information, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Information")
	defer span.End()

	key := cacheKeySeasonInfo + strconv.FormatInt(seasonID, 10)
	info, found, err := cache.Lookup(ctx, s.cache, key, s.viewTTL, func(ctx context.Context) (season.Information, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return season.Information{}, false, err
		}
		info := doc.Information
		if err := s.enrichInformation(ctx, &info); err != nil {
			return season.Information{}, false, err
		}
		return info, true, nil
	})
	if err != nil {
		return season.Information{}, false, fmt.Errorf("season information: %w", err)
	}
	return info, found, nil
}

func (s *SeasonService) enrichInformation(ctx context.Context, info *season.Information) error {
	if info.TournamentPIDs.RegTournamentPID != 0 {
		name, exists, err := s.tournamentShortName(ctx, info.TournamentPIDs.RegTournamentPID)
		if err != nil {
			return err
		}
		if exists {
			info.TournamentPIDs.RegTournamentShortName = name
		}
	}
	if info.TournamentPIDs.PostTournamentPID != 0 {
		name, exists, err := s.tournamentShortName(ctx, info.TournamentPIDs.PostTournamentPID)
		if err != nil {
			return err
		}
		if exists {
			info.TournamentPIDs.PostTournamentShortName = name
		}
	}

	for i := range info.FinalStandings {
		name, exists, err := s.resolver.TeamNameByHashID(ctx, info.FinalStandings[i].TeamHID)
		if err != nil {
			return err
		}
		if exists {
			info.FinalStandings[i].TeamName = name
		}
	}

	if info.FinalsMvpHID != "" {
		name, exists, err := s.resolver.ProfileNameByHashID(ctx, info.FinalsMvpHID)
		if err != nil {
			return err
		}
		if exists {
			info.FinalsMvpName = name
		}
	}

	if info.AllStars != nil {
		stars := []struct {
			hid  string
			name *string
		}{
			{info.AllStars.TopHID, &info.AllStars.TopName},
			{info.AllStars.JungleHID, &info.AllStars.JungleName},
			{info.AllStars.MidHID, &info.AllStars.MidName},
			{info.AllStars.BotHID, &info.AllStars.BotName},
			{info.AllStars.SupportHID, &info.AllStars.SupportName},
		}
		for _, star := range stars {
			if star.hid == "" {
				continue
			}
			name, exists, err := s.resolver.ProfileNameByHashID(ctx, star.hid)
			if err != nil {
				return err
			}
			if exists {
				*star.name = name
			}
		}
	}
	return nil
}

func (s *SeasonService) tournamentShortName(ctx context.Context, tournamentID int64) (string, bool, error) {
	key := cacheKeyTournamentShortName + strconv.FormatInt(tournamentID, 10)
	return cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		doc, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
		if err != nil || !exists {
			return "", false, err
		}
		return doc.TournamentShortName, true, nil
	})
}

// RosterByID returns the roster keyed by hash IDs, enriched with names.
func (s *SeasonService) RosterByID(ctx context.Context, seasonID int64) (season.Roster, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.RosterByID")
	defer span.End()

	key := cacheKeySeasonRoster + strconv.FormatInt(seasonID, 10)
	roster, found, err := cache.Lookup(ctx, s.cache, key, s.viewTTL, func(ctx context.Context) (season.Roster, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists {
			return season.Roster{}, false, err
		}
		roster := doc.Roster
		if err := s.enrichRoster(ctx, &roster); err != nil {
			return season.Roster{}, false, err
		}
		return roster, true, nil
	})
	if err != nil {
		return season.Roster{}, false, fmt.Errorf("season roster: %w", err)
	}
	return roster, found, nil
}

func (s *SeasonService) enrichRoster(ctx context.Context, roster *season.Roster) error {
	for teamHID, entry := range roster.Teams {
		name, exists, err := s.resolver.TeamNameByHashID(ctx, teamHID)
		if err != nil {
			return err
		}
		if exists {
			entry.TeamName = name
		}
		entry.TeamHID = teamHID
		for profileHID, player := range entry.Players {
			profileName, exists, err := s.resolver.ProfileNameByHashID(ctx, profileHID)
			if err != nil {
				return err
			}
			if exists {
				player.ProfileName = profileName
			}
			player.ProfileHID = profileHID
			entry.Players[profileHID] = player
		}
		roster.Teams[teamHID] = entry
	}
	return nil
}

// RosterByName returns the roster re-keyed by display names. It is derived
// from the hash-keyed view, so it rides on the same cache entry.
func (s *SeasonService) RosterByName(ctx context.Context, seasonID int64) (season.Roster, bool, error) {
	roster, found, err := s.RosterByID(ctx, seasonID)
	if err != nil || !found {
		return season.Roster{}, found, err
	}

	named := season.Roster{
		Teams:    make(map[string]season.RosterTeam, len(roster.Teams)),
		Profiles: roster.Profiles,
	}
	for teamHID, entry := range roster.Teams {
		teamKey := entry.TeamName
		if teamKey == "" {
			teamKey = teamHID
		}
		players := make(map[string]season.PlayerEntry, len(entry.Players))
		for profileHID, player := range entry.Players {
			playerKey := player.ProfileName
			if playerKey == "" {
				playerKey = profileHID
			}
			players[playerKey] = player
		}
		entry.Players = players
		named.Teams[teamKey] = entry
	}
	return named, true, nil
}

// MostRecentTeam returns the team hash ID a profile most recently played for
// in the season.
func (s *SeasonService) MostRecentTeam(ctx context.Context, seasonID int64, profileHID string) (string, bool, error) {
	roster, found, err := s.RosterByID(ctx, seasonID)
	if err != nil || !found {
		return "", false, err
	}
	entry, ok := roster.Profiles[profileHID]
	if !ok {
		return "", false, nil
	}
	return entry.MostRecentTeamHID, true, nil
}

// Regular returns the regular-season standings and games with team and
// profile names resolved.
func (s *SeasonService) Regular(ctx context.Context, seasonID int64) (season.Regular, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Regular")
	defer span.End()

	key := cacheKeySeasonRegular + strconv.FormatInt(seasonID, 10)
	regular, found, err := cache.Lookup(ctx, s.cache, key, s.viewTTL, func(ctx context.Context) (season.Regular, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists || doc.Regular == nil {
			return season.Regular{}, false, err
		}
		regular := *doc.Regular
		if err := s.enrichRegular(ctx, &regular); err != nil {
			return season.Regular{}, false, err
		}
		return regular, true, nil
	})
	if err != nil {
		return season.Regular{}, false, fmt.Errorf("season regular: %w", err)
	}
	return regular, found, nil
}

func (s *SeasonService) enrichRegular(ctx context.Context, regular *season.Regular) error {
	for d := range regular.RegularSeasonDivisions {
		teams := regular.RegularSeasonDivisions[d].RegularSeasonTeams
		for t := range teams {
			name, exists, err := s.resolver.TeamNameByHashID(ctx, teams[t].TeamHID)
			if err != nil {
				return err
			}
			if exists {
				teams[t].TeamName = name
			}
		}
	}
	for g := range regular.RegularSeasonGames {
		if err := s.enrichGame(ctx, &regular.RegularSeasonGames[g]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SeasonService) enrichGame(ctx context.Context, game *season.Game) error {
	if name, exists, err := s.resolver.TeamNameByHashID(ctx, game.BlueTeamHID); err != nil {
		return err
	} else if exists {
		game.BlueTeamName = name
	}
	if name, exists, err := s.resolver.TeamNameByHashID(ctx, game.RedTeamHID); err != nil {
		return err
	} else if exists {
		game.RedTeamName = name
	}
	if game.ModeratorHID != "" {
		name, exists, err := s.resolver.ProfileNameByHashID(ctx, game.ModeratorHID)
		if err != nil {
			return err
		}
		if exists {
			game.ModeratorName = name
		}
	}
	if game.MvpHID != "" {
		name, exists, err := s.resolver.ProfileNameByHashID(ctx, game.MvpHID)
		if err != nil {
			return err
		}
		if exists {
			game.MvpName = name
		}
	}
	return nil
}

// Playoffs returns the playoff bracket and games with names resolved.
func (s *SeasonService) Playoffs(ctx context.Context, seasonID int64) (season.Playoffs, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Playoffs")
	defer span.End()

	key := cacheKeySeasonPlayoffs + strconv.FormatInt(seasonID, 10)
	playoffs, found, err := cache.Lookup(ctx, s.cache, key, s.viewTTL, func(ctx context.Context) (season.Playoffs, bool, error) {
		doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
		if err != nil || !exists || doc.Playoffs == nil {
			return season.Playoffs{}, false, err
		}
		playoffs := *doc.Playoffs
		if err := s.enrichPlayoffs(ctx, &playoffs); err != nil {
			return season.Playoffs{}, false, err
		}
		return playoffs, true, nil
	})
	if err != nil {
		return season.Playoffs{}, false, fmt.Errorf("season playoffs: %w", err)
	}
	return playoffs, found, nil
}

func (s *SeasonService) enrichPlayoffs(ctx context.Context, playoffs *season.Playoffs) error {
	for round, series := range playoffs.PlayoffBracket {
		for i := range series {
			if name, exists, err := s.resolver.TeamNameByHashID(ctx, series[i].HigherTeamHID); err != nil {
				return err
			} else if exists {
				series[i].HigherTeamName = name
			}
			if name, exists, err := s.resolver.TeamNameByHashID(ctx, series[i].LowerTeamHID); err != nil {
				return err
			} else if exists {
				series[i].LowerTeamName = name
			}
			if series[i].SeriesMvpHID != "" {
				name, exists, err := s.resolver.ProfileNameByHashID(ctx, series[i].SeriesMvpHID)
				if err != nil {
					return err
				}
				if exists {
					series[i].SeriesMvpName = name
				}
			}
		}
		playoffs.PlayoffBracket[round] = series
	}
	for g := range playoffs.PlayoffGames {
		if err := s.enrichGame(ctx, &playoffs.PlayoffGames[g]); err != nil {
			return err
		}
	}
	return nil
}

// RosterMutation reports one roster write: what changed, per item.
type RosterMutation struct {
	SeasonID int64         `json:"SeasonPId"`
	TeamName string        `json:"TeamName,omitempty"`
	Messages []string      `json:"Messages"`
	Roster   season.Roster `json:"Roster"`
}

// AddRosterTeams adds teams to the season roster. Duplicates are reported
// per item and never abort the rest of the batch.
func (s *SeasonService) AddRosterTeams(ctx context.Context, seasonID int64, teamPIDs []int64) (RosterMutation, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.AddRosterTeams")
	defer span.End()

	doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return RosterMutation{}, false, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return RosterMutation{}, false, nil
	}
	ensureRosterMaps(&doc.Roster)

	result := RosterMutation{SeasonID: seasonID, Messages: []string{}}
	changed := false
	for _, teamPID := range teamPIDs {
		teamHID := identifier.TeamHashID(teamPID)
		label := s.teamLabel(ctx, teamPID)
		if _, ok := doc.Roster.Teams[teamHID]; ok {
			result.Messages = append(result.Messages, fmt.Sprintf("%s - Team already in the season Roster.", label))
			continue
		}
		doc.Roster.Teams[teamHID] = season.RosterTeam{Players: map[string]season.PlayerEntry{}}
		result.Messages = append(result.Messages, fmt.Sprintf("%s - Team added to the season Roster.", label))
		changed = true
	}

	if changed {
		if err := s.seasonRepo.Put(ctx, doc); err != nil {
			return RosterMutation{}, false, fmt.Errorf("put season: %w", err)
		}
		s.invalidateRoster(ctx, seasonID)
	}
	result.Roster = doc.Roster
	return result, true, nil
}

// AddRosterProfiles adds profiles to one roster team. Each profile added is
// recorded as the profile's most recent team for the season.
func (s *SeasonService) AddRosterProfiles(ctx context.Context, seasonID, teamPID int64, profilePIDs []int64) (RosterMutation, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.AddRosterProfiles")
	defer span.End()

	doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return RosterMutation{}, false, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return RosterMutation{}, false, nil
	}
	ensureRosterMaps(&doc.Roster)

	teamHID := identifier.TeamHashID(teamPID)
	teamLabel := s.teamLabel(ctx, teamPID)
	result := RosterMutation{SeasonID: seasonID, TeamName: teamLabel, Messages: []string{}}

	teamEntry, ok := doc.Roster.Teams[teamHID]
	if !ok {
		result.Messages = append(result.Messages, fmt.Sprintf("%s - Team is not in the season Roster.", teamLabel))
		result.Roster = doc.Roster
		return result, true, nil
	}
	if teamEntry.Players == nil {
		teamEntry.Players = map[string]season.PlayerEntry{}
	}

	changed := false
	for _, profilePID := range profilePIDs {
		profileHID := identifier.ProfileHashID(profilePID)
		label := s.profileLabel(ctx, profilePID)
		if _, ok := teamEntry.Players[profileHID]; ok {
			result.Messages = append(result.Messages, fmt.Sprintf("%s - Profile is already in the Team.", label))
			continue
		}
		teamEntry.Players[profileHID] = season.PlayerEntry{}
		doc.Roster.Profiles[profileHID] = season.RosterProfile{MostRecentTeamHID: teamHID}
		result.Messages = append(result.Messages, fmt.Sprintf("%s - Profile added to the Team.", label))
		changed = true
	}
	doc.Roster.Teams[teamHID] = teamEntry

	if changed {
		if err := s.seasonRepo.Put(ctx, doc); err != nil {
			return RosterMutation{}, false, fmt.Errorf("put season: %w", err)
		}
		s.invalidateRoster(ctx, seasonID)
	}
	result.Roster = doc.Roster
	return result, true, nil
}

// RemoveRosterProfiles removes profiles from one roster team. Profiles not
// on the team are reported per item.
func (s *SeasonService) RemoveRosterProfiles(ctx context.Context, seasonID, teamPID int64, profilePIDs []int64) (RosterMutation, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.RemoveRosterProfiles")
	defer span.End()

	doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return RosterMutation{}, false, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return RosterMutation{}, false, nil
	}
	ensureRosterMaps(&doc.Roster)

	teamHID := identifier.TeamHashID(teamPID)
	teamLabel := s.teamLabel(ctx, teamPID)
	result := RosterMutation{SeasonID: seasonID, TeamName: teamLabel, Messages: []string{}}

	teamEntry, ok := doc.Roster.Teams[teamHID]
	if !ok {
		result.Messages = append(result.Messages, fmt.Sprintf("%s - Team is not in the season Roster.", teamLabel))
		result.Roster = doc.Roster
		return result, true, nil
	}

	changed := false
	for _, profilePID := range profilePIDs {
		profileHID := identifier.ProfileHashID(profilePID)
		label := s.profileLabel(ctx, profilePID)
		if _, ok := teamEntry.Players[profileHID]; !ok {
			result.Messages = append(result.Messages, fmt.Sprintf("%s - Profile not found in the Team.", label))
			continue
		}
		delete(teamEntry.Players, profileHID)
		result.Messages = append(result.Messages, fmt.Sprintf("%s - Profile removed from the Team.", label))
		changed = true
	}
	doc.Roster.Teams[teamHID] = teamEntry

	if changed {
		if err := s.seasonRepo.Put(ctx, doc); err != nil {
			return RosterMutation{}, false, fmt.Errorf("put season: %w", err)
		}
		s.invalidateRoster(ctx, seasonID)
	}
	result.Roster = doc.Roster
	return result, true, nil
}

func (s *SeasonService) teamLabel(ctx context.Context, teamPID int64) string {
	name, exists, err := s.resolver.TeamNameByID(ctx, teamPID)
	if err != nil || !exists {
		return "Team #" + strconv.FormatInt(teamPID, 10)
	}
	return name
}

func (s *SeasonService) profileLabel(ctx context.Context, profilePID int64) string {
	name, exists, err := s.resolver.ProfileNameByID(ctx, profilePID)
	if err != nil || !exists {
		return "Profile #" + strconv.FormatInt(profilePID, 10)
	}
	return name
}

func (s *SeasonService) invalidateRoster(ctx context.Context, seasonID int64) {
	key := cacheKeySeasonRoster + strconv.FormatInt(seasonID, 10)
	s.cache.Delete(ctx, key)
}

func ensureRosterMaps(roster *season.Roster) {
	if roster.Teams == nil {
		roster.Teams = map[string]season.RosterTeam{}
	}
	if roster.Profiles == nil {
		roster.Profiles = map[string]season.RosterProfile{}
	}
}

// CreateSeasonInput carries the fields needed to open a new season.
type CreateSeasonInput struct {
	SeasonName      string
	SeasonShortName string
	LeagueCode      string
	LeagueRank      string
}

// CreateSeason registers a provider tournament, allocates ids, persists the
// Regular and Playoffs tournament documents and then the season itself.
// The display name must read "<Season> <Year> Aegis <Type> League".
func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.CreateSeason")
	defer span.End()

	name := strings.TrimSpace(input.SeasonName)
	shortName := identifier.FilterName(input.SeasonShortName)
	if shortName == "" {
		return season.Season{}, fmt.Errorf("%w: season short name is required", ErrInvalidInput)
	}

	tokens := strings.Fields(name)
	if len(tokens) != 5 {
		return season.Season{}, fmt.Errorf("%w: season name %q must have five words", ErrInvalidInput, name)
	}
	if tokens[2] != "Aegis" || tokens[4] != "League" {
		return season.Season{}, fmt.Errorf("%w: season name %q must read \"<Season> <Year> Aegis <Type> League\"", ErrInvalidInput, name)
	}
	seasonTime := tokens[0] + " " + tokens[1]
	tabName := tokens[0] + " " + tokens[1] + " " + tokens[3]
	leagueType := tokens[3]

	apiID, err := s.api.CreateTournamentID(ctx, shortName)
	if err != nil {
		return season.Season{}, fmt.Errorf("create provider tournament: %w", err)
	}

	seasonIDs, err := s.seasonRepo.ListIDs(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("list season ids: %w", err)
	}
	seasonID := maxID(seasonIDs) + 1

	tournamentIDs, err := s.tournamentRepo.ListIDs(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("list tournament ids: %w", err)
	}
	regID := maxID(tournamentIDs) + 1
	postID := regID + 1

	reg := tournament.Tournament{
		TournamentPID:       regID,
		TournamentShortName: shortName + "reg",
		Information: tournament.Information{
			TournamentName:      name + " Regular Season",
			TournamentType:      tournament.TypeRegular,
			TournamentShortName: shortName + "reg",
			TournamentTabName:   seasonTime + " Regular",
			SeasonPID:           seasonID,
		},
	}
	post := tournament.Tournament{
		TournamentPID:       postID,
		TournamentShortName: shortName + "post",
		Information: tournament.Information{
			TournamentName:      name + " Playoffs",
			TournamentType:      tournament.TypePlayoffs,
			TournamentShortName: shortName + "post",
			TournamentTabName:   seasonTime + " Playoffs",
			SeasonPID:           seasonID,
		},
	}
	if err := s.tournamentRepo.Put(ctx, reg); err != nil {
		return season.Season{}, fmt.Errorf("put regular tournament: %w", err)
	}
	if err := s.tournamentRepo.Put(ctx, post); err != nil {
		return season.Season{}, fmt.Errorf("put playoffs tournament: %w", err)
	}

	doc := season.Season{
		SeasonPID:       seasonID,
		SeasonShortName: shortName,
		Information: season.Information{
			Status:          "Open",
			DateOpened:      s.now().Unix(),
			SeasonName:      name,
			SeasonShortName: shortName,
			SeasonTabName:   tabName,
			SeasonTime:      seasonTime,
			LeagueCode:      input.LeagueCode,
			LeagueRank:      input.LeagueRank,
			LeagueType:      leagueType,
			TournamentPIDs: season.TournamentPIDs{
				RegTournamentPID:  regID,
				PostTournamentPID: postID,
			},
		},
		Codes: season.Codes{
			TournamentAPIID: apiID,
			Weeks:           map[string]season.WeekCodes{},
		},
		Roster: season.Roster{
			Teams:    map[string]season.RosterTeam{},
			Profiles: map[string]season.RosterProfile{},
		},
	}
	if err := s.seasonRepo.Put(ctx, doc); err != nil {
		return season.Season{}, fmt.Errorf("put season: %w", err)
	}
	s.cache.Delete(ctx, cacheKeyLeagueSummary)

	s.logger.InfoContext(ctx, "season created",
		"seasonId", seasonID,
		"shortName", shortName,
		"regTournamentId", regID,
		"postTournamentId", postID,
	)
	return doc, nil
}

func maxID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max
}
