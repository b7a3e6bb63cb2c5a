package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/repository"
)

// ongoingSentinel marks an open-ended access window.
const ongoingSentinel = "ongoing"

// CandidateLists holds the output of the four eligibility rules, in the
// fixed priority order the aggregator concatenates them.
type CandidateLists struct {
	DepotMatched  []domain.StaffUser
	S2Admins      []domain.StaffUser
	RailwayAdmins []domain.StaffUser
	AccessGranted []domain.StaffUser
}

// Resolver produces the candidate recipients for one complaint. Each rule
// is independently fault tolerant: a query or parse failure empties that
// rule's list and the others still run.
type Resolver struct {
	trains    repository.TrainRepository
	directory repository.DirectoryRepository
	logger    *zap.Logger
}

// NewResolver constructs a resolver.
func NewResolver(trains repository.TrainRepository, directory repository.DirectoryRepository, logger *zap.Logger) *Resolver {
	return &Resolver{trains: trains, directory: directory, logger: logger}
}

// Resolve runs all four rules against the complaint snapshot.
func (r *Resolver) Resolve(ctx context.Context, details ComplaintDetails) CandidateLists {
	return CandidateLists{
		DepotMatched:  r.depotRule(ctx, details),
		S2Admins:      r.roleRule(ctx, domain.RoleS2Admin),
		RailwayAdmins: r.roleRule(ctx, domain.RoleRailwayAdmin),
		AccessGranted: r.accessWindowRule(ctx, details),
	}
}

// depotRule resolves the canonical depot for the complaint's train via the
// registry, then matches war-room staff whose depot field contains it. A
// train with no registry row yields an empty list, not an error.
func (r *Resolver) depotRule(ctx context.Context, details ComplaintDetails) []domain.StaffUser {
	trainNo := details.TrainKey()
	if trainNo == "" {
		return nil
	}

	train, err := r.trains.FindByNumber(ctx, trainNo)
	if err != nil {
		r.logger.Warn("train registry lookup failed",
			zap.String("train_no", trainNo), zap.Error(err))
		return nil
	}
	if train == nil || train.Depot == "" {
		r.logger.Info("no depot known for train, skipping depot rule",
			zap.String("train_no", trainNo),
			zap.Int64("complain_id", details.ComplainID))
		return nil
	}

	users, err := r.directory.WarRoomUsersInDepot(ctx, train.Depot)
	if err != nil {
		r.logger.Warn("war room user query failed",
			zap.String("depot", train.Depot), zap.Error(err))
		return nil
	}

	// the store matches with a substring predicate; re-check here so the
	// rule's semantics do not depend on the backing query
	var matched []domain.StaffUser
	for _, user := range users {
		if depotContains(user.Depot, train.Depot) {
			matched = append(matched, user)
		}
	}
	return matched
}

// depotContains reports whether a staff depot field covers the canonical
// depot name. The field is free text and may list several depots, so the
// match is unanchored substring containment, case-sensitive.
func depotContains(field, depot string) bool {
	return depot != "" && strings.Contains(field, depot)
}

func (r *Resolver) roleRule(ctx context.Context, role domain.StaffRole) []domain.StaffUser {
	users, err := r.directory.StaffByRole(ctx, role)
	if err != nil {
		r.logger.Warn("staff role query failed",
			zap.String("role", string(role)), zap.Error(err))
		return nil
	}
	return users
}

// accessWindowRule matches staff holding a train-access grant whose window
// covers the complaint date. A malformed payload skips that user only; a
// user contributes at most once even when several windows match.
func (r *Resolver) accessWindowRule(ctx context.Context, details ComplaintDetails) []domain.StaffUser {
	complaintDate, ok := details.ComplaintDate()
	if !ok {
		r.logger.Info("complaint date unavailable, skipping train access rule",
			zap.Int64("complain_id", details.ComplainID))
		return nil
	}
	trainNo := details.TrainKey()
	if trainNo == "" {
		return nil
	}

	grants, err := r.directory.TrainAccessGrants(ctx)
	if err != nil {
		r.logger.Warn("train access query failed", zap.Error(err))
		return nil
	}

	var matched []domain.StaffUser
	for _, grant := range grants {
		var payload map[string][]domain.AccessWindow
		if err := json.Unmarshal([]byte(grant.Details), &payload); err != nil {
			r.logger.Warn("skipping malformed train access payload",
				zap.Int64("user_id", grant.UserID), zap.Error(err))
			continue
		}

		windows, hasTrain := payload[trainNo]
		if !hasTrain {
			continue
		}
		for _, window := range windows {
			covers, err := windowCovers(window, complaintDate)
			if err != nil {
				r.logger.Warn("skipping unparseable access window",
					zap.Int64("user_id", grant.UserID), zap.Error(err))
				continue
			}
			if covers {
				matched = append(matched, domain.StaffUser{
					ID:        grant.UserID,
					Email:     grant.Email,
					FirstName: grant.FirstName,
					LastName:  grant.LastName,
				})
				break
			}
		}
	}
	return matched
}

// windowCovers reports whether the window's date range includes day.
// Both bounds are inclusive; an "ongoing" end date is open-ended.
func windowCovers(window domain.AccessWindow, day time.Time) (bool, error) {
	origin, err := time.Parse(dateLayout, window.OriginDate)
	if err != nil {
		return false, fmt.Errorf("origin_date %q: %w", window.OriginDate, err)
	}
	if day.Before(origin) {
		return false, nil
	}
	if window.EndDate == ongoingSentinel {
		return true, nil
	}
	end, err := time.Parse(dateLayout, window.EndDate)
	if err != nil {
		return false, fmt.Errorf("end_date %q: %w", window.EndDate, err)
	}
	return !day.After(end), nil
}
