package connect

import (
	"context"
	"strings"

	"github.com/devmatch/devmatch/internal/app"
	"github.com/devmatch/devmatch/internal/db"
	svcErr "github.com/devmatch/devmatch/internal/errors"
	"github.com/devmatch/devmatch/internal/repository"
	"github.com/devmatch/devmatch/internal/utils/pagination"
)

// Service implements the relationship lifecycle engine and the feed
// generator: sending interest/ignore, reviewing requests, and computing which
// candidate profiles a viewer may see.
type Service struct {
	appCtx      *app.AppContext
	userRepo    *repository.UserRepository
	requestRepo *repository.RequestRepository
}

// NewService creates the connect service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		userRepo:    repository.NewUserRepository(appCtx.DB),
		requestRepo: repository.NewRequestRepository(appCtx.DB),
	}
}

// Send records the viewer's action on a feed candidate.
//
// Behavior:
//  1. action must be interested or ignored → InvalidAction otherwise.
//  2. target must resolve to an existing user → TargetNotFound.
//  3. Any existing record between the pair, either direction and any status,
//     blocks a new one forever → DuplicateRequest. There is no resend after
//     rejection; relationship records are permanent once created.
//  4. viewer == target → SelfReference.
//  5. Create with status = action.
//
// Two concurrent sends race safely on the unique pair index: the loser's
// insert fails and is reported as DuplicateRequest. No locks are held.
//
// Example:
//
//	svc.Send(ctx, viewer, 7, db.StatusInterested)
func (s *Service) Send(ctx context.Context, viewer *db.User, targetID uint64, action string) (*db.ConnectionRequest, error) {
	s.appCtx.Logger.Debug("send called", "viewer", viewer.ID, "target", targetID, "action", action)

	if !db.IsSendStatus(action) {
		return nil, svcErr.InvalidAction("Invalid status value")
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if target == nil {
		return nil, svcErr.NotFound("User not found")
	}

	exists, err := s.requestRepo.ExistsForPair(ctx, viewer.ID, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if exists {
		return nil, svcErr.DuplicateRequest()
	}

	if viewer.ID == targetID {
		return nil, svcErr.SelfReference()
	}

	req := &db.ConnectionRequest{
		FromUserID: viewer.ID,
		ToUserID:   targetID,
		Status:     action,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		// Unique index broke the race; report it like the pre-check would.
		return nil, svcErr.Map(err)
	}

	if action == db.StatusInterested {
		if err := s.appCtx.RedisCache.IncrPendingCount(ctx, targetID); err != nil {
			s.appCtx.Logger.Warn("pending count incr failed", "recipient", targetID, "err", err)
		}
	}

	s.appCtx.Logger.Info("request created", "request_id", req.ID, "from", viewer.ID, "to", targetID, "status", action)
	return req, nil
}

// Review lets the recipient accept or reject a pending request.
//
// Behavior:
//   - decision must be accepted or rejected → InvalidAction.
//   - Missing record → RequestNotFound.
//   - Only the recipient (toUserId) may review → AuthorizationError.
//   - Only a pending (interested) record may be reviewed: terminal states are
//     immutable and ignored records are invisible to the recipient →
//     AlreadyReviewed.
//
// Example:
//
//	svc.Review(ctx, viewerID, 15, db.StatusAccepted)
func (s *Service) Review(ctx context.Context, viewerID, requestID uint64, decision string) (*db.ConnectionRequest, error) {
	s.appCtx.Logger.Debug("review called", "viewer", viewerID, "request", requestID, "decision", decision)

	if !db.IsReviewStatus(decision) {
		return nil, svcErr.InvalidAction("Invalid status value")
	}

	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req == nil {
		return nil, svcErr.NotFound("Connection request not found")
	}

	if req.ToUserID != viewerID {
		return nil, svcErr.Authorization("Only the recipient can review this request")
	}
	if req.Status != db.StatusInterested {
		return nil, svcErr.AlreadyReviewed()
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, decision); err != nil {
		return nil, svcErr.Map(err)
	}
	req.Status = decision

	if err := s.appCtx.RedisCache.DecrPendingCount(ctx, viewerID); err != nil {
		s.appCtx.Logger.Warn("pending count decr failed", "recipient", viewerID, "err", err)
	}

	s.appCtx.Logger.Info("request reviewed", "request_id", requestID, "decision", decision)
	return req, nil
}

// FeedPage is one page of candidates plus the hasMore approximation.
type FeedPage struct {
	Data    []db.PublicUser `json:"data"`
	HasMore bool            `json:"hasMore"`
}

// Feed computes the candidate profiles eligible to be shown to the viewer.
//
// Behavior:
//   - limit clamped to [1, 50], page to ≥ 1; offset = (page-1)*limit.
//   - Excludes the viewer and every relationship counterpart across all four
//     statuses; an ignored user never comes back.
//   - Viewer's interestedIn drives the gender filter; empty or "all"
//     (case-insensitive) means no filter.
//   - hasMore is true when the page came back full; a full final page yields
//     a false positive and the next page is simply empty.
//
// Example:
//
//	svc.Feed(ctx, viewer, 1, 10)
func (s *Service) Feed(ctx context.Context, viewer *db.User, page, limit int) (*FeedPage, error) {
	p := pagination.Normalize(page, limit)

	genderFilter := viewer.InterestedIn
	if strings.EqualFold(genderFilter, "all") {
		genderFilter = ""
	}

	users, err := s.userRepo.Feed(ctx, viewer.ID, genderFilter, p.Offset, p.Limit)
	if err != nil {
		s.appCtx.Logger.Error("feed query failed", "viewer", viewer.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	out := &FeedPage{
		Data:    make([]db.PublicUser, 0, len(users)),
		HasMore: pagination.HasMore(len(users), p.Limit),
	}
	for i := range users {
		out.Data = append(out.Data, users[i].Public())
	}

	s.appCtx.Logger.Debug("feed result", "viewer", viewer.ID, "page", p.Number, "count", len(out.Data), "has_more", out.HasMore)
	return out, nil
}

// ReceivedRequest pairs a pending request with its sender's public profile.
type ReceivedRequest struct {
	ID        uint64        `json:"id"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"createdAt"`
	FromUser  db.PublicUser `json:"fromUser"`
}

// ReceivedRequests lists pending requests addressed to the viewer with the
// sender's public fields populated. Reads the same status constant the send
// path writes.
func (s *Service) ReceivedRequests(ctx context.Context, viewerID uint64) ([]ReceivedRequest, error) {
	reqs, err := s.requestRepo.PendingReceived(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	out := make([]ReceivedRequest, 0, len(reqs))
	for i := range reqs {
		rr := ReceivedRequest{
			ID:        reqs[i].ID,
			Status:    reqs[i].Status,
			CreatedAt: reqs[i].CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if reqs[i].FromUser != nil {
			rr.FromUser = reqs[i].FromUser.Public()
		}
		out = append(out, rr)
	}
	return out, nil
}

// PendingCount returns how many requests await the viewer's review.
// Cache-first strategy:
//  1. Read the Redis counter (requests:pending:<id>), refreshing its TTL.
//  2. On miss, fall back to the DB and prime the cache with a 1h TTL.
//
// Send and Review keep a primed counter in step (+1 / -1).
func (s *Service) PendingCount(ctx context.Context, viewerID uint64) (int64, error) {
	if n, ok, err := s.appCtx.RedisCache.GetPendingCount(ctx, viewerID); err == nil && ok {
		return n, nil
	}

	count, err := s.requestRepo.CountPendingReceived(ctx, viewerID)
	if err != nil {
		return 0, svcErr.Map(err)
	}
	if err := s.appCtx.RedisCache.SetPendingCount(ctx, viewerID, count); err != nil {
		s.appCtx.Logger.Warn("pending count prime failed", "recipient", viewerID, "err", err)
	}
	return count, nil
}

// Connections returns the public profile of the counterpart of every accepted
// record involving the viewer, whichever side the viewer is on.
func (s *Service) Connections(ctx context.Context, viewerID uint64) ([]db.PublicUser, error) {
	reqs, err := s.requestRepo.AcceptedForUser(ctx, viewerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	out := make([]db.PublicUser, 0, len(reqs))
	for i := range reqs {
		var other *db.User
		if reqs[i].FromUserID == viewerID {
			other = reqs[i].ToUser
		} else {
			other = reqs[i].FromUser
		}
		if other == nil {
			continue
		}
		out = append(out, other.Public())
	}
	return out, nil
}
