package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	apperrors "github.com/giquina/armora-sub001/pkg/errors"
	"github.com/giquina/armora-sub001/pkg/metrics"
	"github.com/giquina/armora-sub001/pkg/util"
)

// Service coordinates booking sessions with their collaborators.
type Service interface {
	Start(ctx context.Context, owner Owner) (View, error)
	Get(ctx context.Context, owner Owner, id uuid.UUID) (View, error)
	Update(ctx context.Context, owner Owner, id uuid.UUID, req Update) (View, error)
	Assess(ctx context.Context, owner Owner, id uuid.UUID, answers []risk.Answer) (View, error)
	Submit(ctx context.Context, owner Owner, id uuid.UUID) (Assignment, error)
	CancelSubmission(ctx context.Context, owner Owner, id uuid.UUID) (bool, error)
	Export(ctx context.Context, owner Owner, id uuid.UUID) (Export, error)
	Resume(ctx context.Context, owner Owner, id uuid.UUID) (View, error)
	RecentDestinations(ctx context.Context, ownerKey string) ([]string, error)
	History(ctx context.Context, owner Owner) ([]Assignment, error)
	Stats() metrics.SubmissionCounts
}

// Owner identifies the caller. A zero UserID is a guest; guests never
// receive the reward discount.
type Owner struct {
	UserID         int64
	RewardUnlocked bool
}

// Guest reports whether the caller is unauthenticated.
func (o Owner) Guest() bool {
	return o.UserID == 0
}

// DiscountEligible is the only place reward eligibility is decided.
func (o Owner) DiscountEligible() bool {
	return !o.Guest() && o.RewardUnlocked
}

// Key is the storage key for the caller. Guests are bound to the session.
func (o Owner) Key(sessionID uuid.UUID) string {
	if o.Guest() {
		return "guest:" + sessionID.String()
	}
	return "user:" + strconv.FormatInt(o.UserID, 10)
}

// Update carries a partial draft edit. Nil fields are left alone.
type Update struct {
	Origin         *string
	Destination    *string
	ScenarioID     *string
	TierID         *string
	Timing         *TimingChoice
	ScheduledAt    *time.Time
	Terms          map[string]bool
	AcceptAllTerms bool
}

// View is the transport-neutral read model of a session.
type View struct {
	ID                 uuid.UUID        `json:"id"`
	Draft              Draft            `json:"draft"`
	State              State            `json:"state"`
	Assessment         *risk.Assessment `json:"assessment,omitempty"`
	RecentDestinations []string         `json:"recentDestinations"`
	Submitting         bool             `json:"submitting"`
}

// Export describes a stored snapshot.
type Export struct {
	Key      string   `json:"key"`
	Snapshot Snapshot `json:"snapshot"`
}

type service struct {
	cfg          Config
	catalog      *catalog.Catalog
	assessor     risk.Assessor
	sessions     SessionStore
	destinations DestinationStore
	history      AssignmentRepository
	snapshots    SnapshotStorage
	gateway      PaymentGateway
	stats        *metrics.SubmissionStats
	logger       *slog.Logger
	now          func() time.Time
}

// NewService wires up the booking domain.
func NewService(cfg Config, cat *catalog.Catalog, assessor risk.Assessor, sessions SessionStore, destinations DestinationStore, history AssignmentRepository, snapshots SnapshotStorage, gateway PaymentGateway, stats *metrics.SubmissionStats, logger *slog.Logger) Service {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return &service{
		cfg:          cfg,
		catalog:      cat,
		assessor:     assessor,
		sessions:     sessions,
		destinations: destinations,
		history:      history,
		snapshots:    snapshots,
		gateway:      gateway,
		stats:        stats,
		logger:       logger.With("component", "booking.service"),
		now:          util.NowUTC,
	}
}

func (s *service) Start(ctx context.Context, owner Owner) (View, error) {
	id := uuid.New()
	key := owner.Key(id)
	seed := s.loadRecent(ctx, key)
	cfg := NewConfigurator(s.catalog, s.cfg.Terms, WithClock(s.now), WithRecentDestinations(s.cfg.RecentLimit, seed))
	if _, err := cfg.SetDiscountEligibility(owner.DiscountEligible()); err != nil {
		return View{}, err
	}
	session := Session{ID: id, Owner: key, Configurator: cfg, CreatedAt: s.now()}
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save booking session", err)
	}
	s.logger.Info("booking started", "session", id, "guest", owner.Guest())
	return viewOf(session), nil
}

func (s *service) Get(ctx context.Context, owner Owner, id uuid.UUID) (View, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return View{}, err
	}
	return viewOf(session), nil
}

func (s *service) Update(ctx context.Context, owner Owner, id uuid.UUID, req Update) (View, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return View{}, err
	}
	edits, err := s.editsFor(req)
	if err != nil {
		return View{}, err
	}
	edits = append(edits, EditDiscountEligibility(owner.DiscountEligible()))
	if _, err := session.Configurator.Apply(edits...); err != nil {
		return View{}, err
	}
	s.persistRecent(ctx, session)
	return viewOf(session), nil
}

func (s *service) Assess(ctx context.Context, owner Owner, id uuid.UUID, answers []risk.Answer) (View, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return View{}, err
	}
	assessment, err := s.assessor.Finalize(answers)
	if err != nil {
		return View{}, err
	}
	if _, err := session.Configurator.ApplyAssessment(&assessment); err != nil {
		return View{}, err
	}
	return viewOf(session), nil
}

func (s *service) Submit(ctx context.Context, owner Owner, id uuid.UUID) (Assignment, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return Assignment{}, err
	}
	cfg := session.Configurator
	if _, err := cfg.SetDiscountEligibility(owner.DiscountEligible()); err != nil {
		return Assignment{}, err
	}

	s.stats.Attempt()
	confirmation, err := cfg.Submit(ctx, s.gateway)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeSubmissionCancelled) {
			s.stats.Cancelled()
			s.logger.Info("submission cancelled", "session", id)
		} else {
			s.stats.Failure()
			s.logger.Warn("submission failed", "session", id, "error", err)
		}
		return Assignment{}, err
	}
	s.stats.Success()

	assignment := Assignment{
		ID:           uuid.New(),
		SessionID:    session.ID,
		Owner:        session.Owner,
		Snapshot:     confirmation.Snapshot,
		Quote:        confirmation.Quote,
		PaymentToken: confirmation.PaymentToken,
		ConfirmedAt:  confirmation.ConfirmedAt,
	}
	// Payment already went through; a history failure must not hide that.
	// History and the snapshot are settled before the session goes away so
	// Resume never sees a paid booking without a trace of it.
	if err := s.history.Save(ctx, assignment); err != nil {
		s.logger.Error("failed to record assignment", "session", id, "assignment", assignment.ID, "error", err)
	}
	if err := s.snapshots.Delete(ctx, snapshotKey(session.Owner, id)); err != nil {
		s.logger.Error("failed to remove paid snapshot", "session", id, "error", err)
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to remove consumed session", "session", id, "error", err)
	}
	s.logger.Info("booking confirmed", "session", id, "assignment", assignment.ID, "tier", assignment.Quote.TierID)
	return assignment, nil
}

func (s *service) CancelSubmission(ctx context.Context, owner Owner, id uuid.UUID) (bool, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return false, err
	}
	return session.Configurator.CancelSubmission(), nil
}

func (s *service) Export(ctx context.Context, owner Owner, id uuid.UUID) (Export, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return Export{}, err
	}
	snap := session.Configurator.Snapshot()
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return Export{}, apperrors.Wrap(apperrors.CodeStorage, "failed to encode snapshot", err)
	}
	key := snapshotKey(session.Owner, id)
	if err := s.snapshots.Put(ctx, key, data); err != nil {
		return Export{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store snapshot", err)
	}
	s.logger.Info("snapshot exported", "session", id, "key", key)
	return Export{Key: key, Snapshot: snap}, nil
}

func (s *service) Resume(ctx context.Context, owner Owner, id uuid.UUID) (View, error) {
	key := owner.Key(id)
	if existing, ok, err := s.sessions.Get(ctx, id); err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load booking session", err)
	} else if ok && existing.Owner != key {
		return View{}, apperrors.Wrap(apperrors.CodeNotFound, "booking not found", nil)
	}
	paid, found, err := s.history.FindBySession(ctx, id)
	if err != nil {
		return View{}, apperrors.Wrap(apperrors.CodeHistory, "failed to check booking history", err)
	}
	if found {
		if paid.Owner != key {
			return View{}, apperrors.Wrap(apperrors.CodeNotFound, "booking not found", nil)
		}
		return View{}, apperrors.Wrap(apperrors.CodeDraftConsumed, "booking has already been paid for", nil)
	}

	data, err := s.snapshots.Get(ctx, snapshotKey(key, id))
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return View{}, apperrors.Wrap(apperrors.CodeNotFound, "no saved snapshot for this booking", err)
		}
		return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to read snapshot", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return View{}, err
	}

	opts := []Option{WithClock(s.now)}
	if stored := s.loadRecent(ctx, key); len(stored) > 0 {
		opts = append(opts, WithRecentDestinations(s.cfg.RecentLimit, stored))
	} else {
		opts = append(opts, WithRecentDestinations(s.cfg.RecentLimit, snap.RecentDestinations))
	}
	cfg, err := Restore(snap, s.catalog, s.cfg.Terms, opts...)
	if err != nil {
		return View{}, err
	}
	if _, err := cfg.SetDiscountEligibility(owner.DiscountEligible()); err != nil {
		return View{}, err
	}
	session := Session{ID: id, Owner: key, Configurator: cfg, CreatedAt: s.now()}
	if err := s.sessions.Replace(ctx, session); err != nil {
		switch {
		case errors.Is(err, ErrSessionOwner):
			return View{}, apperrors.Wrap(apperrors.CodeNotFound, "booking not found", nil)
		case apperrors.CodeOf(err) != "":
			return View{}, err
		default:
			return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save booking session", err)
		}
	}
	s.persistRecent(ctx, session)
	s.logger.Info("booking resumed", "session", id)
	return viewOf(session), nil
}

func (s *service) RecentDestinations(ctx context.Context, ownerKey string) ([]string, error) {
	items, err := s.destinations.Load(ctx, ownerKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load recent destinations", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (s *service) History(ctx context.Context, owner Owner) ([]Assignment, error) {
	if owner.Guest() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "booking history requires an account", nil)
	}
	items, err := s.history.ListByOwner(ctx, owner.Key(uuid.Nil), s.cfg.HistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeHistory, "failed to load booking history", err)
	}
	if items == nil {
		items = []Assignment{}
	}
	return items, nil
}

func (s *service) Stats() metrics.SubmissionCounts {
	return s.stats.Snapshot()
}

func (s *service) load(ctx context.Context, owner Owner, id uuid.UUID) (Session, error) {
	session, ok, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load booking session", err)
	}
	if !ok || session.Owner != owner.Key(id) {
		return Session{}, apperrors.Wrap(apperrors.CodeNotFound, "booking not found", nil)
	}
	return session, nil
}

// editsFor validates catalog references before they reach the configurator,
// which treats an unknown tier as a programming error.
func (s *service) editsFor(req Update) ([]Edit, error) {
	var edits []Edit
	if req.Origin != nil {
		edits = append(edits, EditOrigin(*req.Origin))
	}
	if req.Destination != nil {
		edits = append(edits, EditDestination(*req.Destination))
	}
	if req.ScenarioID != nil {
		edits = append(edits, EditScenario(*req.ScenarioID))
	}
	if req.TierID != nil {
		id := catalog.TierID(*req.TierID)
		if id != "" {
			if _, ok := s.catalog.Tier(id); !ok {
				return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown service tier %q", id), nil)
			}
		}
		edits = append(edits, EditTier(id))
	}
	if req.Timing != nil {
		var at time.Time
		if req.ScheduledAt != nil {
			at = *req.ScheduledAt
		}
		edits = append(edits, EditTiming(*req.Timing, at))
	} else if req.ScheduledAt != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "scheduledAt requires timing SCHEDULED", nil)
	}
	if req.AcceptAllTerms {
		edits = append(edits, EditAllTerms(true))
	}
	for key, accepted := range req.Terms {
		edits = append(edits, EditTerm(key, accepted))
	}
	return edits, nil
}

func (s *service) loadRecent(ctx context.Context, key string) []string {
	items, err := s.destinations.Load(ctx, key)
	if err != nil {
		s.logger.Warn("failed to load recent destinations", "owner", key, "error", err)
		return nil
	}
	return items
}

func (s *service) persistRecent(ctx context.Context, session Session) {
	items, changed := session.Configurator.TakeRecentChange()
	if !changed {
		return
	}
	if err := s.destinations.Save(ctx, session.Owner, items); err != nil {
		s.logger.Warn("failed to save recent destinations", "owner", session.Owner, "error", err)
	}
}

func viewOf(session Session) View {
	cfg := session.Configurator
	return View{
		ID:                 session.ID,
		Draft:              cfg.Draft(),
		State:              cfg.State(),
		Assessment:         cfg.Assessment(),
		RecentDestinations: cfg.RecentDestinations(),
		Submitting:         cfg.Submitting(),
	}
}

func snapshotKey(owner string, id uuid.UUID) string {
	return fmt.Sprintf("snapshots/%s/%s.json", owner, id)
}
