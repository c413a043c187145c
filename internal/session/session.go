package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"button-game-backend/internal/game"
)

type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseCountdown Phase = "countdown"
	PhaseActive    Phase = "active"
	PhaseEnded     Phase = "ended"
)

const (
	RoleHost     = "host"
	RolePlayer   = "player"
	RoleObserver = "observer"
)

// OutboxSize is the buffer depth the boundary gives each participant outbox.
const OutboxSize = 32

type Options struct {
	Clock            clockwork.Clock
	Logger           *zap.Logger
	Rand             *rand.Rand
	CountdownSeconds int
	PickCooldown     time.Duration
	// OnClose is called once, from inside the loop, when the session tears
	// itself down; the hub uses it to drop the code from its registry.
	OnClose func(code string)
}

type member struct {
	connID        string
	nickname      string
	host          bool
	observer      bool
	picksUsed     int
	cooldownUntil time.Time
	outbox        chan Event
}

// Session owns one code-identified game. A single goroutine drains the
// inbox, so every mutation of membership, board, prize pool and leaderboard
// is serialized in arrival order; no other component holds a mutable
// reference to any of it.
type Session struct {
	inbox       chan Msg
	code        string
	phase       Phase
	rules       game.Rules
	board       *game.Board
	pool        *game.PrizePool
	members     []*member
	leaderboard []LeaderboardEntry
	remaining   int // countdown seconds left
	timerGen    int

	clock     clockwork.Clock
	rng       *rand.Rand
	log       *zap.Logger
	countdown int
	cooldown  time.Duration
	onClose   func(string)
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(parent context.Context, code string, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Clock.Now().UnixNano()))
	}
	if opts.CountdownSeconds <= 0 {
		opts.CountdownSeconds = 10
	}
	if opts.PickCooldown <= 0 {
		opts.PickCooldown = 500 * time.Millisecond
	}
	s := &Session{
		inbox:     make(chan Msg, 64),
		code:      code,
		phase:     PhaseLobby,
		rules:     game.DefaultRules(),
		clock:     opts.Clock,
		rng:       opts.Rand,
		log:       opts.Logger.With(zap.String("session", code)),
		countdown: opts.CountdownSeconds,
		cooldown:  opts.PickCooldown,
		onClose:   opts.OnClose,
		ctx:       ctx,
		cancel:    cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has torn down. Boundaries waiting on a
// reply select on it, so a lookup that raced the teardown cannot wedge its
// connection.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.teardown()
			return

		case m := <-s.inbox:
			if stop := s.handle(m); stop {
				return
			}
		}
	}
}

func (s *Session) handle(m Msg) bool {
	switch msg := m.(type) {
	case Join:
		msg.Reply <- s.join(msg)
	case Leave:
		return s.leave(msg.ConnID)
	case UpdateConfig:
		msg.Reply <- s.updateConfig(msg)
	case Start:
		msg.Reply <- s.start(msg.ConnID)
	case Pick:
		msg.Reply <- s.pick(msg)
	case countdownTick:
		s.onCountdownTick(msg.gen)
	case relocateTick:
		s.onRelocateTick(msg.gen)
	case GetState:
		msg.Reply <- s.view()
	case Shutdown:
		s.teardown()
		return true
	}
	return false
}

func (s *Session) join(msg Join) error {
	if s.phase != PhaseLobby && s.phase != PhaseCountdown {
		return game.ErrSessionNotJoinable
	}
	if s.rules.EntryKey != "" && !msg.AsHost && msg.EntryKey != s.rules.EntryKey {
		return game.ErrInvalidEntryKey
	}
	if s.memberByConn(msg.ConnID) != nil {
		return nil // already a member; joining twice is a no-op
	}
	s.members = append(s.members, &member{
		connID:   msg.ConnID,
		nickname: msg.Nickname,
		host:     msg.AsHost,
		outbox:   msg.Outbox,
	})
	s.log.Info("participant joined",
		zap.String("nickname", msg.Nickname), zap.Bool("host", msg.AsHost))
	s.broadcast(MembershipChanged{Members: s.memberInfos()})
	return nil
}

// leave removes a participant; a repeat for an already-removed connection is
// a no-op, so duplicate disconnect reports are harmless. Returns true when
// the session tore down.
func (s *Session) leave(connID string) bool {
	m := s.memberByConn(connID)
	if m == nil {
		return false
	}
	for i, cand := range s.members {
		if cand == m {
			s.members = append(s.members[:i], s.members[i+1:]...)
			break
		}
	}
	if m.outbox != nil {
		close(m.outbox)
		m.outbox = nil
	}
	s.log.Info("participant left", zap.String("nickname", m.nickname))

	// No playable session without its host before the game starts.
	if m.host && (s.phase == PhaseLobby || s.phase == PhaseCountdown) {
		s.end("host left")
		s.teardown()
		return true
	}
	if len(s.members) == 0 {
		s.teardown()
		return true
	}
	s.broadcast(MembershipChanged{Members: s.memberInfos()})
	return false
}

func (s *Session) updateConfig(msg UpdateConfig) error {
	m := s.memberByConn(msg.ConnID)
	if m == nil || !m.host {
		return game.ErrNotHost
	}
	if s.phase != PhaseLobby {
		return game.ErrWrongPhase
	}
	updated, err := s.rules.Apply(msg.Patch)
	if err != nil {
		return err
	}
	s.rules = updated
	return nil
}

func (s *Session) start(connID string) error {
	m := s.memberByConn(connID)
	if m == nil || !m.host {
		return game.ErrNotHost
	}
	if s.phase != PhaseLobby {
		return game.ErrWrongPhase
	}
	s.phase = PhaseCountdown
	s.remaining = s.countdown
	s.broadcast(CountdownTick{SecondsRemaining: s.remaining})
	s.schedule(time.Second, countdownTick{gen: s.timerGen})
	if s.rules.RelocateGrandPrize && len(s.rules.GrandPrizes) > 0 {
		s.schedule(time.Duration(s.rules.RelocationIntervalSec)*time.Second,
			relocateTick{gen: s.timerGen})
	}
	s.log.Info("countdown started", zap.Int("seconds", s.remaining))
	return nil
}

func (s *Session) onCountdownTick(gen int) {
	if gen != s.timerGen || s.phase != PhaseCountdown {
		return // stale fire, session moved on
	}
	s.remaining--
	if s.remaining > 0 {
		s.broadcast(CountdownTick{SecondsRemaining: s.remaining})
		s.schedule(time.Second, countdownTick{gen: s.timerGen})
		return
	}
	s.activate()
}

// activate freezes the configuration into the board and prize pool and
// resolves the host-participation flag exactly once.
func (s *Session) activate() {
	s.phase = PhaseActive
	s.board = game.NewBoard(s.rules.AllowReclaim)
	s.pool = game.NewPrizePool(s.rules.GrandPrizes, s.rules.ConsolationPrizes)
	s.pool.PlaceGrand(s.board.OpenCells(), s.rng)

	hostDemoted := false
	for _, m := range s.members {
		if m.host && !s.rules.HostParticipates {
			m.observer = true
			hostDemoted = true
		}
	}
	s.broadcast(GameStarted{})
	if hostDemoted {
		s.broadcast(MembershipChanged{Members: s.memberInfos()})
	}
	s.log.Info("game started", zap.Int("members", len(s.members)))
}

func (s *Session) onRelocateTick(gen int) {
	if gen != s.timerGen || s.phase == PhaseEnded {
		return
	}
	if s.phase == PhaseActive {
		s.pool.Relocate(s.board.OpenCells(), s.rng)
	}
	s.schedule(time.Duration(s.rules.RelocationIntervalSec)*time.Second,
		relocateTick{gen: s.timerGen})
}

// pick is the single atomic unit of work per claim: validation, board
// claim, budget and cooldown update, prize assignment, leaderboard append
// and the resulting broadcasts all happen before the next inbox message.
func (s *Session) pick(msg Pick) error {
	if s.phase != PhaseActive {
		return game.ErrWrongPhase
	}
	m := s.memberByConn(msg.ConnID)
	if m == nil || m.observer {
		return game.ErrNotAPlayer
	}
	now := s.clock.Now()
	if now.Before(m.cooldownUntil) {
		return game.ErrOnCooldown
	}
	if s.rules.PicksPerPlayer-m.picksUsed <= 0 {
		return game.ErrNoPicksLeft
	}
	switch s.board.Claim(msg.Cell, m.nickname) {
	case game.OutOfRange:
		return game.ErrOutOfRange
	case game.AlreadyClaimed:
		return game.ErrAlreadyClaimed
	}

	m.picksUsed++
	m.cooldownUntil = now.Add(s.cooldown)
	s.broadcast(BoardChanged{CellNumber: msg.Cell, ClaimedBy: s.board.ClaimedBy(msg.Cell)})

	result := PrizeResult{Outcome: "none"}
	if award, ok := s.pool.Assign(msg.Cell); ok {
		result = PrizeResult{
			Outcome:          string(award.Tier),
			PrizeLabel:       award.Label,
			ConfirmationCode: confirmationCode(s.rng),
		}
		s.leaderboard = append(s.leaderboard, LeaderboardEntry{
			Nickname:   m.nickname,
			PrizeLabel: award.Label,
		})
		s.log.Info("prize awarded",
			zap.String("nickname", m.nickname),
			zap.String("tier", string(award.Tier)),
			zap.String("label", award.Label))
	}
	s.sendTo(m, result)
	if result.Outcome != "none" {
		s.broadcast(LeaderboardChanged{Entries: s.leaderboardEntries()})
	}
	if s.rules.EndWhenExhausted && s.pool.Exhausted() {
		s.end("prizes exhausted")
	}
	return nil
}

// end marks the session terminal and bumps the timer generation so pending
// fires become no-ops when processed. The session stays resident for final
// leaderboard reads until its members drain away.
func (s *Session) end(reason string) {
	if s.phase == PhaseEnded {
		return
	}
	s.phase = PhaseEnded
	s.timerGen++
	s.broadcast(SessionEnded{Reason: reason})
	s.log.Info("session ended", zap.String("reason", reason))
}

func (s *Session) teardown() {
	for _, m := range s.members {
		if m.outbox != nil {
			close(m.outbox)
			m.outbox = nil
		}
	}
	s.members = nil
	if s.onClose != nil {
		s.onClose(s.code)
		s.onClose = nil
	}
	s.cancel()

	// Actions queued behind the one that tore the session down still get
	// exactly one outcome each.
	for {
		select {
		case m := <-s.inbox:
			s.reject(m)
		default:
			return
		}
	}
}

func (s *Session) reject(m Msg) {
	switch msg := m.(type) {
	case Join:
		msg.Reply <- game.ErrSessionNotFound
	case UpdateConfig:
		msg.Reply <- game.ErrSessionNotFound
	case Start:
		msg.Reply <- game.ErrSessionNotFound
	case Pick:
		msg.Reply <- game.ErrSessionNotFound
	case GetState:
		msg.Reply <- View{Phase: PhaseEnded}
	}
}

func (s *Session) broadcast(ev Event) {
	for _, m := range s.members {
		s.sendTo(m, ev)
	}
}

// sendTo enqueues without blocking; a participant whose outbox is full has a
// stalled writer, so the channel is closed and the writer's disconnect path
// delivers the Leave.
func (s *Session) sendTo(m *member, ev Event) {
	if m.outbox == nil {
		return
	}
	select {
	case m.outbox <- ev:
	default:
		s.log.Warn("dropping slow participant", zap.String("nickname", m.nickname))
		close(m.outbox)
		m.outbox = nil
	}
}

func (s *Session) memberByConn(connID string) *member {
	for _, m := range s.members {
		if m.connID == connID {
			return m
		}
	}
	return nil
}

func (s *Session) memberInfos() []MemberInfo {
	infos := make([]MemberInfo, 0, len(s.members))
	for _, m := range s.members {
		infos = append(infos, MemberInfo{Nickname: m.nickname, Role: m.role()})
	}
	return infos
}

func (m *member) role() string {
	switch {
	case m.observer:
		return RoleObserver
	case m.host:
		return RoleHost
	default:
		return RolePlayer
	}
}

func (s *Session) leaderboardEntries() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(s.leaderboard))
	copy(entries, s.leaderboard)
	return entries
}

func (s *Session) view() View {
	picks := make(map[string]int, len(s.members))
	for _, m := range s.members {
		picks[m.nickname] = m.picksUsed
	}
	v := View{
		Phase:       s.phase,
		Rules:       s.rules,
		Members:     s.memberInfos(),
		Leaderboard: s.leaderboardEntries(),
		PicksUsed:   picks,
		Remaining:   s.remaining,
	}
	if s.pool != nil {
		v.GrandCell = s.pool.GrandCell()
	}
	return v
}

const confirmationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func confirmationCode(rng *rand.Rand) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = confirmationCharset[rng.Intn(len(confirmationCharset))]
	}
	return string(b)
}
