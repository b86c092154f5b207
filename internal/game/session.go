// internal/game/session.go
//
// Round lifecycle state machine.
//
//	menu -> playing -> round_result -> playing (next round)
//	                                -> game_over -> playing (auto restart)
//
// One Session owns one logical game timeline. All periodic work (round
// countdown, result countdown, restart countdown, wordle flash refresh)
// is driven by the Run loop's tickers through Tick/RefreshFlash, which
// check the current phase before doing anything; a tick that outlives a
// phase transition is a no-op, so cancellation is implicit and
// idempotent. Chat events arrive from the feed's single reader
// goroutine, so arrival order decides winner races.

package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"katakilat/internal/chat"
	"katakilat/internal/dictionary"
	"katakilat/internal/leaderboard"
)

// Phase is the session's coarse state.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseResult   Phase = "round_result"
	PhaseGameOver Phase = "game_over"
)

// rankCommand bypasses gameplay and answers with the sender's rank.
const rankCommand = "!myrank"

// systemAvatarURL marks generated chat lines (rank replies).
const systemAvatarURL = "https://api.dicebear.com/7.x/bottts/svg?seed=system"

// Config holds the session's timing knobs. All durations are in ticks
// (seconds at the default tick interval).
type Config struct {
	RoundSeconds   int           // countdown per round
	ResultSeconds  int           // result screen display time
	RestartSeconds int           // idle time before auto restart
	RecentChats    int           // chat lines kept for display
	TickInterval   time.Duration // wall time per tick
	FlashInterval  time.Duration // wordle flash refresh period
	Seed           int64         // rng seed; 0 means time-based
}

// DefaultConfig mirrors the live-show tuning: 45s rounds, 8s results,
// 30s auto-restart, flash every 1.5s.
func DefaultConfig() Config {
	return Config{
		RoundSeconds:   45,
		ResultSeconds:  8,
		RestartSeconds: 30,
		RecentChats:    4,
		TickInterval:   time.Second,
		FlashInterval:  1500 * time.Millisecond,
	}
}

// Winner is one credited correct answer within the current round.
type Winner struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	AvatarURL     string `json:"avatarUrl"`
	Answer        string `json:"answer"`
	Points        int    `json:"points"`
}

// ChatLine is a recent-chat display entry.
type ChatLine struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	Text        string    `json:"text"`
	At          time.Time `json:"at"`
	System      bool      `json:"system,omitempty"`
}

var (
	// ErrGameInProgress rejects a start request mid-game.
	ErrGameInProgress = errors.New("game: session already in progress")
	// ErrNotPausable rejects pause outside a pausable result screen.
	ErrNotPausable = errors.New("game: current phase cannot be paused")
	// ErrRoundActive rejects dictionary changes while a round is live.
	ErrRoundActive = errors.New("game: round in progress")
)

// Session drives rounds, consumes chat events and credits winners.
type Session struct {
	mu     sync.Mutex
	cfg    Config
	dict   *dictionary.Dictionary
	gen    *Generator
	board  *leaderboard.Board
	logger zerolog.Logger
	rng    *rand.Rand

	phase       Phase
	queue       []Mode
	roundIdx    int
	mode        Mode
	challenge   *Challenge
	flash       *Flash
	shuffling   bool // classic setup delay: countdown held for one tick
	timeLeft    int
	resultLeft  int
	restartLeft int
	paused      bool
	summary     string
	winners     []Winner
	winnerSet   map[string]struct{}
	chats       []ChatLine
}

// NewSession wires the state machine to its collaborators.
func NewSession(dict *dictionary.Dictionary, board *leaderboard.Board, cfg Config, logger zerolog.Logger) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Session{
		cfg:       cfg,
		dict:      dict,
		gen:       NewGenerator(dict, rng),
		board:     board,
		logger:    logger,
		rng:       rng,
		phase:     PhaseMenu,
		winnerSet: make(map[string]struct{}),
	}
}

// Run drives the session clock until ctx is cancelled. The ticker
// callbacks and HandleChat all serialize on the session mutex, keeping
// a single logical timeline.
func (s *Session) Run(ctx context.Context) {
	tick := time.NewTicker(s.cfg.TickInterval)
	defer tick.Stop()
	flash := time.NewTicker(s.cfg.FlashInterval)
	defer flash.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.Tick()
		case <-flash.C:
			s.RefreshFlash()
		}
	}
}

// Start begins a new 12-round game. Valid from the menu or the
// game-over screen.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhasePlaying || s.phase == PhaseResult {
		return ErrGameInProgress
	}
	s.startLocked()
	return nil
}

func (s *Session) startLocked() {
	s.queue = buildQueue(s.rng)
	s.roundIdx = 0
	s.logger.Info().Int("rounds", len(s.queue)).Msg("session started")
	s.prepareRoundLocked()
}

// prepareRoundLocked resets per-round state and generates the round's
// challenge. Classic generation is deferred by one tick so the
// countdown does not run during the "shuffling" reveal.
func (s *Session) prepareRoundLocked() {
	s.mode = s.queue[s.roundIdx]
	s.phase = PhasePlaying
	s.timeLeft = s.cfg.RoundSeconds
	s.resultLeft = 0
	s.paused = false
	s.summary = ""
	s.flash = nil
	s.winners = nil
	s.winnerSet = make(map[string]struct{})
	s.chats = nil

	if s.mode == ModeClassic {
		s.challenge = nil
		s.shuffling = true
	} else {
		s.shuffling = false
		s.challenge = s.gen.Generate(s.mode)
		if s.mode == ModeWordleAuto {
			f := s.gen.RandomFlash(s.challenge.Target)
			s.flash = &f
		}
	}

	s.logger.Info().
		Int("round", s.roundIdx+1).
		Str("mode", s.mode.String()).
		Msg("round prepared")
}

// Tick advances the session clock by one unit.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhasePlaying:
		if s.shuffling {
			// The setup tick: generate the classic challenge, hold
			// the countdown.
			s.challenge = s.gen.Generate(s.mode)
			s.shuffling = false
			return
		}
		s.timeLeft--
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.endRoundLocked(false)
		}
	case PhaseResult:
		if s.paused {
			return
		}
		s.resultLeft--
		if s.resultLeft <= 0 {
			s.resultLeft = 0
			s.advanceLocked()
		}
	case PhaseGameOver:
		s.restartLeft--
		if s.restartLeft <= 0 {
			s.restartLeft = 0
			s.startLocked()
		}
	}
}

// RefreshFlash regenerates the wordle_auto simulated guess. A no-op in
// every other phase or mode, so a refresh racing a phase transition is
// harmless.
func (s *Session) RefreshFlash() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || s.shuffling || s.challenge == nil || s.mode != ModeWordleAuto {
		return
	}
	f := s.gen.RandomFlash(s.challenge.Target)
	s.flash = &f
}

// Pause freezes the result countdown. Only the result screens of the
// pausable modes accept it; nothing else is suspended.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseResult || !s.mode.Pausable() {
		return ErrNotPausable
	}
	s.paused = true
	return nil
}

// Resume releases a paused result countdown.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseResult {
		return ErrNotPausable
	}
	s.paused = false
	return nil
}

// ImportEntries merges words into the dictionary between rounds. The
// phase check and the merge share the session lock, so a tick cannot
// start a round in between; the active challenge always sees a stable
// pool.
func (s *Session) ImportEntries(entries map[string]dictionary.Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhasePlaying {
		return 0, ErrRoundActive
	}
	return s.dict.Merge(entries), nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// HandleChat consumes one inbound chat event to completion. Called from
// the feed's single delivery goroutine; processing order is arrival
// order.
func (s *Session) HandleChat(ev chat.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.EqualFold(strings.TrimSpace(ev.Text), rankCommand) {
		s.replyRankLocked(ev)
		return
	}

	s.pushChatLocked(ChatLine{
		ID:          ev.ID,
		DisplayName: ev.DisplayName,
		AvatarURL:   ev.AvatarURL,
		Text:        ev.Text,
		At:          ev.ReceivedAt,
	})

	if s.phase != PhasePlaying || s.shuffling || s.challenge == nil {
		return
	}
	if _, already := s.winnerSet[ev.ParticipantID]; already {
		return
	}

	v := evaluate(s.challenge, s.dict, ev.Text)
	if !v.Correct {
		return
	}

	s.winnerSet[ev.ParticipantID] = struct{}{}
	s.winners = append(s.winners, Winner{
		ParticipantID: ev.ParticipantID,
		DisplayName:   ev.DisplayName,
		AvatarURL:     ev.AvatarURL,
		Answer:        v.Answer,
		Points:        v.Points,
	})
	s.board.RegisterWin(ev.ParticipantID, ev.DisplayName, ev.AvatarURL, v.Points)

	s.logger.Info().
		Str("participant", ev.ParticipantID).
		Str("answer", v.Answer).
		Int("points", v.Points).
		Msg("correct answer")

	// Guess race: first correct answer takes the round.
	if s.mode == ModeWordleAuto {
		s.endRoundLocked(true)
	}
}

// replyRankLocked answers a rank query with a system chat line. It
// never touches the winner set or the score; it works in any phase.
func (s *Session) replyRankLocked(ev chat.Event) {
	var text string
	if pos, score, ok := s.board.Rank(ev.ParticipantID); ok {
		text = fmt.Sprintf("@%s Rank #%d • %d Poin", ev.DisplayName, pos, score)
	} else {
		text = fmt.Sprintf("@%s Belum ada skor. Ayo main!", ev.DisplayName)
	}
	s.pushChatLocked(ChatLine{
		ID:          uuid.NewString(),
		DisplayName: "SYSTEM",
		AvatarURL:   systemAvatarURL,
		Text:        text,
		At:          ev.ReceivedAt,
		System:      true,
	})
}

// pushChatLocked prepends a line to the recent-chat ring.
func (s *Session) pushChatLocked(line ChatLine) {
	s.chats = append([]ChatLine{line}, s.chats...)
	if limit := s.cfg.RecentChats; limit > 0 && len(s.chats) > limit {
		s.chats = s.chats[:limit]
	}
}

// endRoundLocked freezes the round and arms the result countdown.
// instant marks a guess-race win before the timer ran out.
func (s *Session) endRoundLocked(instant bool) {
	s.phase = PhaseResult
	s.paused = false
	s.shuffling = false
	s.resultLeft = s.cfg.ResultSeconds
	s.summary = s.summaryLocked(instant)

	s.logger.Info().
		Int("round", s.roundIdx+1).
		Str("mode", s.mode.String()).
		Int("winners", len(s.winners)).
		Bool("instant", instant).
		Msg("round ended")
}

// summaryLocked is the round-end announcement naming the answer.
func (s *Session) summaryLocked(instant bool) string {
	if s.challenge == nil {
		return "Ronde selesai."
	}
	answer := s.challenge.Target
	switch s.mode {
	case ModeClassic:
		return fmt.Sprintf("Ronde selesai. Kata kuncinya adalah %s", answer)
	case ModeDefinition:
		return fmt.Sprintf("Ronde selesai. Jawabannya adalah %s", answer)
	case ModeScramble:
		return fmt.Sprintf("Ronde selesai. Susunan yang benar adalah %s", answer)
	default:
		if instant || len(s.winners) > 0 {
			return fmt.Sprintf("Hebat! Kata misteriusnya adalah %s", answer)
		}
		return fmt.Sprintf("Waktu habis. Kata misteriusnya adalah %s", answer)
	}
}

// advanceLocked moves past the result screen: next round, or game over
// when the queue is exhausted.
func (s *Session) advanceLocked() {
	s.roundIdx++
	if s.roundIdx < len(s.queue) {
		s.prepareRoundLocked()
		return
	}
	s.phase = PhaseGameOver
	s.restartLeft = s.cfg.RestartSeconds
	s.logger.Info().Int("players", s.board.Len()).Msg("game over")
}
