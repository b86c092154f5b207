// internal/game/snapshot.go
//
// Read-only projections of the session for the presentation layer.
// Everything here is a copy; callers can hold a Snapshot across ticks.
// The target answer and the classic alternates are only revealed once
// the round is over.

package game

import "sort"

// ChallengeView is the display payload of the active challenge.
type ChallengeView struct {
	Mode        Mode     `json:"mode"`
	StartLetter string   `json:"startLetter,omitempty"`
	EndLetter   string   `json:"endLetter,omitempty"`
	Definition  string   `json:"definition,omitempty"`
	OriginTag   string   `json:"originTag,omitempty"`
	Scrambled   string   `json:"scrambled,omitempty"`
	SecretLen   int      `json:"secretLength,omitempty"`
	Answer      string   `json:"answer,omitempty"`     // result phase only
	Alternates  []string `json:"alternates,omitempty"` // classic, result phase only
	AltCount    int      `json:"altCount,omitempty"`   // classic, result phase only
}

// Snapshot is the full presentation projection.
type Snapshot struct {
	Phase       Phase          `json:"phase"`
	Round       int            `json:"round,omitempty"` // 1-based
	TotalRounds int            `json:"totalRounds,omitempty"`
	Mode        Mode           `json:"mode,omitempty"`
	Shuffling   bool           `json:"shuffling,omitempty"`
	TimeLeft    int            `json:"timeLeft,omitempty"`
	ResultLeft  int            `json:"resultLeft,omitempty"`
	RestartLeft int            `json:"restartLeft,omitempty"`
	Paused      bool           `json:"paused,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Challenge   *ChallengeView `json:"challenge,omitempty"`
	Flash       *Flash         `json:"flash,omitempty"`
	Winners     []Winner       `json:"winners"` // sorted by points desc
	Chats       []ChatLine     `json:"chats"`
}

// Snapshot captures the current state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:       s.phase,
		TotalRounds: len(s.queue),
		Shuffling:   s.shuffling,
		TimeLeft:    s.timeLeft,
		ResultLeft:  s.resultLeft,
		RestartLeft: s.restartLeft,
		Paused:      s.paused,
		Summary:     s.summary,
		Winners:     append([]Winner(nil), s.winners...),
		Chats:       append([]ChatLine(nil), s.chats...),
	}
	if s.phase == PhasePlaying || s.phase == PhaseResult {
		snap.Round = s.roundIdx + 1
		snap.Mode = s.mode
	}
	if s.challenge != nil && (s.phase == PhasePlaying || s.phase == PhaseResult) {
		snap.Challenge = s.challengeViewLocked()
		if s.phase == PhasePlaying && s.mode == ModeWordleAuto && s.flash != nil {
			f := *s.flash
			snap.Flash = &f
		}
	}

	// Display order is by points; the internal winner list stays in
	// arrival order.
	sort.SliceStable(snap.Winners, func(i, j int) bool {
		return snap.Winners[i].Points > snap.Winners[j].Points
	})
	return snap
}

func (s *Session) challengeViewLocked() *ChallengeView {
	ch := s.challenge
	view := &ChallengeView{Mode: ch.Mode}

	switch ch.Mode {
	case ModeClassic:
		view.StartLetter = ch.StartLetter
		view.EndLetter = ch.EndLetter
	case ModeDefinition:
		view.Definition = ch.Definition
		view.OriginTag = ch.OriginTag
		view.SecretLen = len(ch.Target)
		view.StartLetter = ch.Target[:1]
	case ModeScramble:
		view.Scrambled = ch.Scrambled
	case ModeWordleAuto:
		view.SecretLen = ch.SecretLength
	}

	if s.phase == PhaseResult {
		view.Answer = ch.Target
		if ch.Mode == ModeClassic {
			view.Alternates = append([]string(nil), ch.Alternates...)
			view.AltCount = len(ch.Alternates)
		}
	}
	return view
}
