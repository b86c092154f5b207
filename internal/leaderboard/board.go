// internal/leaderboard/board.go
//
// Process-wide cumulative score board.
//
// The in-memory map is authoritative for the session. Every change is
// pushed to the Store in the background; a failed write is logged and
// simply retried on the next change. Persistence never blocks round
// progression.

package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one participant's cumulative score.
type Entry struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	AvatarURL     string `json:"avatarUrl"`
	Score         int    `json:"score"`
}

// Store persists the full score mapping. Implementations live in
// internal/store.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Save(ctx context.Context, entries map[string]Entry) error
}

const saveTimeout = 5 * time.Second

// Board accumulates scores across rounds and sessions.
type Board struct {
	mu      sync.Mutex
	entries map[string]Entry
	store   Store
	logger  zerolog.Logger
}

// New constructs a Board seeded from the store. A load failure is
// non-fatal: the board starts empty and stays in memory-only mode until
// the next successful write.
func New(store Store, logger zerolog.Logger) *Board {
	b := &Board{
		entries: make(map[string]Entry),
		store:   store,
		logger:  logger,
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if loaded, err := store.Load(ctx); err != nil {
			logger.Warn().Err(err).Msg("leaderboard load failed, starting empty")
		} else {
			if loaded == nil {
				loaded = make(map[string]Entry)
			}
			b.entries = loaded
			logger.Info().Int("players", len(loaded)).Msg("leaderboard loaded")
		}
	}
	return b
}

// RegisterWin credits points to a participant, creating the entry on
// first win. The caller is responsible for per-round dedupe; every call
// here counts. The latest display name and avatar win.
func (b *Board) RegisterWin(participantID, displayName, avatarURL string, points int) {
	if points < 0 {
		points = 0
	}
	b.mu.Lock()
	cur := b.entries[participantID]
	b.entries[participantID] = Entry{
		ParticipantID: participantID,
		DisplayName:   displayName,
		AvatarURL:     avatarURL,
		Score:         cur.Score + points,
	}
	snap := b.copyLocked()
	b.mu.Unlock()

	b.persist(snap)
}

// Reset clears every entry and persists the empty state.
func (b *Board) Reset() {
	b.mu.Lock()
	b.entries = make(map[string]Entry)
	b.mu.Unlock()

	b.persist(map[string]Entry{})
}

// Rank returns a participant's 1-based position and score, ordered by
// descending score with participant id as the tie-break. ok is false
// when the participant has never scored; the lookup never creates an
// entry.
func (b *Board) Rank(participantID string) (pos int, score int, ok bool) {
	for i, e := range b.Snapshot() {
		if e.ParticipantID == participantID {
			return i + 1, e.Score, true
		}
	}
	return 0, 0, false
}

// Snapshot returns all entries sorted by descending score, ties broken
// by ascending participant id.
func (b *Board) Snapshot() []Entry {
	b.mu.Lock()
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out
}

// Len reports the number of participants with a score.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func (b *Board) copyLocked() map[string]Entry {
	out := make(map[string]Entry, len(b.entries))
	for k, v := range b.entries {
		out[k] = v
	}
	return out
}

// persist writes the snapshot in the background, fire-and-forget.
func (b *Board) persist(snap map[string]Entry) {
	if b.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := b.store.Save(ctx, snap); err != nil {
			b.logger.Warn().Err(err).Msg("leaderboard save failed")
		}
	}()
}
