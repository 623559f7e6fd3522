// Package ledger implements the XP, level and virtual-currency rules
// over per-user store records.
package ledger

import (
	"errors"
	"math/rand"
	"sync"

	"streamnotify/internal/store"
)

var (
	ErrAlreadyClaimed    = errors.New("daily reward already claimed today")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

const (
	xpPerMessageMin = 5
	xpPerMessageMax = 15

	dailyRewardMin = 50
	dailyRewardMax = 200
)

// Level derives a level from total XP. Level is always a pure function
// of XP and must never be set independently of this formula.
func Level(xp int) int {
	return xp/100 + 1
}

// XPForLevel returns the total XP required to reach a level
func XPForLevel(level int) int {
	return (level - 1) * 100
}

// Engine mutates user records through the store, which serializes every
// read-modify-write cycle
type Engine struct {
	users *store.UserStore

	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a ledger engine. rnd may be nil to use a time-seeded source.
func New(users *store.UserStore, rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{users: users, rnd: rnd}
}

func (e *Engine) randRange(min, max int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return min + e.rnd.Intn(max-min+1)
}

// GrantMessageXP adds a random XP amount for one chat message and
// reports whether the user leveled up
func (e *Engine) GrantMessageXP(userID string) (rec store.UserRecord, leveledUp bool, err error) {
	gain := e.randRange(xpPerMessageMin, xpPerMessageMax)
	rec, err = e.users.Update(userID, func(u *store.UserRecord) error {
		oldLevel := u.Level
		u.XP += gain
		u.Level = Level(u.XP)
		leveledUp = u.Level > oldLevel
		return nil
	})
	return rec, leveledUp, err
}

// ClaimDaily grants the daily reward once per calendar day. today is a
// YYYY-MM-DD date string.
func (e *Engine) ClaimDaily(userID, today string) (rec store.UserRecord, reward int, err error) {
	reward = e.randRange(dailyRewardMin, dailyRewardMax)
	rec, err = e.users.Update(userID, func(u *store.UserRecord) error {
		if u.DailyLast == today {
			return ErrAlreadyClaimed
		}
		u.Balance += reward
		u.DailyLast = today
		return nil
	})
	if err != nil {
		return rec, 0, err
	}
	return rec, reward, nil
}

// Transfer moves amount from sender to recipient. The sum of both
// balances is invariant across a successful transfer.
func (e *Engine) Transfer(senderID, recipientID string, amount int) (sender, recipient store.UserRecord, err error) {
	if amount <= 0 {
		return sender, recipient, ErrInvalidAmount
	}
	if senderID == recipientID {
		return sender, recipient, ErrSelfTransfer
	}
	return e.users.UpdateTwo(senderID, recipientID, func(s, r *store.UserRecord) error {
		if s.Balance < amount {
			return ErrInsufficientFunds
		}
		s.Balance -= amount
		r.Balance += amount
		return nil
	})
}

// Balance returns a user's current balance
func (e *Engine) Balance(userID string) (int, error) {
	rec, err := e.users.Get(userID)
	if err != nil {
		return 0, err
	}
	return rec.Balance, nil
}
