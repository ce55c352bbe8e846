package session

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"remote-voting/logger"
	constituencyModel "remote-voting/models/constituency"
	voterModel "remote-voting/models/voter"
	ballotService "remote-voting/services/ballot"
)

// TokenTTL bounds how long a session token stays valid. Independent of OTP
// expiry: this covers the authenticated browsing window, not the login window.
const TokenTTL = 2 * time.Hour

// ErrInvalidToken covers expired, tampered, or malformed session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Session holds the authenticated voter snapshot and its resolved
// constituency. Constructed only via Establish or Restore, destroyed via
// Clear; there is no ambient global session.
type Session struct {
	Voter        *voterModel.Voter
	Constituency *constituencyModel.Constituency
}

// HasBallotContext reports whether constituency resolution succeeded. Without
// it, ballot access is impossible until the session is re-established.
func (s *Session) HasBallotContext() bool {
	return s.Constituency != nil
}

// Claims is the serialized voter snapshot carried by the client. It is a
// cache: has_voted reflects the state at issue time and can go stale until
// the next write re-reads authoritative state.
type Claims struct {
	VoterID        string `json:"voter_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	ConstituencyID string `json:"constituency_id"`
	HasVoted       bool   `json:"has_voted"`
	jwt.RegisteredClaims
}

// Manager establishes, serializes, and restores sessions.
type Manager struct {
	ballot    *ballotService.Service
	secret    []byte
	restoring atomic.Int32
}

func NewManager(db *gorm.DB, secret []byte) *Manager {
	return &Manager{
		ballot: ballotService.NewBallotService(db),
		secret: secret,
	}
}

// Establish builds a session for a just-verified voter and attaches the
// constituency from reference data. Resolution failure is tolerated: the
// session still holds the voter, only without ballot context.
func (m *Manager) Establish(v *voterModel.Voter) *Session {
	s := &Session{Voter: v}
	c, err := m.ballot.FindConstituency(v.ConstituencyID)
	if err != nil {
		logger.Error("constituency resolution failed for voter "+v.VoterID, err)
		return s
	}
	s.Constituency = c
	return s
}

// Clear erases the session. The client-held token becomes irrelevant once the
// client discards it; nothing is stored server-side.
func (m *Manager) Clear(s *Session) {
	s.Voter = nil
	s.Constituency = nil
}

// IssueToken serializes the session's voter snapshot as a signed token.
func (m *Manager) IssueToken(s *Session) (string, error) {
	now := time.Now()
	claims := Claims{
		VoterID:        s.Voter.VoterID,
		Name:           s.Voter.Name,
		Email:          s.Voter.Email,
		Mobile:         s.Voter.Mobile,
		ConstituencyID: s.Voter.ConstituencyID,
		HasVoted:       s.Voter.HasVoted,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Voter.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Restore rebuilds a session from a previously issued token. The snapshot is
// loaded verbatim, including its has_voted flag as of last issue; it is not
// re-validated against the registry. The constituency is re-resolved.
func (m *Manager) Restore(tokenString string) (*Session, error) {
	m.restoring.Add(1)
	defer m.restoring.Add(-1)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	v := &voterModel.Voter{
		ID:             claims.Subject,
		VoterID:        claims.VoterID,
		Name:           claims.Name,
		Email:          claims.Email,
		Mobile:         claims.Mobile,
		ConstituencyID: claims.ConstituencyID,
		HasVoted:       claims.HasVoted,
	}
	return m.Establish(v), nil
}

// IsLoading reports whether a session restoration is currently in flight.
func (m *Manager) IsLoading() bool {
	return m.restoring.Load() > 0
}
