package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	errorspkg "adboard/internal/types/errors"
)

const (
	keyPrefix    = "session:"
	bearerPrefix = "Bearer "
)

// sessionClaims - содержимое JWT. exp не кладем: срок жизни задает запись в Redis, ее можно продлить
type sessionClaims struct {
	SessionID string `json:"session_id"`
	UserID    int64  `json:"id"`
	jwt.StandardClaims
}

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  []byte
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  []byte(tokenSecret),
		baseDuration: baseDuration,
	}
}

// BaseDuration - на сколько создается и продлевается сессия
func (sr *SessionRepository) BaseDuration() time.Duration {
	return sr.baseDuration
}

func (sr *SessionRepository) CreateSession(ctx context.Context, userID int64, role string) (*Session, string, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      role,
		StartTime: now,
		EndTime:   now.Add(sr.baseDuration),
	}

	if err := sr.save(ctx, s); err != nil {
		return nil, "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID:      s.ID,
		UserID:         userID,
		StandardClaims: jwt.StandardClaims{IssuedAt: now.Unix()},
	})
	tokenStr, err := token.SignedString(sr.tokenSecret)
	if err != nil {
		sr.Logger.Errorw("Failed to sign JWT token", zap.Error(err))
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}

	sr.Logger.Infof("Session %s created for user %d", s.ID, userID)
	return s, tokenStr, nil
}

func (sr *SessionRepository) CheckSession(r *http.Request) (*Session, error) {
	claims, err := sr.parseToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	s, err := sr.load(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(s.EndTime) {
		if err = sr.RedisClient.Del(ctx, keyPrefix+s.ID).Err(); err != nil {
			sr.Logger.Warnf("Failed to drop expired session %s: %v", s.ID, err)
		}
		return nil, errorspkg.ErrSessionIsExpired
	}

	return s, nil
}

// parseToken проверяет подпись и достает session_id из заголовка Authorization
func (sr *SessionRepository) parseToken(header string) (*sessionClaims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errorspkg.ErrNoAuth
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, bearerPrefix), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sr.tokenSecret, nil
	})
	if err != nil || !token.Valid {
		sr.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, errorspkg.ErrNoAuth
	}
	if claims.SessionID == "" {
		sr.Logger.Warn("Missing session_id claim in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	return claims, nil
}

func (sr *SessionRepository) ExtendSession(ctx context.Context, sessionID string) error {
	s, err := sr.load(ctx, sessionID)
	if err != nil {
		return err
	}

	s.EndTime = time.Now().Add(sr.baseDuration)

	return sr.save(ctx, s)
}

func (sr *SessionRepository) DestroySession(ctx context.Context, sessionID string) error {
	if err := sr.RedisClient.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		sr.Logger.Errorw("Failed to delete session from Redis", "session_id", sessionID, zap.Error(err))
		return err
	}

	return nil
}

func (sr *SessionRepository) save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		sr.Logger.Errorw("Failed to encode session", "session_id", s.ID, zap.Error(err))
		return err
	}

	if err = sr.RedisClient.Set(ctx, keyPrefix+s.ID, data, sr.baseDuration).Err(); err != nil {
		sr.Logger.Errorw("Failed to save session to Redis", "session_id", s.ID, zap.Error(err))
		return err
	}

	return nil
}

func (sr *SessionRepository) load(ctx context.Context, sessionID string) (*Session, error) {
	data, err := sr.RedisClient.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		sr.Logger.Warnf("Session %s not found in Redis", sessionID)
		return nil, errorspkg.ErrSessionNotFound
	}
	if err != nil {
		sr.Logger.Errorw("Failed to get session from Redis", "session_id", sessionID, zap.Error(err))
		return nil, err
	}

	var s Session
	if err = json.Unmarshal(data, &s); err != nil {
		sr.Logger.Errorw("Failed to decode session", "session_id", sessionID, zap.Error(err))
		return nil, err
	}

	return &s, nil
}
