package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skip2/go-qrcode"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
)

const (
	qrTokenType = "participation_verification"
	qrTokenTTL  = 365 * 24 * time.Hour
	qrImageSize = 512
)

var ErrInvalidQRToken = errors.New("invalid verification token")

// qrClaims binds a wallet to an event for attendance verification.
type qrClaims struct {
	jwt.RegisteredClaims

	WalletAddress string `json:"walletAddress"`
	EventID       string `json:"eventId"`
	Type          string `json:"type"`
}

// ImageStore uploads rendered QR images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

type QRParticipantReader interface {
	Participants(ctx context.Context, eventID string) ([]domain.Participant, error)
}

type QRService struct {
	signingKey []byte
	events     QRParticipantReader
	store      ImageStore
}

func NewQRService(signingKey []byte, events QRParticipantReader, store ImageStore) *QRService {
	return &QRService{
		signingKey: signingKey,
		events:     events,
		store:      store,
	}
}

// GenerateParticipationQR issues a signed attendance token for an active
// participant, renders it as a QR PNG and uploads the image. Both the
// public image URL and the raw token are returned.
func (s *QRService) GenerateParticipationQR(ctx context.Context, walletAddress, eventID string) (string, string, error) {
	if err := s.requireActiveParticipant(ctx, walletAddress, eventID); err != nil {
		return "", "", err
	}

	now := time.Now()
	claims := qrClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(qrTokenTTL)),
		},
		WalletAddress: walletAddress,
		EventID:       eventID,
		Type:          qrTokenType,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", "", fmt.Errorf("jwt.SignedString -> %w", err)
	}

	png, err := qrcode.Encode(token, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", "", fmt.Errorf("qrcode.Encode -> %w", err)
	}

	key := fmt.Sprintf("qr/%s/%s.png", eventID, walletAddress)
	url, err := s.store.Upload(ctx, key, "image/png", png)
	if err != nil {
		return "", "", fmt.Errorf("s.store.Upload -> %w", err)
	}

	return url, token, nil
}

// VerifyParticipationToken checks the token's signature, type and expiry,
// then confirms the wallet still actively participates in the event.
func (s *QRService) VerifyParticipationToken(ctx context.Context, token string) (string, string, error) {
	claims := &qrClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidQRToken
	}

	if claims.WalletAddress == "" || claims.EventID == "" || claims.Type != qrTokenType {
		return "", "", ErrInvalidQRToken
	}

	if err = s.requireActiveParticipant(ctx, claims.WalletAddress, claims.EventID); err != nil {
		return "", "", err
	}

	return claims.WalletAddress, claims.EventID, nil
}

func (s *QRService) requireActiveParticipant(ctx context.Context, walletAddress, eventID string) error {
	participants, err := s.events.Participants(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.events.Participants -> %w", err)
	}

	for _, p := range participants {
		if p.WalletAddress == walletAddress && p.LeftAt == nil {
			return nil
		}
	}

	return ErrNotParticipating
}
