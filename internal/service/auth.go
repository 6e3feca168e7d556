package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"

	"github.com/huddleup-labs/huddleup-api/internal/config"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/pkg/jwthelper"
)

var (
	ErrJWTVerification = errors.New("JWT verification failed")
	ErrNoWalletInToken = errors.New("token carries no usable wallet")
)

// providerClaims is the shape of the Web3Auth identity token. Social
// logins carry a compressed secp256k1 public key per wallet; external
// wallets carry the address directly.
type providerClaims struct {
	jwt.RegisteredClaims

	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"profileImage"`
	Wallets []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
		Type      string `json:"type"`
		Curve     string `json:"curve"`
	} `json:"wallets"`
}

type AuthUserRepository interface {
	UpsertByWallet(ctx context.Context, wallet string, method domain.ConnectionMethod, profile domain.UserProfile) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type AuthService struct {
	conf *config.AuthConfig
	repo AuthUserRepository
	jwks keyfunc.Keyfunc
}

func NewAuthService(ctx context.Context, conf *config.AuthConfig, repo AuthUserRepository) (*AuthService, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, conf.JWKSEndpoints)
	if err != nil {
		return nil, fmt.Errorf("keyfunc.NewDefaultCtx -> %w", err)
	}

	return &AuthService{
		conf: conf,
		repo: repo,
		jwks: jwks,
	}, nil
}

// VerifyJWT validates the provider token against the JWKS, extracts the
// wallet address, upserts the user and issues a session token. Any
// token-level failure maps to ErrJWTVerification.
func (s *AuthService) VerifyJWT(ctx context.Context, idToken, userAgent string) (string, domain.User, error) {
	claims := &providerClaims{}

	token, err := jwt.ParseWithClaims(idToken, claims, s.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return "", domain.User{}, ErrJWTVerification
	}

	wallet, method, err := walletFromClaims(claims)
	if err != nil {
		return "", domain.User{}, err
	}

	user, err := s.repo.UpsertByWallet(ctx, wallet, method, domain.UserProfile{
		Name:         claims.Name,
		Email:        claims.Email,
		ProfileImage: claims.Picture,
	})
	if err != nil {
		return "", domain.User{}, fmt.Errorf("s.repo.UpsertByWallet -> %w", err)
	}

	session, err := jwthelper.GenerateToken(
		[]byte(s.conf.SessionSigningKey),
		user.ID,
		userAgent,
		time.Duration(s.conf.SessionTTLMinutes)*time.Minute,
	)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return session, user, nil
}

// VerifyExternalWallet is the fallback for wallets that never touch the
// identity provider: the address is taken as-is and the user upserted.
func (s *AuthService) VerifyExternalWallet(ctx context.Context, wallet, userAgent string) (string, domain.User, error) {
	user, err := s.repo.UpsertByWallet(ctx, wallet, domain.ConnectionMetamask, domain.UserProfile{})
	if err != nil {
		return "", domain.User{}, fmt.Errorf("s.repo.UpsertByWallet -> %w", err)
	}

	session, err := jwthelper.GenerateToken(
		[]byte(s.conf.SessionSigningKey),
		user.ID,
		userAgent,
		time.Duration(s.conf.SessionTTLMinutes)*time.Minute,
	)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return session, user, nil
}

// RefreshSession re-issues a session token for an already authenticated user.
func (s *AuthService) RefreshSession(ctx context.Context, userID, userAgent string) (string, domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	session, err := jwthelper.GenerateToken(
		[]byte(s.conf.SessionSigningKey),
		user.ID,
		userAgent,
		time.Duration(s.conf.SessionTTLMinutes)*time.Minute,
	)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return session, user, nil
}

func walletFromClaims(claims *providerClaims) (string, domain.ConnectionMethod, error) {
	for _, w := range claims.Wallets {
		if w.Address != "" {
			return strings.ToLower(w.Address), domain.ConnectionMetamask, nil
		}
	}

	for _, w := range claims.Wallets {
		if w.PublicKey == "" || !strings.EqualFold(w.Curve, "secp256k1") {
			continue
		}

		address, err := addressFromPublicKey(w.PublicKey)
		if err != nil {
			continue
		}

		return address, connectionMethodFor(w.Type), nil
	}

	return "", "", ErrNoWalletInToken
}

// addressFromPublicKey derives the Ethereum address from a hex-encoded
// secp256k1 public key, compressed (33 bytes) or uncompressed (65 bytes).
func addressFromPublicKey(publicKeyHex string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("hex.DecodeString -> %w", err)
	}

	switch len(raw) {
	case 33:
		key, err := crypto.DecompressPubkey(raw)
		if err != nil {
			return "", fmt.Errorf("crypto.DecompressPubkey -> %w", err)
		}

		return strings.ToLower(crypto.PubkeyToAddress(*key).Hex()), nil
	case 65:
		key, err := crypto.UnmarshalPubkey(raw)
		if err != nil {
			return "", fmt.Errorf("crypto.UnmarshalPubkey -> %w", err)
		}

		return strings.ToLower(crypto.PubkeyToAddress(*key).Hex()), nil
	default:
		return "", fmt.Errorf("unexpected public key length %d", len(raw))
	}
}

func connectionMethodFor(walletType string) domain.ConnectionMethod {
	switch {
	case strings.Contains(walletType, "social"):
		return domain.ConnectionGoogle
	case strings.Contains(walletType, "email"):
		return domain.ConnectionEmail
	default:
		return domain.ConnectionOther
	}
}
